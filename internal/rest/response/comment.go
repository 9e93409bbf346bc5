package response

import "github.com/Guyuepp/forum-comments/domain"

type Comment struct {
	ID          int64  `json:"id"`
	TopicID     int64  `json:"topic_id"`
	ParentID    *int64 `json:"parent_id"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
	CreatedAt   string `json:"created_at"`
	// CanReply 当前请求者是否可以回复
	CanReply bool `json:"can_reply"`

	// User 评论作者信息
	User *User `json:"user"`
	// Replies 子评论列表
	Replies []*Comment `json:"replies"`
}

// NewCommentFromDomain: Domain -> Response, replies included at every depth
func NewCommentFromDomain(c *domain.Comment, canReply bool) *Comment {
	if c == nil {
		return nil
	}
	res := &Comment{
		ID:          c.ID,
		TopicID:     c.TopicID,
		ParentID:    c.ParentID,
		Content:     c.Content,
		ContentHTML: RenderMarkdown(c.Content),
		CreatedAt:   c.CreatedAt.Format(DateTimeFormat),
		CanReply:    canReply,
		User:        NewUserFromDomain(c.User),
		Replies:     make([]*Comment, 0, len(c.Replies)),
	}
	for _, r := range c.Replies {
		res.Replies = append(res.Replies, NewCommentFromDomain(r, canReply))
	}
	return res
}

func NewCommentsFromDomain(roots []*domain.Comment, canReply bool) []*Comment {
	res := make([]*Comment, 0, len(roots))
	for _, c := range roots {
		res = append(res, NewCommentFromDomain(c, canReply))
	}
	return res
}

// CreatedComment is the body returned after a comment or reply is stored.
type CreatedComment struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	User      *User  `json:"user"`
}

func NewCreatedCommentFromDomain(c *domain.Comment) CreatedComment {
	return CreatedComment{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
		User:      NewUserFromDomain(c.User),
	}
}
