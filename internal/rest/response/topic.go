package response

import "github.com/Guyuepp/forum-comments/domain"

type Topic struct {
	ID           int64  `json:"id"`
	Content      string `json:"content"`
	User         *User  `json:"user"`
	Views        int64  `json:"views"`
	CommentCount int64  `json:"comment_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// NewTopicFromDomain: Domain -> Response
func NewTopicFromDomain(t *domain.Topic, commentCount int64) Topic {
	return Topic{
		ID:           t.ID,
		Content:      t.Content,
		User:         NewUserFromDomain(t.User),
		Views:        t.Views,
		CommentCount: commentCount,
		CreatedAt:    t.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:    t.UpdatedAt.Format(DateTimeFormat),
	}
}
