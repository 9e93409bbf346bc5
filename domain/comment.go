package domain

import (
	"cmp"
	"context"
	"slices"
	"time"
)

// MaxCommentLength is the longest comment body accepted, counted in characters.
const MaxCommentLength = 800

// Comment domain model. A nil ParentID marks a root comment attached directly
// to its topic; otherwise ParentID points at a comment of the same topic.
type Comment struct {
	ID        int64     `json:"id"`
	TopicID   int64     `json:"topic_id"`
	UserID    int64     `json:"user_id"`
	ParentID  *int64    `json:"parent_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// User 评论作者信息
	User *Author `json:"user,omitempty"`
	// Replies 子评论列表, ordered by created_at then id
	Replies []*Comment `json:"replies"`
}

// CommentNode is the nested read model produced by Comment.Tree.
type CommentNode struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	Author    *Author       `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
	Children  []CommentNode `json:"children"`
}

// IsReply reports whether c hangs under another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Children returns the direct replies, each already carrying its author and
// its own replies.
func (c *Comment) Children() []*Comment {
	return c.Replies
}

// Tree walks the reply chain and returns it as nested nodes.
func (c *Comment) Tree() CommentNode {
	return c.tree(make(map[*Comment]struct{}))
}

func (c *Comment) tree(seen map[*Comment]struct{}) CommentNode {
	seen[c] = struct{}{}
	node := CommentNode{
		ID:        c.ID,
		Content:   c.Content,
		Author:    c.User,
		CreatedAt: c.CreatedAt,
		Children:  make([]CommentNode, 0, len(c.Replies)),
	}
	for _, child := range c.Replies {
		if _, ok := seen[child]; ok {
			continue
		}
		node.Children = append(node.Children, child.tree(seen))
	}
	return node
}

// CompareComments orders comments by creation time, then id.
func CompareComments(a, b *Comment) int {
	if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
		return n
	}
	return cmp.Compare(a.ID, b.ID)
}

// BuildForest links a flat set of comments belonging to one topic into reply
// trees and returns the roots in order. Every level is sorted with
// CompareComments. Replies whose parent is not in the set can't be reached
// from a root and are left out, which also keeps any cycle in corrupted data
// out of the result.
func BuildForest(comments []*Comment) []*Comment {
	sorted := slices.Clone(comments)
	slices.SortStableFunc(sorted, CompareComments)

	byID := make(map[int64]*Comment, len(sorted))
	for _, c := range sorted {
		c.Replies = make([]*Comment, 0)
		byID[c.ID] = c
	}

	roots := make([]*Comment, 0)
	for _, c := range sorted {
		if !c.IsReply() {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok && parent != c {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	// Store inserts c and backfills ID, CreatedAt and UpdatedAt.
	Store(ctx context.Context, c *Comment) error
	// GetByID returns ErrNotFound when the comment doesn't exist.
	GetByID(ctx context.Context, id int64) (*Comment, error)
	// FetchByTopic returns every comment of the topic, roots and replies,
	// ordered by created_at then id.
	FetchByTopic(ctx context.Context, topicID int64) ([]*Comment, error)
}

// CommentCache keeps assembled comment forests per topic.
type CommentCache interface {
	// GetTopicComments returns ErrCacheMiss when nothing is cached.
	GetTopicComments(ctx context.Context, topicID int64) ([]*Comment, error)
	// TopicCommentsGeneration returns the invalidation counter of the topic.
	TopicCommentsGeneration(ctx context.Context, topicID int64) (int64, error)
	// SetTopicComments stores roots only if the generation still equals gen,
	// and reports whether it did.
	SetTopicComments(ctx context.Context, topicID int64, gen int64, roots []*Comment) (bool, error)
	// DeleteTopicComments advances the generation and drops the cached forest.
	DeleteTopicComments(ctx context.Context, topicID int64) error
}

// CommentTreeRepository assembles topic comments with their nested replies
// and authors.
type CommentTreeRepository interface {
	// FetchRootWithReplies returns the root comments of a topic, each with its
	// full reply tree. limit caps the roots only; limit <= 0 means no cap.
	// Returns ErrNotFound if the topic doesn't exist.
	FetchRootWithReplies(ctx context.Context, topicID int64, limit int64) ([]*Comment, error)
	// Invalidate drops any assembled copy kept for the topic.
	Invalidate(ctx context.Context, topicID int64)
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	CreateRootComment(ctx context.Context, caller Caller, topicID int64, content string) (*Comment, error)
	CreateNestedReply(ctx context.Context, caller Caller, parentID int64, content string) (*Comment, error)
	FetchByTopic(ctx context.Context, topicID int64, limit int64) ([]*Comment, error)
}
