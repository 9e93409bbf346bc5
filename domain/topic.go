package domain

import (
	"context"
	"time"
)

// MaxTopicLength is the longest topic body accepted, counted in characters.
const MaxTopicLength = 5000

// Topic is representing a discussion that owns its root comments
type Topic struct {
	ID        int64     // Unique identifier for the topic
	UserID    int64     // Owner
	User      *Author   // Owner information
	Content   string    // Topic body content
	Views     int64     // Number of views
	CreatedAt time.Time // Creation timestamp
	UpdatedAt time.Time // Last activity timestamp, advanced by Touch

	// Comments holds the root comments with their replies when loaded.
	Comments []*Comment
}

// RootComments returns the loaded root comments in order, capped at limit
// when limit > 0. Replies are never capped.
func (t *Topic) RootComments(limit int64) []*Comment {
	roots := make([]*Comment, 0, len(t.Comments))
	for _, c := range t.Comments {
		if !c.IsReply() {
			roots = append(roots, c)
		}
	}
	if limit > 0 && int64(len(roots)) > limit {
		roots = roots[:limit]
	}
	return roots
}

// Touch records activity at now. UpdatedAt never moves backwards.
func (t *Topic) Touch(now time.Time) {
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}

// TotalCommentCount sums, over the root comments, one for the root plus one
// per direct reply. Replies nested deeper than that are not counted.
func (t *Topic) TotalCommentCount() int64 {
	var total int64
	for _, c := range t.RootComments(0) {
		total += 1 + int64(len(c.Replies))
	}
	return total
}

// TopicRepository defines the contract for topic data persistence
type TopicRepository interface {
	// GetByID retrieves a single topic by its ID.
	// Returns ErrNotFound if the topic doesn't exist.
	GetByID(ctx context.Context, id int64) (Topic, error)

	// Store creates a new topic in the repository.
	Store(ctx context.Context, t *Topic) error

	// Touch moves updated_at forward to at. Concurrent touches keep the
	// latest timestamp.
	Touch(ctx context.Context, id int64, at time.Time) error

	// AddViews increments the view count of a topic.
	AddViews(ctx context.Context, id int64, deltaViews int64) error

	// FetchIDs returns up to limit topic ids greater than cursor, ascending.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// TopicCache buffers view counts between flushes.
type TopicCache interface {
	IncrViews(ctx context.Context, id int64) (views int64, err error)
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)
}

type TopicUsecase interface {
	Store(ctx context.Context, caller Caller, content string) (Topic, error)
	// GetByID counts a view and returns the topic with its two-level comment count.
	GetByID(ctx context.Context, id int64) (Topic, int64, error)
	InitBloomFilter(ctx context.Context) error
}
