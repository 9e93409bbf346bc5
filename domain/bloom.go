package domain

import "context"

// BloomRepository answers "might this topic exist" without touching the database.
type BloomRepository interface {
	// Add records a newly stored topic id.
	Add(ctx context.Context, id int64) error

	// Exists returns false only when the topic id was never added, so callers
	// may answer ErrNotFound right away. true still needs a database lookup.
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd loads many ids at once, used when the filter is rebuilt at boot.
	BulkAdd(ctx context.Context, ids []int64) error
}
