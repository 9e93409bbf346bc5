package domain

import "context"

// SyncViewsWorker periodically moves buffered topic views into the database.
type SyncViewsWorker interface {
	Start(ctx context.Context)
}
