package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/forum-comments/domain"
)

const (
	defaultSyncInterval  = 10 * time.Second
	shutdownFlushTimeout = 5 * time.Second
)

type syncViewsWorker struct {
	topicRepo  domain.TopicRepository
	topicCache domain.TopicCache
	interval   time.Duration
	done       chan struct{}
}

var _ domain.SyncViewsWorker = (*syncViewsWorker)(nil)

func NewSyncViewWorker(tr domain.TopicRepository, tc domain.TopicCache, interval time.Duration) *syncViewsWorker {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &syncViewsWorker{
		topicRepo:  tr,
		topicCache: tc,
		interval:   interval,
		done:       make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled, flushing the views buffer every interval
// and once more on the way out.
func (s *syncViewsWorker) Start(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down SyncViewsWorker, flushing remaining views...")
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			s.flush(flushCtx)
			cancel()
			return
		}
	}
}

// Done is closed once Start has returned.
func (s *syncViewsWorker) Done() <-chan struct{} {
	return s.done
}

func (s *syncViewsWorker) flush(ctx context.Context) {
	views, err := s.topicCache.FetchAndResetViews(ctx)
	if err != nil {
		logrus.Errorf("failed to FetchAndResetViews from redis: %v", err)
		return
	}

	for id, delta := range views {
		if delta == 0 {
			continue
		}
		if err := s.topicRepo.AddViews(ctx, id, delta); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logrus.Warnf("dropping %d views of missing topic %d", delta, id)
				continue
			}
			logrus.Errorf("failed to AddViews for topic %d: %v", id, err)
		}
	}
}
