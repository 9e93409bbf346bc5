package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/forum-comments/domain"
)

const (
	KeyViewsBuffer     = "topic:views:buffer"
	KeyViewsProcessing = "topic:views:processing"
)

type topicCache struct {
	client *redis.Client
}

var _ domain.TopicCache = (*topicCache)(nil)

func NewTopicCache(client *redis.Client) *topicCache {
	return &topicCache{client}
}

func (c *topicCache) IncrViews(ctx context.Context, id int64) (int64, error) {
	return c.client.HIncrBy(ctx, KeyViewsBuffer, strconv.FormatInt(id, 10), 1).Result()
}

// FetchAndResetViews moves the buffer aside before reading it, so views counted
// during the flush land in a fresh buffer.
func (c *topicCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	result := make(map[int64]int64)

	n, err := c.client.Exists(ctx, KeyViewsBuffer).Result()
	if err != nil {
		return result, err
	}
	if n == 0 {
		return result, nil
	}

	if err := c.client.Rename(ctx, KeyViewsBuffer, KeyViewsProcessing).Err(); err != nil {
		return result, err
	}

	data, err := c.client.HGetAll(ctx, KeyViewsProcessing).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	for idStr, viewsStr := range data {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			logrus.Warnf("invalid topic id in views buffer: %q", idStr)
			continue
		}
		views, err := strconv.ParseInt(viewsStr, 10, 64)
		if err != nil {
			logrus.Warnf("invalid views for topic %d: %q", id, viewsStr)
			continue
		}
		result[id] = views
	}

	if err := c.client.Del(ctx, KeyViewsProcessing).Err(); err != nil {
		logrus.Warnf("failed to drop processed views buffer: %v", err)
	}

	return result, nil
}
