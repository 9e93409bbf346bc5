package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/forum-comments/domain"
)

const (
	KeyTopicComments    = "topic:%d:comments"
	KeyTopicCommentsGen = "topic:%d:comments:gen"

	TopicCommentsTTL = 10 * time.Minute
	// 版本号要比缓存活得久，过期后从 0 重新计数也不会误放行旧快照
	topicCommentsGenTTL = 6 * TopicCommentsTTL
)

// setIfGeneration writes the forest only while the generation still equals
// the one read before the rows were loaded.
const setIfGeneration = `
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`

type commentCache struct {
	client *redis.Client
}

var _ domain.CommentCache = (*commentCache)(nil)

func NewCommentCache(client *redis.Client) *commentCache {
	return &commentCache{client}
}

func (c *commentCache) GetTopicComments(ctx context.Context, topicID int64) ([]*domain.Comment, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyTopicComments, topicID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var roots []*domain.Comment
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func (c *commentCache) TopicCommentsGeneration(ctx context.Context, topicID int64) (int64, error) {
	gen, err := c.client.Get(ctx, fmt.Sprintf(KeyTopicCommentsGen, topicID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *commentCache) SetTopicComments(ctx context.Context, topicID int64, gen int64, roots []*domain.Comment) (bool, error) {
	data, err := json.Marshal(roots)
	if err != nil {
		return false, err
	}
	keys := []string{
		fmt.Sprintf(KeyTopicCommentsGen, topicID),
		fmt.Sprintf(KeyTopicComments, topicID),
	}
	stored, err := c.client.Eval(ctx, setIfGeneration, keys, gen, data, TopicCommentsTTL.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// DeleteTopicComments bumps the generation before dropping the forest so a
// rebuild that loaded rows earlier can no longer store them.
func (c *commentCache) DeleteTopicComments(ctx context.Context, topicID int64) error {
	genKey := fmt.Sprintf(KeyTopicCommentsGen, topicID)
	var errs []error
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		errs = append(errs, err)
	} else if err := c.client.Expire(ctx, genKey, topicCommentsGenTTL).Err(); err != nil {
		errs = append(errs, err)
	}
	if err := c.client.Del(ctx, fmt.Sprintf(KeyTopicComments, topicID)).Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
