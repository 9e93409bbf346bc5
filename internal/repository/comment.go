package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/forum-comments/domain"
)

// rebuildTimeout bounds a shared rebuild independently of the request that started it.
const rebuildTimeout = 10 * time.Second

// commentTreeRepository 协调层，协调缓存和数据库
type commentTreeRepository struct {
	topicRepo    domain.TopicRepository
	db           domain.CommentRepository
	cache        domain.CommentCache
	userRepo     domain.UserRepository
	rebuildGroup singleflight.Group
}

var _ domain.CommentTreeRepository = (*commentTreeRepository)(nil)

// NewCommentTreeRepository 创建协调层repository
func NewCommentTreeRepository(topics domain.TopicRepository, db domain.CommentRepository, cache domain.CommentCache, userRepo domain.UserRepository) *commentTreeRepository {
	return &commentTreeRepository{
		topicRepo: topics,
		db:        db,
		cache:     cache,
		userRepo:  userRepo,
	}
}

func (r *commentTreeRepository) FetchRootWithReplies(ctx context.Context, topicID int64, limit int64) ([]*domain.Comment, error) {
	roots, err := r.cache.GetTopicComments(ctx, topicID)
	if err == nil {
		return capRoots(roots, limit), nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("failed to get comments of topic %d from cache: %v", topicID, err)
	}

	// 缓存未命中，使用singleflight避免缓存击穿
	result, err, _ := r.rebuildGroup.Do(rebuildKey(topicID), func() (any, error) {
		// 共享的重建不能随第一个请求的超时一起失败
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rebuildTimeout)
		defer cancel()
		return r.rebuild(rctx, topicID)
	})
	if err != nil {
		return nil, err
	}

	return capRoots(result.([]*domain.Comment), limit), nil
}

func (r *commentTreeRepository) Invalidate(ctx context.Context, topicID int64) {
	r.rebuildGroup.Forget(rebuildKey(topicID))
	if err := r.cache.DeleteTopicComments(ctx, topicID); err != nil {
		logrus.Errorf("failed to drop cached comments of topic %d: %v", topicID, err)
	}
}

// rebuild loads the forest from the database and caches it unless the topic
// was invalidated after the generation was read.
func (r *commentTreeRepository) rebuild(ctx context.Context, topicID int64) ([]*domain.Comment, error) {
	gen, genErr := r.cache.TopicCommentsGeneration(ctx, topicID)
	if genErr != nil {
		logrus.Warnf("failed to read comments generation of topic %d: %v", topicID, genErr)
	}

	if _, err := r.topicRepo.GetByID(ctx, topicID); err != nil {
		return nil, err
	}

	roots, err := r.loadForest(ctx, topicID)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return roots, nil
	}
	stored, err := r.cache.SetTopicComments(ctx, topicID, gen, roots)
	if err != nil {
		logrus.Warnf("failed to cache comments of topic %d: %v", topicID, err)
	} else if !stored {
		logrus.Debugf("comments of topic %d changed during rebuild, not cached", topicID)
	}
	return roots, nil
}

// loadForest reads every comment of the topic once and links the trees in memory.
func (r *commentTreeRepository) loadForest(ctx context.Context, topicID int64) ([]*domain.Comment, error) {
	comments, err := r.db.FetchByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	if err := r.fillAuthors(ctx, comments); err != nil {
		return nil, err
	}

	return domain.BuildForest(comments), nil
}

// fillAuthors 批量填充评论作者信息
func (r *commentTreeRepository) fillAuthors(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	// 收集所有不重复的UserID
	userIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for _, c := range comments {
		if !seen[c.UserID] {
			userIDs = append(userIDs, c.UserID)
			seen[c.UserID] = true
		}
	}

	users, err := r.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}

	authors := make(map[int64]*domain.Author, len(users))
	for i := range users {
		authors[users[i].ID] = domain.AuthorOf(&users[i])
	}

	for _, c := range comments {
		if a, ok := authors[c.UserID]; ok {
			c.User = a
		} else {
			c.User = &domain.Author{ID: c.UserID}
		}
	}
	return nil
}

func capRoots(roots []*domain.Comment, limit int64) []*domain.Comment {
	if limit > 0 && int64(len(roots)) > limit {
		return roots[:limit]
	}
	return roots
}

func rebuildKey(topicID int64) string {
	return "comments:" + strconv.FormatInt(topicID, 10)
}
