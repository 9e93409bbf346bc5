package topic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/forum-comments/domain"
)

// bloomInitBatch is the page size used when loading topic ids into the bloom filter.
const bloomInitBatch = 1000

var contentRule = fmt.Sprintf("required,max=%d", domain.MaxTopicLength)

type Service struct {
	topicRepo  domain.TopicRepository
	topicCache domain.TopicCache
	treeRepo   domain.CommentTreeRepository
	userRepo   domain.UserRepository
	bloomRepo  domain.BloomRepository
	validate   *validator.Validate
}

var _ domain.TopicUsecase = (*Service)(nil)

// NewService will create a new topic service object
func NewService(t domain.TopicRepository, tc domain.TopicCache, tr domain.CommentTreeRepository, u domain.UserRepository, b domain.BloomRepository) *Service {
	return &Service{
		topicRepo:  t,
		topicCache: tc,
		treeRepo:   tr,
		userRepo:   u,
		bloomRepo:  b,
		validate:   validator.New(),
	}
}

func (s *Service) Store(ctx context.Context, caller domain.Caller, content string) (domain.Topic, error) {
	if !caller.Authenticated() {
		return domain.Topic{}, domain.ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if err := s.validate.Var(content, contentRule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return domain.Topic{}, &domain.ValidationError{
				Field:   "content",
				Message: fmt.Sprintf("may not be greater than %d characters", domain.MaxTopicLength),
			}
		}
		return domain.Topic{}, &domain.ValidationError{Field: "content", Message: "is required"}
	}

	t := domain.Topic{
		UserID:  caller.UserID,
		Content: content,
	}
	if err := s.topicRepo.Store(ctx, &t); err != nil {
		return domain.Topic{}, domain.Internal(err)
	}

	// 新话题必须进入布隆过滤器，否则后续请求会被误判为不存在
	if err := s.bloomRepo.Add(ctx, t.ID); err != nil {
		logrus.Errorf("failed to add topic %d to bloom filter: %v", t.ID, err)
	}

	u, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		logrus.Warnf("failed to load owner %d of topic %d: %v", caller.UserID, t.ID, err)
		t.User = &domain.Author{ID: caller.UserID}
	} else {
		t.User = domain.AuthorOf(&u)
	}
	return t, nil
}

// GetByID loads the topic, its owner and its comment forest, then counts a view.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Topic, int64, error) {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		return domain.Topic{}, 0, domain.ErrNotFound
	}

	res, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Topic{}, 0, domain.Internal(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	var owner *domain.Author
	g.Go(func() error {
		u, err := s.userRepo.GetByID(gctx, res.UserID)
		if err != nil {
			logrus.Warnf("failed to load owner %d of topic %d: %v", res.UserID, id, err)
			owner = &domain.Author{ID: res.UserID}
			return nil
		}
		owner = domain.AuthorOf(&u)
		return nil
	})
	var roots []*domain.Comment
	g.Go(func() error {
		var err error
		roots, err = s.treeRepo.FetchRootWithReplies(gctx, id, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Topic{}, 0, domain.Internal(err)
	}
	res.User = owner
	res.Comments = roots

	deltaViews, err := s.topicCache.IncrViews(ctx, id)
	if err != nil {
		logrus.Errorf("failed to IncrViews from redis: %v", err)
	} else {
		res.Views += deltaViews
	}

	return res, res.TotalCommentCount(), nil
}

func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.topicRepo.FetchIDs(ctx, cursor, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		if len(ids) < bloomInitBatch {
			return nil
		}
		cursor = ids[len(ids)-1]
	}
}
