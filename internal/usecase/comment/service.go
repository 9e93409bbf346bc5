package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/forum-comments/domain"
)

var contentRule = fmt.Sprintf("required,max=%d", domain.MaxCommentLength)

type service struct {
	commentRepo domain.CommentRepository
	topicRepo   domain.TopicRepository
	treeRepo    domain.CommentTreeRepository
	userRepo    domain.UserRepository
	bloomRepo   domain.BloomRepository
	validate    *validator.Validate
	now         func() time.Time
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(
	commentRepo domain.CommentRepository,
	topicRepo domain.TopicRepository,
	treeRepo domain.CommentTreeRepository,
	userRepo domain.UserRepository,
	bloomRepo domain.BloomRepository,
) *service {
	return &service{
		commentRepo: commentRepo,
		topicRepo:   topicRepo,
		treeRepo:    treeRepo,
		userRepo:    userRepo,
		bloomRepo:   bloomRepo,
		validate:    validator.New(),
		now:         time.Now,
	}
}

func (s *service) mustExists(ctx context.Context, id int64) error {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says topic %d does not exist", id)
		return domain.ErrNotFound
	}
	if err != nil {
		logrus.Warnf("bloom filter check failed for topic %d: %v", id, err)
	}

	return nil
}

// checkContent trims surrounding whitespace and applies the length rule in characters.
func (s *service) checkContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if err := s.validate.Var(content, contentRule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return "", &domain.ValidationError{
				Field:   "content",
				Message: fmt.Sprintf("may not be greater than %d characters", domain.MaxCommentLength),
			}
		}
		return "", &domain.ValidationError{Field: "content", Message: "is required"}
	}
	return content, nil
}

func (s *service) CreateRootComment(ctx context.Context, caller domain.Caller, topicID int64, content string) (*domain.Comment, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	content, err := s.checkContent(content)
	if err != nil {
		return nil, err
	}

	if err := s.mustExists(ctx, topicID); err != nil {
		return nil, err
	}
	if _, err := s.topicRepo.GetByID(ctx, topicID); err != nil {
		return nil, domain.Internal(err)
	}

	c := &domain.Comment{
		TopicID: topicID,
		UserID:  caller.UserID,
		Content: content,
	}
	if err := s.store(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) CreateNestedReply(ctx context.Context, caller domain.Caller, parentID int64, content string) (*domain.Comment, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	content, err := s.checkContent(content)
	if err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	// 回复和父评论属于同一个话题
	c := &domain.Comment{
		TopicID:  parent.TopicID,
		UserID:   caller.UserID,
		ParentID: &parent.ID,
		Content:  content,
	}
	if err := s.store(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// store inserts c, touches its topic, drops the cached forest and attaches the author.
func (s *service) store(ctx context.Context, c *domain.Comment) error {
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.commentRepo.Store(ctx, c); err != nil {
		return domain.Internal(err)
	}

	if err := s.topicRepo.Touch(ctx, c.TopicID, c.CreatedAt); err != nil {
		return domain.Internal(err)
	}
	s.treeRepo.Invalidate(ctx, c.TopicID)

	c.Replies = []*domain.Comment{}
	u, err := s.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		logrus.Warnf("failed to load author %d of comment %d: %v", c.UserID, c.ID, err)
		c.User = &domain.Author{ID: c.UserID}
		return nil
	}
	c.User = domain.AuthorOf(&u)
	return nil
}

func (s *service) FetchByTopic(ctx context.Context, topicID int64, limit int64) ([]*domain.Comment, error) {
	if err := s.mustExists(ctx, topicID); err != nil {
		return nil, err
	}
	res, err := s.treeRepo.FetchRootWithReplies(ctx, topicID, limit)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return res, nil
}
