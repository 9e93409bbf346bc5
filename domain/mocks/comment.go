package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/forum-comments/domain"
)

// CommentRepository is a mock type for domain.CommentRepository
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) FetchByTopic(ctx context.Context, topicID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

// CommentCache is a mock type for domain.CommentCache
type CommentCache struct {
	mock.Mock
}

func (m *CommentCache) GetTopicComments(ctx context.Context, topicID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentCache) TopicCommentsGeneration(ctx context.Context, topicID int64) (int64, error) {
	args := m.Called(ctx, topicID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentCache) SetTopicComments(ctx context.Context, topicID int64, gen int64, roots []*domain.Comment) (bool, error) {
	args := m.Called(ctx, topicID, gen, roots)
	return args.Bool(0), args.Error(1)
}

func (m *CommentCache) DeleteTopicComments(ctx context.Context, topicID int64) error {
	args := m.Called(ctx, topicID)
	return args.Error(0)
}

// CommentTreeRepository is a mock type for domain.CommentTreeRepository
type CommentTreeRepository struct {
	mock.Mock
}

func (m *CommentTreeRepository) FetchRootWithReplies(ctx context.Context, topicID int64, limit int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, topicID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentTreeRepository) Invalidate(ctx context.Context, topicID int64) {
	m.Called(ctx, topicID)
}

// CommentUsecase is a mock type for domain.CommentUsecase
type CommentUsecase struct {
	mock.Mock
}

func (m *CommentUsecase) CreateRootComment(ctx context.Context, caller domain.Caller, topicID int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, caller, topicID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentUsecase) CreateNestedReply(ctx context.Context, caller domain.Caller, parentID int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, caller, parentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentUsecase) FetchByTopic(ctx context.Context, topicID int64, limit int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, topicID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}
