package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/forum-comments/domain"
)

// TopicRepository is a mock type for domain.TopicRepository
type TopicRepository struct {
	mock.Mock
}

func (m *TopicRepository) GetByID(ctx context.Context, id int64) (domain.Topic, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Topic), args.Error(1)
}

func (m *TopicRepository) Store(ctx context.Context, t *domain.Topic) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TopicRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *TopicRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	args := m.Called(ctx, id, deltaViews)
	return args.Error(0)
}

func (m *TopicRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// TopicCache is a mock type for domain.TopicCache
type TopicCache struct {
	mock.Mock
}

func (m *TopicCache) IncrViews(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TopicCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

// TopicUsecase is a mock type for domain.TopicUsecase
type TopicUsecase struct {
	mock.Mock
}

func (m *TopicUsecase) Store(ctx context.Context, caller domain.Caller, content string) (domain.Topic, error) {
	args := m.Called(ctx, caller, content)
	return args.Get(0).(domain.Topic), args.Error(1)
}

func (m *TopicUsecase) GetByID(ctx context.Context, id int64) (domain.Topic, int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Topic), args.Get(1).(int64), args.Error(2)
}

func (m *TopicUsecase) InitBloomFilter(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// BloomRepository is a mock type for domain.BloomRepository
type BloomRepository struct {
	mock.Mock
}

func (m *BloomRepository) Add(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BloomRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *BloomRepository) BulkAdd(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
