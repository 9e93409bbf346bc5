package topic_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/forum-comments/domain"
	"github.com/Guyuepp/forum-comments/domain/mocks"
	"github.com/Guyuepp/forum-comments/internal/usecase/topic"
)

type fixture struct {
	topics *mocks.TopicRepository
	cache  *mocks.TopicCache
	tree   *mocks.CommentTreeRepository
	users  *mocks.UserRepository
	bloom  *mocks.BloomRepository
	svc    *topic.Service
}

func newFixture() *fixture {
	f := &fixture{
		topics: new(mocks.TopicRepository),
		cache:  new(mocks.TopicCache),
		tree:   new(mocks.CommentTreeRepository),
		users:  new(mocks.UserRepository),
		bloom:  new(mocks.BloomRepository),
	}
	f.svc = topic.NewService(f.topics, f.cache, f.tree, f.users, f.bloom)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.topics.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.tree.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.bloom.AssertExpectations(t)
}

func TestStore(t *testing.T) {
	f := newFixture()
	ctx := context.TODO()
	body := faker.Paragraph()
	f.topics.On("Store", ctx, mock.AnythingOfType("*domain.Topic")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Topic).ID = 42
		}).Return(nil).Once()
	f.bloom.On("Add", ctx, int64(42)).Return(nil).Once()
	f.users.On("GetByID", ctx, int64(7)).Return(domain.User{ID: 7, Name: "alice"}, nil).Once()

	res, err := f.svc.Store(ctx, domain.Caller{UserID: 7}, "  "+body+"  ")

	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ID)
	assert.Equal(t, body, res.Content)
	assert.Equal(t, int64(7), res.UserID)
	assert.Equal(t, "alice", res.User.Name)
	f.assertExpectations(t)
}

func TestStoreRejects(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Store(context.TODO(), domain.Anonymous(), "hello")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var verr *domain.ValidationError
	_, err = f.svc.Store(context.TODO(), domain.Caller{UserID: 7}, " ")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)

	_, err = f.svc.Store(context.TODO(), domain.Caller{UserID: 7}, strings.Repeat("a", domain.MaxTopicLength+1))
	require.ErrorAs(t, err, &verr)

	f.topics.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestStoreBloomFailureIsLogged(t *testing.T) {
	f := newFixture()
	ctx := context.TODO()
	f.topics.On("Store", ctx, mock.Anything).Return(nil).Once()
	f.bloom.On("Add", ctx, int64(0)).Return(errors.New("redis down")).Once()
	f.users.On("GetByID", ctx, int64(7)).Return(domain.User{}, domain.ErrNotFound).Once()

	res, err := f.svc.Store(ctx, domain.Caller{UserID: 7}, "hello")

	require.NoError(t, err)
	assert.Equal(t, &domain.Author{ID: 7}, res.User)
	f.assertExpectations(t)
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	ctx := context.TODO()
	now := time.Now()
	parent := int64(1)
	roots := []*domain.Comment{
		{ID: 1, TopicID: 3, CreatedAt: now, Replies: []*domain.Comment{
			{ID: 2, TopicID: 3, ParentID: &parent, CreatedAt: now, Replies: []*domain.Comment{}},
		}},
		{ID: 4, TopicID: 3, CreatedAt: now, Replies: []*domain.Comment{}},
	}
	f.bloom.On("Exists", ctx, int64(3)).Return(true, nil).Once()
	f.topics.On("GetByID", ctx, int64(3)).Return(domain.Topic{ID: 3, UserID: 9, Views: 10}, nil).Once()
	f.users.On("GetByID", mock.Anything, int64(9)).Return(domain.User{ID: 9, Name: "bob"}, nil).Once()
	f.tree.On("FetchRootWithReplies", mock.Anything, int64(3), int64(0)).Return(roots, nil).Once()
	f.cache.On("IncrViews", ctx, int64(3)).Return(int64(2), nil).Once()

	res, count, err := f.svc.GetByID(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(12), res.Views)
	assert.Equal(t, "bob", res.User.Name)
	assert.Equal(t, int64(3), count)
	f.assertExpectations(t)
}

func TestGetByIDNotFound(t *testing.T) {
	t.Run("bloom", func(t *testing.T) {
		f := newFixture()
		ctx := context.TODO()
		f.bloom.On("Exists", ctx, int64(3)).Return(false, nil).Once()

		_, _, err := f.svc.GetByID(ctx, 3)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.assertExpectations(t)
	})

	t.Run("database", func(t *testing.T) {
		f := newFixture()
		ctx := context.TODO()
		f.bloom.On("Exists", ctx, int64(3)).Return(true, nil).Once()
		f.topics.On("GetByID", ctx, int64(3)).Return(domain.Topic{}, domain.ErrNotFound).Once()

		_, _, err := f.svc.GetByID(ctx, 3)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.assertExpectations(t)
	})
}

func TestGetByIDTreeFailure(t *testing.T) {
	f := newFixture()
	ctx := context.TODO()
	f.bloom.On("Exists", ctx, int64(3)).Return(true, nil).Once()
	f.topics.On("GetByID", ctx, int64(3)).Return(domain.Topic{ID: 3, UserID: 9}, nil).Once()
	f.users.On("GetByID", mock.Anything, int64(9)).Return(domain.User{ID: 9}, nil).Maybe()
	f.tree.On("FetchRootWithReplies", mock.Anything, int64(3), int64(0)).Return(nil, errors.New("too many connections")).Once()

	_, _, err := f.svc.GetByID(ctx, 3)

	assert.ErrorIs(t, err, domain.ErrInternalServerError)
	f.cache.AssertNotCalled(t, "IncrViews", mock.Anything, mock.Anything)
}

func TestInitBloomFilter(t *testing.T) {
	f := newFixture()
	ctx := context.TODO()
	first := make([]int64, 1000)
	for i := range first {
		first[i] = int64(i + 1)
	}
	second := []int64{1001, 1002}
	f.topics.On("FetchIDs", ctx, int64(0), int64(1000)).Return(first, nil).Once()
	f.topics.On("FetchIDs", ctx, int64(1000), int64(1000)).Return(second, nil).Once()
	f.bloom.On("BulkAdd", ctx, first).Return(nil).Once()
	f.bloom.On("BulkAdd", ctx, second).Return(nil).Once()

	require.NoError(t, f.svc.InitBloomFilter(ctx))
	f.assertExpectations(t)
}

func TestInitBloomFilterError(t *testing.T) {
	f := newFixture()
	ctx := context.TODO()
	f.topics.On("FetchIDs", ctx, int64(0), int64(1000)).Return(nil, errors.New("unknown column")).Once()

	assert.Error(t, f.svc.InitBloomFilter(ctx))
	f.bloom.AssertNotCalled(t, "BulkAdd", mock.Anything, mock.Anything)
}
