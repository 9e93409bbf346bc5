package rest_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/forum-comments/domain"
	"github.com/Guyuepp/forum-comments/domain/mocks"
	"github.com/Guyuepp/forum-comments/internal/rest"
)

func topicRouter(svc domain.TopicUsecase, uid int64) *gin.Engine {
	h := rest.NewTopicHandler(svc)
	r := gin.New()
	r.Use(withUser(uid))
	r.GET("/topics/:id", h.GetByID)
	r.POST("/topics", h.Store)
	return r
}

func TestTopicGetByID(t *testing.T) {
	svc := new(mocks.TopicUsecase)
	svc.On("GetByID", mock.Anything, int64(3)).Return(domain.Topic{
		ID: 3, Content: "welcome", Views: 12, CreatedAt: createdAt, UpdatedAt: createdAt,
		User: &domain.Author{ID: 9, Name: "bob"},
	}, int64(4), nil).Once()

	rec := do(topicRouter(svc, 0), http.MethodGet, "/topics/3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": 3, "content": "welcome", "user": {"id": 9, "name": "bob"}, "views": 12,
		"comment_count": 4, "created_at": "2024-11-12 11:12:36", "updated_at": "2024-11-12 11:12:36"
	}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestTopicGetByIDNotFound(t *testing.T) {
	svc := new(mocks.TopicUsecase)
	svc.On("GetByID", mock.Anything, int64(3)).Return(domain.Topic{}, int64(0), domain.ErrNotFound).Once()

	rec := do(topicRouter(svc, 0), http.MethodGet, "/topics/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(topicRouter(svc, 0), http.MethodGet, "/topics/x", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTopicStore(t *testing.T) {
	svc := new(mocks.TopicUsecase)
	svc.On("Store", mock.Anything, domain.Caller{UserID: 7}, "new topic").Return(domain.Topic{
		ID: 5, UserID: 7, Content: "new topic", CreatedAt: createdAt, UpdatedAt: createdAt,
		User: &domain.Author{ID: 7, Name: "alice"},
	}, nil).Once()

	rec := do(topicRouter(svc, 7), http.MethodPost, "/topics", `{"content":"new topic"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
	assert.Contains(t, rec.Body.String(), `"comment_count":0`)
	svc.AssertExpectations(t)
}

func TestTopicStoreValidation(t *testing.T) {
	svc := new(mocks.TopicUsecase)
	svc.On("Store", mock.Anything, domain.Caller{UserID: 7}, "").
		Return(domain.Topic{}, &domain.ValidationError{Field: "content", Message: "is required"}).Once()

	rec := do(topicRouter(svc, 7), http.MethodPost, "/topics", `{"content":""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"content: is required","field":"content"}`, rec.Body.String())
}
