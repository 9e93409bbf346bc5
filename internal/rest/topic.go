package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/forum-comments/domain"
	"github.com/Guyuepp/forum-comments/internal/rest/request"
	"github.com/Guyuepp/forum-comments/internal/rest/response"
)

// TopicHandler  represent the httphandler for topic
type TopicHandler struct {
	Service domain.TopicUsecase
}

func NewTopicHandler(svc domain.TopicUsecase) *TopicHandler {
	return &TopicHandler{
		Service: svc,
	}
}

// GetByID will get topic by given id
func (h *TopicHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Error: domain.ErrNotFound.Error()})
		return
	}

	t, count, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTopicFromDomain(&t, count))
}

// Store will store the topic by given request body
func (h *TopicHandler) Store(c *gin.Context) {
	var req request.Topic
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Error: err.Error()})
		return
	}

	t, err := h.Service.Store(c.Request.Context(), callerFrom(c), req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewTopicFromDomain(&t, 0))
}
