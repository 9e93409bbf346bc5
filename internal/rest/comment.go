package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/forum-comments/domain"
	"github.com/Guyuepp/forum-comments/internal/rest/request"
	"github.com/Guyuepp/forum-comments/internal/rest/response"
)

const (
	// MaxCommentLimit caps the roots a single listing may ask for.
	MaxCommentLimit = 100
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

// FetchCommentsByTopic lists the root comments of a topic with their replies.
func (h *commentHandler) FetchCommentsByTopic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Error: domain.ErrNotFound.Error()})
		return
	}

	var limit int64
	if limitS := c.Query("limit"); limitS != "" {
		limit, err = strconv.ParseInt(limitS, 10, 64)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, ResponseError{Error: "invalid param 'limit'"})
			return
		}
	}
	if limit > MaxCommentLimit {
		limit = MaxCommentLimit
	}

	roots, err := h.Service.FetchByTopic(c.Request.Context(), id, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewCommentsFromDomain(roots, callerFrom(c).Authenticated()))
}

// CreateComment stores a root comment on the topic in the path.
func (h *commentHandler) CreateComment(c *gin.Context) {
	caller := callerFrom(c)
	if !caller.Authenticated() {
		abortWithError(c, domain.ErrUnauthorized)
		return
	}

	topicID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Error: domain.ErrNotFound.Error()})
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Error: err.Error()})
		return
	}

	comment, err := h.Service.CreateRootComment(c.Request.Context(), caller, topicID, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewCreatedCommentFromDomain(comment))
}

// CreateReply stores a reply under the comment in the path.
func (h *commentHandler) CreateReply(c *gin.Context) {
	caller := callerFrom(c)
	if !caller.Authenticated() {
		abortWithError(c, domain.ErrUnauthorized)
		return
	}

	parentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Error: domain.ErrNotFound.Error()})
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Error: err.Error()})
		return
	}

	reply, err := h.Service.CreateNestedReply(c.Request.Context(), caller, parentID, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewCreatedCommentFromDomain(reply))
}
