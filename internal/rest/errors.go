package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/forum-comments/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// getStatusCode will get the code of the error from the usecases
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err in the shape matching its status.
func abortWithError(c *gin.Context, err error) {
	code := getStatusCode(err)
	body := ResponseError{Error: err.Error()}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		body.Field = verr.Field
	case code == http.StatusInternalServerError:
		logrus.WithField("request_id", c.GetString("request_id")).Error(err)
		body = ResponseError{
			Error:   domain.ErrInternalServerError.Error(),
			Message: err.Error(),
		}
	}
	c.AbortWithStatusJSON(code, body)
}

// callerFrom reads the identity left by the auth middlewares.
func callerFrom(c *gin.Context) domain.Caller {
	if uid, ok := c.Get("user_id"); ok {
		if id, ok := uid.(int64); ok {
			return domain.Caller{UserID: id}
		}
	}
	return domain.Anonymous()
}
