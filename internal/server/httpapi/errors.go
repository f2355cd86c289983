package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status and a client message.
// subject names the resource in 404 and 409 messages.
func statusFor(err error, subject string) (int, string) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, subject + " not found"
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Not authorized"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, subject + " already exists"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (s *HTTPServer) fail(c *gin.Context, err error, subject string) {
	code, msg := statusFor(err, subject)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "err", err)
	}

	body := api.Message{Message: msg}
	if !s.production {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(code, body)
}

func (s *HTTPServer) badBody(c *gin.Context, err error) {
	body := api.Message{Message: "Invalid request body"}
	if !s.production {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
