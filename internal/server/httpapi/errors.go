package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/logging"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
	{common.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{common.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{common.ErrForbidden, http.StatusForbidden, "forbidden"},
	{common.ErrorNotFound, http.StatusNotFound, "not_found"},
	{common.ErrNotConfigured, http.StatusNotImplemented, "not_configured"},
}

// statusFor maps err to a status code and a stable error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeError aborts the request with the JSON body for err. Internal
// details are logged, never returned.
func writeError(c *gin.Context, l logging.Logger, err error) {
	status, code := statusFor(err)
	msg := err.Error()

	switch {
	case status >= http.StatusInternalServerError:
		l.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		switch status {
		case http.StatusInternalServerError:
			msg = "internal server error"
		case http.StatusGatewayTimeout:
			msg = "request timed out"
		}
	default:
		l.Debug(c.Request.Context(), "request rejected", "path", c.FullPath(), "status", status, "error", err)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: msg})
}

func badRequest(c *gin.Context, l logging.Logger, err error) {
	writeError(c, l, bindError(err))
}
