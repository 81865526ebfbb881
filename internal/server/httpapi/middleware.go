package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/obs"
)

const userIDKey = "userID"

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's id in the gin context.
func RequireAuth(v TokenVerifier, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			writeError(c, l, err)
			return
		}

		userID, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			writeError(c, l, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: authorization header required", common.ErrInvalidToken)
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", fmt.Errorf("%w: invalid authorization header format", common.ErrInvalidToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: bearer token is empty", common.ErrInvalidToken)
	}
	return token, nil
}

// callerID returns the id stored by RequireAuth.
func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RequestLogger writes one line per request.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"remote_ip", c.ClientIP(),
		}
		if id := callerID(c); id != "" {
			args = append(args, "user_id", id)
		}

		ctx := c.Request.Context()
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			l.Error(ctx, "http request", args...)
		case status >= http.StatusBadRequest:
			l.Warn(ctx, "http request", args...)
		default:
			l.Info(ctx, "http request", args...)
		}
	}
}

// Tracing starts a server span per request, continuing any trace carried
// in the incoming headers.
func Tracing() gin.HandlerFunc {
	tracer := obs.Tracer("recipehub/httpapi")

	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if id := callerID(c); id != "" {
			span.SetAttributes(attribute.String("user.id", id))
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// Timeout bounds the context of every request; zero disables it.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
