// Package api is the HTTP client of the RecipeHub JSON API. Authenticated
// calls take the caller's session explicitly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
	"github.com/dmitrijs2005/recipehub/internal/common"
)

// ErrUnavailable wraps transport failures: the server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

// ErrNotLoggedIn is returned by authenticated calls given an empty session.
var ErrNotLoggedIn = errors.New("not logged in")

// Error is a non-2xx API response. It unwraps to the matching sentinel in
// common, so callers can use errors.Is(err, common.ErrForbidden).
type Error struct {
	Status  int
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

var codeErrors = map[string]error{
	"invalid_input":       common.ErrInvalidInput,
	"duplicate_email":     common.ErrDuplicateEmail,
	"invalid_credentials": common.ErrInvalidCredentials,
	"invalid_token":       common.ErrInvalidToken,
	"forbidden":           common.ErrForbidden,
	"not_found":           common.ErrorNotFound,
	"not_configured":      common.ErrNotConfigured,
}

func (e *Error) Unwrap() error {
	if err, ok := codeErrors[e.Code]; ok {
		return err
	}
	return common.ErrorInternal
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL (e.g. http://localhost:8080).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// HTTPClient exposes the underlying client, e.g. for presigned uploads.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

func (c *Client) do(ctx context.Context, method, path string, sess *models.Session, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func requireSession(sess *models.Session) error {
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// Health reports whether the server and its store are up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

func recipePath(id string) string {
	return "/api/recipes/" + url.PathEscape(id)
}
