package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/server/auth"
	"github.com/dmitrijs2005/recipehub/internal/server/config"
	"github.com/dmitrijs2005/recipehub/internal/server/events"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipehub/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() logging.Logger {
	return logging.Discard()
}

type fakeImages struct{}

func (fakeImages) PresignPut(_ context.Context, key, _ string) (string, error) {
	return "https://s3.example/put/" + key, nil
}

func (fakeImages) PresignGet(_ context.Context, key string) (string, error) {
	return "https://s3.example/get/" + key, nil
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type apiFixture struct {
	router http.Handler
	rm     *repomanager.MemoryRepositoryManager
}

func newAPI(t *testing.T, images services.ImageStore) *apiFixture {
	t.Helper()

	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost, 2)
	require.NoError(t, err)

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: time.Hour,
	}
	rm := repomanager.NewMemoryRepositoryManager()
	l := testLogger()

	as := services.NewAuthService(rm, hasher, events.NopPublisher{}, l, cfg)
	rs := services.NewRecipeService(rm, images, events.NopPublisher{}, l)

	return &apiFixture{
		router: NewRouter(as, rs, rm, l, Options{CORSAllowedOrigins: []string{"http://localhost:5173"}, RequestTimeout: 5 * time.Second}),
		rm:     rm,
	}
}

// do sends a JSON request; body may be nil, a string or any value to encode.
func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (f *apiFixture) signupAndLogin(t *testing.T, name, email string) (UserResponse, string) {
	t.Helper()

	w := f.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{Name: name, Email: email, Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	u := decode[UserResponse](t, w)

	w = f.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return u, decode[LoginResponse](t, w).Token
}
