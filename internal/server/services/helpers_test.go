package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/recipehub/internal/dbx"
	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/server/auth"
	"github.com/dmitrijs2005/recipehub/internal/server/config"
	"github.com/dmitrijs2005/recipehub/internal/server/events"
	"github.com/dmitrijs2005/recipehub/internal/server/models"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func testLogger() logging.Logger {
	return logging.Discard()
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	rm      repomanager.RepositoryManager
	pub     *recordingPublisher
	auth    *AuthService
	recipes *RecipeService
	images  *fakeImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, repomanager.NewMemoryRepositoryManager())
}

func newFixtureWith(t *testing.T, rm repomanager.RepositoryManager) *fixture {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost, 2)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	images := &fakeImages{}
	return &fixture{
		rm:      rm,
		pub:     pub,
		images:  images,
		auth:    NewAuthService(rm, hasher, pub, testLogger(), testConfig()),
		recipes: NewRecipeService(rm, images, pub, testLogger()),
	}
}

func (f *fixture) signup(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := f.auth.Signup(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return u
}

type fakeImages struct {
	putErr error
	getErr error
	lastCT string
}

func (f *fakeImages) PresignPut(_ context.Context, key, contentType string) (string, error) {
	f.lastCT = contentType
	if f.putErr != nil {
		return "", f.putErr
	}
	return "https://s3.example/put/" + key, nil
}

func (f *fakeImages) PresignGet(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return "https://s3.example/get/" + key, nil
}

// brokenManager embeds the memory manager and swaps in failing stores.
type brokenManager struct {
	*repomanager.MemoryRepositoryManager
	users   users.Repository
	recipes recipes.Repository
	tokens  refreshtokens.Repository
	txErr   error
}

func (m *brokenManager) Users(db dbx.DBTX) users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.MemoryRepositoryManager.Users(db)
}

func (m *brokenManager) Recipes(db dbx.DBTX) recipes.Repository {
	if m.recipes != nil {
		return m.recipes
	}
	return m.MemoryRepositoryManager.Recipes(db)
}

func (m *brokenManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	if m.tokens != nil {
		return m.tokens
	}
	return m.MemoryRepositoryManager.RefreshTokens(db)
}

func (m *brokenManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return m.MemoryRepositoryManager.WithTx(ctx, fn)
}

type failingUsers struct{ users.Repository }

func (failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errBoom }
func (failingUsers) GetByEmail(context.Context, string) (*models.User, error)   { return nil, errBoom }
func (failingUsers) GetByID(context.Context, string) (*models.User, error)      { return nil, errBoom }

type failingRecipes struct{ recipes.Repository }

func (failingRecipes) Create(context.Context, *models.Recipe) (*models.Recipe, error) {
	return nil, errBoom
}
func (failingRecipes) GetByID(context.Context, string) (*models.Recipe, error) { return nil, errBoom }
func (failingRecipes) List(context.Context, models.RecipeFilter) ([]*models.Recipe, error) {
	return nil, errBoom
}
func (failingRecipes) ListByOwner(context.Context, string) ([]*models.Recipe, error) {
	return nil, errBoom
}

type failingTokens struct{ refreshtokens.Repository }

func (failingTokens) Create(context.Context, string, string, time.Duration) error { return errBoom }
func (failingTokens) Delete(context.Context, string) error                       { return errBoom }
