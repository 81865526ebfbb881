package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/recipehub/internal/client/api"
	"github.com/dmitrijs2005/recipehub/internal/client/config"
	"github.com/dmitrijs2005/recipehub/internal/client/models"
	"github.com/dmitrijs2005/recipehub/internal/client/session"
	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/filex"
)

const (
	stateDirName    = ".recipehub"
	sessionFileName = "session.db"
)

// sessionStore persists the login between runs.
type sessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
	Close() error
}

type App struct {
	config  *config.Config
	api     *api.Client
	store   sessionStore
	session *models.Session
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
}

// NewApp opens the session file under the configured state directory and
// restores a previous login, if any.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureStateDir(c.StateDir, stateDirName)
	if err != nil {
		return nil, err
	}

	store, err := session.Open(ctx, filepath.Join(dir, sessionFileName))
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}

	return newApp(ctx, c, api.New(c.ServerURL, c.RequestTimeout), store, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, client *api.Client, store sessionStore, in io.Reader, out io.Writer) (*App, error) {
	sess, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		config:  c,
		api:     client,
		store:   store,
		session: sess,
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	a.println("Welcome to RecipeHub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.session.Email)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) setSession(ctx context.Context, s *models.Session) error {
	if err := a.store.Save(ctx, s); err != nil {
		return err
	}
	a.session = s
	return nil
}

func (a *App) clearSession(ctx context.Context) error {
	a.session = nil
	return a.store.Clear(ctx)
}

// withSession runs fn with the current session. If the server rejects the
// access token, the session is refreshed once and fn retried.
func (a *App) withSession(ctx context.Context, fn func(s *models.Session) error) error {
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	if a.session.AccessExpired(a.now()) {
		if err := a.refresh(ctx); err != nil {
			return err
		}
	}

	err := fn(a.session)
	if !errors.Is(err, common.ErrInvalidToken) || a.session.RefreshToken == "" {
		return err
	}

	if err := a.refresh(ctx); err != nil {
		return err
	}
	return fn(a.session)
}

func (a *App) refresh(ctx context.Context) error {
	next, err := a.api.Refresh(ctx, a.session)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			_ = a.clearSession(ctx)
			return fmt.Errorf("session expired, please log in again: %w", err)
		}
		return err
	}
	return a.setSession(ctx, next)
}
