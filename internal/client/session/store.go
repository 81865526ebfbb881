// Package session persists the CLI login in a local SQLite file so that it
// survives restarts.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
	"github.com/dmitrijs2005/recipehub/internal/client/session/migrations"
	"github.com/dmitrijs2005/recipehub/internal/dbx"

	_ "modernc.org/sqlite"
)

const (
	keyUserID       = "user_id"
	keyName         = "name"
	keyEmail        = "email"
	keyToken        = "token"
	keyRefreshToken = "refresh_token"
	keyExpiresAt    = "expires_at"
)

// Store keeps at most one session.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the state file at path and applies
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Load returns the saved session or nil when nobody is logged in.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	kv := &kvStore{db: s.db}

	values := make(map[string]string, 6)
	for _, k := range []string{keyUserID, keyName, keyEmail, keyToken, keyRefreshToken, keyExpiresAt} {
		v, err := kv.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		values[k] = string(v)
	}

	if values[keyToken] == "" {
		return nil, nil
	}

	sess := &models.Session{
		UserID:       values[keyUserID],
		Name:         values[keyName],
		Email:        values[keyEmail],
		Token:        values[keyToken],
		RefreshToken: values[keyRefreshToken],
	}
	if v := values[keyExpiresAt]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("stored expiry: %w", err)
		}
		sess.ExpiresAt = t
	}
	return sess, nil
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := &kvStore{db: tx}
		if err := kv.Clear(ctx); err != nil {
			return err
		}

		values := map[string]string{
			keyUserID:       sess.UserID,
			keyName:         sess.Name,
			keyEmail:        sess.Email,
			keyToken:        sess.Token,
			keyRefreshToken: sess.RefreshToken,
		}
		if !sess.ExpiresAt.IsZero() {
			values[keyExpiresAt] = sess.ExpiresAt.UTC().Format(time.RFC3339Nano)
		}

		for k, v := range values {
			if v == "" {
				continue
			}
			if err := kv.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear forgets the stored session.
func (s *Store) Clear(ctx context.Context) error {
	return (&kvStore{db: s.db}).Clear(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
