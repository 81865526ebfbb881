package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_EmptyLoadsNil(t *testing.T) {
	s, _ := openStore(t)

	sess, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s, path := openStore(t)

	want := &models.Session{
		UserID:       "u1",
		Name:         "Ann",
		Email:        "a@x.com",
		Token:        "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Survives a reopen.
	require.NoError(t, s.Close())
	s2, err := Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	got, err = s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Save replaces everything, including the expiry.
	require.NoError(t, s2.Save(ctx, &models.Session{Token: "t2", Email: "b@x.com"}))
	got, err = s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.Session{Token: "t2", Email: "b@x.com"}, got)

	require.NoError(t, s2.Clear(ctx))
	got, err = s2.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='metadata'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	kv := &kvStore{db: s.db}

	v, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, kv.Set(ctx, "k", []byte("1")))
	require.NoError(t, kv.Set(ctx, "k", []byte("2")))
	v, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing-dir", "x", "s.db"))
	require.Error(t, err)
}
