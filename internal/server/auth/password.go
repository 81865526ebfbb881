package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrijs2005/recipehub/internal/common"
)

// MinPasswordLength and MaxPasswordLength bound accepted passwords;
// bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// PasswordHasher runs bcrypt through a bounded pool so that a burst of
// signups or logins cannot occupy every CPU.
type PasswordHasher struct {
	cost      int
	sem       *semaphore.Weighted
	dummyHash []byte
}

// NewPasswordHasher builds a hasher allowing workers concurrent hashes.
func NewPasswordHasher(cost, workers int) (*PasswordHasher, error) {
	if workers < 1 {
		workers = 1
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("recipehub-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}

	return &PasswordHasher{
		cost:      cost,
		sem:       semaphore.NewWeighted(int64(workers)),
		dummyHash: dummy,
	}, nil
}

// ValidatePassword enforces the length policy.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrInvalidInput, MinPasswordLength)
	case len(password) > MaxPasswordLength:
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrInvalidInput, MaxPasswordLength)
	}
	return nil
}

// Hash returns the bcrypt hash of password. It waits for a free worker
// and gives up when ctx is done.
func (h *PasswordHasher) Hash(ctx context.Context, password string) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.sem.Release(1)

	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

// Compare reports whether password matches hash. A nil hash is compared
// against a fixed dummy hash so unknown accounts cost the same as known ones.
func (h *PasswordHasher) Compare(ctx context.Context, hash []byte, password string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	if hash == nil {
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
