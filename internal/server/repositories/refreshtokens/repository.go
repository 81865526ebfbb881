// Package refreshtokens declares the server-side store of opaque refresh
// tokens used to rotate access tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recipehub/internal/server/models"
)

// Repository defines operations for issuing, consuming and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Consume atomically removes token and returns it. A token that is
	// absent (never issued, revoked, or already consumed) yields
	// common.ErrorNotFound, so a token can be rotated at most once.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired purges tokens that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
