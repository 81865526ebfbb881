// Package users declares the credential store: persistence of user accounts
// keyed by id and by normalized email.
package users

import (
	"context"

	"github.com/dmitrijs2005/recipehub/internal/server/models"
)

// Repository persists users.
type Repository interface {
	// Create stores user and fills in ID and CreatedAt. A second user with
	// the same (case-insensitive) email yields common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when the user does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
