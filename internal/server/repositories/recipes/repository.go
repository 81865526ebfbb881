// Package recipes declares the recipe store. Listings are returned in
// insertion order.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipehub/internal/server/models"
)

// Repository persists recipes.
type Repository interface {
	// Create stores recipe and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)

	// GetByID returns common.ErrorNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*models.Recipe, error)

	// List returns recipes matching a normalized filter.
	List(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error)

	// ListByOwner returns all recipes of ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error)

	// Update overwrites the editable fields of the recipe with recipe.ID
	// owned by recipe.OwnerID. No such row yields common.ErrorNotFound.
	Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)

	// Delete removes the recipe id owned by ownerID. No such row yields
	// common.ErrorNotFound, so of several concurrent deletes only one succeeds.
	Delete(ctx context.Context, id, ownerID string) error
}
