package recipes

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/server/models"
)

// MemoryRepository keeps recipes in insertion order in process memory.
// Safe for concurrent use; callers always receive copies.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []*models.Recipe
	byID  map[string]*models.Recipe
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Recipe)}
}

func (r *MemoryRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	recipe.ID = uuid.NewString()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	stored := *recipe
	r.order = append(r.order, &stored)
	r.byID[stored.ID] = &stored

	return recipe, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *stored
	return &c, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	return r.collect(filter.Matches), nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	return r.collect(func(rec *models.Recipe) bool { return rec.OwnerID == ownerID }), nil
}

func (r *MemoryRepository) Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[recipe.ID]
	if !ok || stored.OwnerID != recipe.OwnerID {
		return nil, common.ErrorNotFound
	}

	stored.Name = recipe.Name
	stored.Description = recipe.Description
	stored.Category = recipe.Category
	stored.Type = recipe.Type
	stored.Image = recipe.Image
	stored.UpdatedAt = time.Now().UTC()

	c := *stored
	return &c, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok || stored.OwnerID != ownerID {
		return common.ErrorNotFound
	}

	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(rec *models.Recipe) bool { return rec.ID == id })

	return nil
}

func (r *MemoryRepository) collect(match func(*models.Recipe) bool) []*models.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Recipe, 0)
	for _, rec := range r.order {
		if match(rec) {
			c := *rec
			out = append(out, &c)
		}
	}
	return out
}
