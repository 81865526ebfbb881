package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/dbx"
	"github.com/dmitrijs2005/recipehub/internal/server/models"
)

const recipeColumns = `id, owner_id, name, description, category, type, image, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	query :=
		`INSERT INTO recipes (owner_id, name, description, category, type, image)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		recipe.OwnerID, recipe.Name, recipe.Description, recipe.Category, recipe.Type, recipe.Image,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) || dbx.IsInvalidText(err) {
			return nil, fmt.Errorf("%w: unknown owner", common.ErrInvalidInput)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

	recipe := &models.Recipe{}
	err := scanRecipe(r.db.QueryRowContext(ctx, query, id), recipe)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes
		 WHERE ($1 = '' OR category = $1)
		   AND ($2 = '' OR type = $2)
		   AND ($3 = '' OR strpos(lower(name), lower($3)) > 0)
		 ORDER BY position`

	return r.query(ctx, query, filter.Category, filter.Type, filter.Search)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes
		 WHERE owner_id = $1
		 ORDER BY position`

	list, err := r.query(ctx, query, ownerID)
	if err != nil && dbx.IsInvalidText(err) {
		return []*models.Recipe{}, nil
	}
	return list, err
}

func (r *PostgresRepository) Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	query :=
		`UPDATE recipes
		 SET name = $3, description = $4, category = $5, type = $6, image = $7, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		recipe.ID, recipe.OwnerID, recipe.Name, recipe.Description, recipe.Category, recipe.Type, recipe.Image,
	).Scan(&recipe.CreatedAt, &recipe.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM recipes WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Recipe, 0)
	for rows.Next() {
		recipe := &models.Recipe{}
		if err := scanRecipe(rows, recipe); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner, r *models.Recipe) error {
	return s.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Description, &r.Category, &r.Type, &r.Image, &r.CreatedAt, &r.UpdatedAt)
}
