package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
)

// ListRecipes returns the public recipe listing narrowed by f.
func (c *Client) ListRecipes(ctx context.Context, f models.RecipeFilter) ([]models.Recipe, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	path := "/api/recipes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list []models.Recipe
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MyRecipes(ctx context.Context, sess *models.Session) ([]models.Recipe, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var list []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes/user/recipes", sess, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var r models.Recipe
	if err := c.do(ctx, http.MethodGet, recipePath(id), nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateRecipe(ctx context.Context, sess *models.Session, in models.RecipeInput) (*models.Recipe, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var r models.Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes", sess, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, sess *models.Session, id string, in models.RecipeInput) (*models.Recipe, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var r models.Recipe
	if err := c.do(ctx, http.MethodPut, recipePath(id), sess, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, sess *models.Session, id string) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, recipePath(id), sess, nil, nil)
}

// PresignImage asks the server for an upload URL for an image of contentType.
func (c *Client) PresignImage(ctx context.Context, sess *models.Session, contentType string) (*models.ImageUpload, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var up models.ImageUpload
	body := struct {
		ContentType string `json:"content_type"`
	}{contentType}
	if err := c.do(ctx, http.MethodPost, "/api/recipes/images", sess, body, &up); err != nil {
		return nil, err
	}
	return &up, nil
}
