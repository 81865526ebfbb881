package httpapi

import (
	"time"

	"github.com/dmitrijs2005/recipehub/internal/server/models"
	"github.com/dmitrijs2005/recipehub/internal/server/services"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// loginRequest only checks presence: a malformed email must fail like a
// wrong password.
type loginRequest struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=72"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenResponse is returned by refresh and embedded in LoginResponse.
type TokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

type recipeRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=10000"`
	Category    string `json:"category" binding:"omitempty,oneof=Breakfast Lunch Dinner Snack Dessert Beverage"`
	Type        string `json:"type" binding:"omitempty,oneof=Veg Non-Veg"`
	Image       string `json:"image" binding:"max=2048"`
}

func (r recipeRequest) fields() models.RecipeFields {
	return models.RecipeFields{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		Image:       r.Image,
	}
}

// RecipeResponse carries the id twice: browser clients key on "_id".
type RecipeResponse struct {
	ID          string    `json:"id"`
	LegacyID    string    `json:"_id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type imageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

type ImageUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toTokenResponse(p services.TokenPair) TokenResponse {
	return TokenResponse{Token: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresAt: p.ExpiresAt}
}

func toRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		LegacyID:    r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRecipeList(list []*models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRecipeResponse(r))
	}
	return out
}
