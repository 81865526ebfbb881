package models

import (
	"fmt"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Recipe struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// String renders a one-line summary for listings.
func (r Recipe) String() string {
	s := fmt.Sprintf("%s  %s", r.ID, r.Name)
	if r.Category != "" || r.Type != "" {
		s += fmt.Sprintf(" [%s/%s]", orDash(r.Category), orDash(r.Type))
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RecipeInput is the body of create and update requests.
type RecipeInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Image       string `json:"image"`
}

// RecipeFilter maps to the query string of the listing endpoint.
type RecipeFilter struct {
	Category string
	Type     string
	Search   string
}

type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}
