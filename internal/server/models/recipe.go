package models

import (
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipehub/internal/common"
)

// Known recipe categories and dietary types. "All" is reserved for filtering.
var (
	Categories  = []string{"Breakfast", "Lunch", "Dinner", "Snack", "Dessert", "Beverage"}
	RecipeTypes = []string{"Veg", "Non-Veg"}
)

// Recipe is a user-contributed dish. OwnerID is set from the authenticated
// caller and never from client input.
type Recipe struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Category    string
	Type        string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeFields are the client-editable attributes of a recipe.
type RecipeFields struct {
	Name        string
	Description string
	Category    string
	Type        string
	Image       string
}

// RecipeFilter narrows a recipe listing. Empty Category/Type (or "All")
// match everything; Search is a case-insensitive substring of Name.
type RecipeFilter struct {
	Category string
	Type     string
	Search   string
}

// Normalize maps "All" to the empty value. The search term is used as
// given, whitespace included.
func (f RecipeFilter) Normalize() RecipeFilter {
	if f.Category == common.FilterAll {
		f.Category = ""
	}
	if f.Type == common.FilterAll {
		f.Type = ""
	}
	return f
}

// Matches reports whether r satisfies a normalized filter.
func (f RecipeFilter) Matches(r *Recipe) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

func ValidRecipeType(t string) bool {
	return slices.Contains(RecipeTypes, t)
}
