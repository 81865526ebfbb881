package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecipeFilter_Matches(t *testing.T) {
	r := &Recipe{Name: "Paneer Tikka", Category: "Dinner", Type: "Veg"}

	tests := []struct {
		name   string
		filter RecipeFilter
		want   bool
	}{
		{name: "empty filter", filter: RecipeFilter{}, want: true},
		{name: "all/all", filter: RecipeFilter{Category: "All", Type: "All"}, want: true},
		{name: "category exact", filter: RecipeFilter{Category: "Dinner"}, want: true},
		{name: "category is case sensitive", filter: RecipeFilter{Category: "dinner"}, want: false},
		{name: "other category", filter: RecipeFilter{Category: "Lunch"}, want: false},
		{name: "type", filter: RecipeFilter{Type: "Non-Veg"}, want: false},
		{name: "search case-insensitive", filter: RecipeFilter{Search: "TIKKA"}, want: true},
		{name: "search keeps inner space", filter: RecipeFilter{Search: "r t"}, want: true},
		{name: "search is not trimmed", filter: RecipeFilter{Search: "  paneer "}, want: false},
		{name: "whitespace-only search", filter: RecipeFilter{Search: "  "}, want: false},
		{name: "search miss", filter: RecipeFilter{Search: "dal"}, want: false},
		{name: "combined", filter: RecipeFilter{Category: "Dinner", Type: "Veg", Search: "tik"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Normalize().Matches(r))
		})
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidCategory("Breakfast"))
	assert.False(t, ValidCategory("All"))
	assert.True(t, ValidRecipeType("Non-Veg"))
	assert.False(t, ValidRecipeType("vegan"))
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&RefreshToken{Expires: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&RefreshToken{Expires: now}).Expired(now))
}
