package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipehub/internal/client/api"
	"github.com/dmitrijs2005/recipehub/internal/client/models"
)

// parseFilter reads key=value tokens. Bare words extend the preceding
// search term so that "search=pan cake" works.
func parseFilter(args []string) (models.RecipeFilter, error) {
	var f models.RecipeFilter
	last := ""

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if last != "search" {
				return f, usageError("list [category=..] [type=..] [search=..]")
			}
			f.Search += " " + arg
			continue
		}

		switch strings.ToLower(key) {
		case "category":
			f.Category = value
		case "type":
			f.Type = value
		case "search":
			f.Search = value
		default:
			return f, fmt.Errorf("unknown filter %q", key)
		}
		last = strings.ToLower(key)
	}
	return f, nil
}

func (a *App) printRecipes(list []models.Recipe) {
	if len(list) == 0 {
		a.println("No recipes found.")
		return
	}
	for _, r := range list {
		a.println(r.String())
	}
}

func (a *App) printRecipe(r *models.Recipe) {
	a.println("ID:         ", r.ID)
	a.println("Name:       ", r.Name)
	a.println("Category:   ", orDash(r.Category))
	a.println("Type:       ", orDash(r.Type))
	a.println("Image:      ", orDash(r.Image))
	a.println("Owner:      ", r.OwnerID)
	a.println("Description:")
	a.println(r.Description)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *App) List(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}
	list, err := a.api.ListRecipes(ctx, f)
	if err != nil {
		return err
	}
	a.printRecipes(list)
	return nil
}

func (a *App) Mine(ctx context.Context) error {
	return a.withSession(ctx, func(s *models.Session) error {
		list, err := a.api.MyRecipes(ctx, s)
		if err != nil {
			return err
		}
		a.printRecipes(list)
		return nil
	})
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <id>")
	}
	r, err := a.api.GetRecipe(ctx, args[0])
	if err != nil {
		return err
	}
	a.printRecipe(r)
	return nil
}

// Add prompts for the recipe fields and creates the recipe.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	in, err := a.promptRecipe(models.RecipeInput{})
	if err != nil {
		return err
	}

	return a.withSession(ctx, func(s *models.Session) error {
		r, err := a.api.CreateRecipe(ctx, s, in)
		if err != nil {
			return err
		}
		a.println("Created recipe", r.ID)
		return nil
	})
}

// Edit prompts for each field, showing the current value as the default.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("edit <id>")
	}
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	cur, err := a.api.GetRecipe(ctx, args[0])
	if err != nil {
		return err
	}

	in, err := a.promptRecipe(models.RecipeInput{
		Name:        cur.Name,
		Description: cur.Description,
		Category:    cur.Category,
		Type:        cur.Type,
		Image:       cur.Image,
	})
	if err != nil {
		return err
	}

	return a.withSession(ctx, func(s *models.Session) error {
		r, err := a.api.UpdateRecipe(ctx, s, cur.ID, in)
		if err != nil {
			return err
		}
		a.println("Updated recipe", r.ID)
		return nil
	})
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete <id>")
	}
	return a.withSession(ctx, func(s *models.Session) error {
		if err := a.api.DeleteRecipe(ctx, s, args[0]); err != nil {
			return err
		}
		a.println("Deleted recipe", args[0])
		return nil
	})
}

func (a *App) promptRecipe(cur models.RecipeInput) (models.RecipeInput, error) {
	var (
		in  models.RecipeInput
		err error
	)

	if in.Name, err = GetWithDefault(a.reader, "Name", cur.Name, a.out); err != nil {
		return in, err
	}

	prompt := "Description"
	if cur.Description != "" {
		prompt += " (leave empty to keep the current one)"
	}
	if in.Description, err = GetMultiline(a.reader, prompt, a.out); err != nil {
		return in, err
	}
	if in.Description == "" {
		in.Description = cur.Description
	}

	if in.Category, err = GetWithDefault(a.reader, "Category (Breakfast, Lunch, Dinner, Snack, Dessert, Beverage)", cur.Category, a.out); err != nil {
		return in, err
	}
	if in.Type, err = GetWithDefault(a.reader, "Type (Veg, Non-Veg)", cur.Type, a.out); err != nil {
		return in, err
	}
	if in.Image, err = GetWithDefault(a.reader, "Image URL", cur.Image, a.out); err != nil {
		return in, err
	}
	return in, nil
}
