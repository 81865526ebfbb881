package cli

import (
	"context"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
	"github.com/dmitrijs2005/recipehub/internal/filex"
	"github.com/dmitrijs2005/recipehub/internal/netx"
)

// Upload sends a local image to object storage through a presigned URL and
// points the recipe's image field at it.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("upload <id> <file>")
	}
	id, path := args[0], args[1]

	data, contentType, err := filex.ReadUpload(path, a.config.MaxUploadSize)
	if err != nil {
		return err
	}

	return a.withSession(ctx, func(s *models.Session) error {
		cur, err := a.api.GetRecipe(ctx, id)
		if err != nil {
			return err
		}
		if cur.OwnerID != s.UserID {
			a.println("Only the owner can change this recipe.")
			return nil
		}

		up, err := a.api.PresignImage(ctx, s, contentType)
		if err != nil {
			return err
		}
		if err := netx.UploadToPresignedURL(ctx, a.api.HTTPClient(), up.UploadURL, contentType, data); err != nil {
			return err
		}

		_, err = a.api.UpdateRecipe(ctx, s, id, models.RecipeInput{
			Name:        cur.Name,
			Description: cur.Description,
			Category:    cur.Category,
			Type:        cur.Type,
			Image:       up.ImageURL,
		})
		if err != nil {
			return err
		}

		a.println("Image uploaded:", up.ImageURL)
		return nil
	})
}
