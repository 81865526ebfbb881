package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/obs"
	"github.com/dmitrijs2005/recipehub/internal/server/events"
	"github.com/dmitrijs2005/recipehub/internal/server/models"
	"github.com/dmitrijs2005/recipehub/internal/server/objectstore"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/repomanager"
)

// ImagePathPrefix is the public path under which stored images are served.
const ImagePathPrefix = "/api/images/"

// ImageStore presigns object URLs for recipe images.
type ImageStore interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// ImageUpload tells the client where to PUT an image and what to store in
// the recipe's image field afterwards.
type ImageUpload struct {
	Key       string
	UploadURL string
	ImagePath string
}

// RecipeService implements recipe CRUD. Reads are public; every mutation
// is bound to the authenticated caller.
type RecipeService struct {
	repomanager repomanager.RepositoryManager
	images      ImageStore
	publisher   events.Publisher
	logger      logging.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewRecipeService builds the service; images may be nil when no bucket
// is configured.
func NewRecipeService(m repomanager.RepositoryManager, images ImageStore, p events.Publisher, l logging.Logger) *RecipeService {
	return &RecipeService{
		repomanager: m,
		images:      images,
		publisher:   p,
		logger:      l.With("module", "recipes"),
		tracer:      obs.Tracer("recipehub/services/recipes"),
		now:         time.Now,
	}
}

// Create stores a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, ownerID string, f models.RecipeFields) (*models.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.Create")
	defer span.End()

	f, err := validateFields(f)
	if err != nil {
		return nil, err
	}

	r, err := s.repomanager.Recipes(s.repomanager.Conn()).Create(ctx, &models.Recipe{
		OwnerID:     ownerID,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Type:        f.Type,
		Image:       f.Image,
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return nil, err
		}
		return nil, s.internal(ctx, span, "recipe create failed", err)
	}

	span.SetAttributes(attribute.String("recipe.id", r.ID))
	s.logger.Info(ctx, "recipe created", "recipe_id", r.ID, "owner_id", ownerID)
	s.publish(ctx, events.Event{Type: events.RecipeCreated, UserID: ownerID, RecipeID: r.ID, Name: r.Name, Category: r.Category})

	return r, nil
}

// List returns recipes matching filter in insertion order.
func (s *RecipeService) List(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.List")
	defer span.End()

	list, err := s.repomanager.Recipes(s.repomanager.Conn()).List(ctx, filter.Normalize())
	if err != nil {
		return nil, s.internal(ctx, span, "recipe list failed", err)
	}
	span.SetAttributes(attribute.Int("recipes.count", len(list)))
	return list, nil
}

// GetByID returns one recipe; malformed ids are reported as not found.
func (s *RecipeService) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.GetByID")
	defer span.End()

	return s.get(ctx, span, id)
}

// ListByOwner returns the recipes of ownerID in insertion order.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.ListByOwner")
	defer span.End()

	list, err := s.repomanager.Recipes(s.repomanager.Conn()).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.internal(ctx, span, "recipe list failed", err)
	}
	return list, nil
}

// Update replaces the editable fields of recipe id; only its owner may do so.
func (s *RecipeService) Update(ctx context.Context, callerID, id string, f models.RecipeFields) (*models.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.Update")
	defer span.End()

	existing, err := s.authorize(ctx, span, callerID, id)
	if err != nil {
		return nil, err
	}

	f, err = validateFields(f)
	if err != nil {
		return nil, err
	}

	r, err := s.repomanager.Recipes(s.repomanager.Conn()).Update(ctx, &models.Recipe{
		ID:          existing.ID,
		OwnerID:     callerID,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Type:        f.Type,
		Image:       f.Image,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, span, "recipe update failed", err)
	}

	s.logger.Info(ctx, "recipe updated", "recipe_id", r.ID, "owner_id", callerID)
	s.publish(ctx, events.Event{Type: events.RecipeUpdated, UserID: callerID, RecipeID: r.ID, Name: r.Name, Category: r.Category})

	return r, nil
}

// Delete removes recipe id; only its owner may do so. Of several concurrent
// deletes of one recipe exactly one succeeds, the rest see NotFound.
func (s *RecipeService) Delete(ctx context.Context, callerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "RecipeService.Delete")
	defer span.End()

	if _, err := s.authorize(ctx, span, callerID, id); err != nil {
		return err
	}

	if err := s.repomanager.Recipes(s.repomanager.Conn()).Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return s.internal(ctx, span, "recipe delete failed", err)
	}

	s.logger.Info(ctx, "recipe deleted", "recipe_id", id, "owner_id", callerID)
	s.publish(ctx, events.Event{Type: events.RecipeDeleted, UserID: callerID, RecipeID: id})

	return nil
}

// PresignImageUpload reserves an object key for ownerID and returns a
// presigned PUT URL for it.
func (s *RecipeService) PresignImageUpload(ctx context.Context, ownerID, contentType string) (*ImageUpload, error) {
	if s.images == nil {
		return nil, fmt.Errorf("%w: image storage", common.ErrNotConfigured)
	}

	ext, ok := objectstore.ImageExtension(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", common.ErrInvalidInput, contentType)
	}

	key := objectstore.NewImageKey(ownerID, ext, s.now().UTC())
	url, err := s.images.PresignPut(ctx, key, contentType)
	if err != nil {
		s.logger.Error(ctx, "presign put failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &ImageUpload{Key: key, UploadURL: url, ImagePath: ImagePathPrefix + key}, nil
}

// ImageURL returns a short-lived download URL for an uploaded image key.
func (s *RecipeService) ImageURL(ctx context.Context, key string) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("%w: image storage", common.ErrNotConfigured)
	}
	if !objectstore.ValidImageKey(key) {
		return "", common.ErrorNotFound
	}

	url, err := s.images.PresignGet(ctx, key)
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "error", err)
		return "", common.ErrorInternal
	}
	return url, nil
}

func (s *RecipeService) get(ctx context.Context, span trace.Span, id string) (*models.Recipe, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	r, err := s.repomanager.Recipes(s.repomanager.Conn()).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, span, "recipe read failed", err)
	}
	return r, nil
}

// authorize loads recipe id and checks that callerID owns it.
func (s *RecipeService) authorize(ctx context.Context, span trace.Span, callerID, id string) (*models.Recipe, error) {
	r, err := s.get(ctx, span, id)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != callerID {
		s.logger.Warn(ctx, "recipe mutation forbidden", "recipe_id", id, "caller_id", callerID)
		return nil, common.ErrForbidden
	}
	return r, nil
}

func validateFields(f models.RecipeFields) (models.RecipeFields, error) {
	var err error
	if f.Name, err = requireText("name", f.Name, maxNameLength); err != nil {
		return f, err
	}
	if f.Description, err = limitText("description", f.Description, maxDescriptionLength); err != nil {
		return f, err
	}
	if f.Image, err = limitText("image", f.Image, maxImageLength); err != nil {
		return f, err
	}
	if f.Category != "" && !models.ValidCategory(f.Category) {
		return f, fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, f.Category)
	}
	if f.Type != "" && !models.ValidRecipeType(f.Type) {
		return f, fmt.Errorf("%w: unknown type %q", common.ErrInvalidInput, f.Type)
	}
	return f, nil
}

func (s *RecipeService) internal(ctx context.Context, span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.Error(ctx, msg, "error", err)
	return internalError(msg, err)
}

func (s *RecipeService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn(ctx, "event publish failed", "event", e.Type, "error", err)
	}
}
