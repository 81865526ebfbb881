package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/server/models"
	"github.com/dmitrijs2005/recipehub/internal/server/services"
)

// RecipeHandler serves /api/recipes and /api/images.
type RecipeHandler struct {
	recipes *services.RecipeService
	logger  logging.Logger
}

func NewRecipeHandler(r *services.RecipeService, l logging.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: r, logger: l.With("handler", "recipes")}
}

// RegisterRoutes mounts the recipe endpoints. Reads are public.
func (h *RecipeHandler) RegisterRoutes(recipes, images *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	recipes.GET("", h.List)
	recipes.GET("/user/recipes", requireAuth, h.ListMine)
	recipes.GET("/:id", h.Get)
	recipes.POST("", requireAuth, h.Create)
	recipes.PUT("/:id", requireAuth, h.Update)
	recipes.DELETE("/:id", requireAuth, h.Delete)
	recipes.POST("/images", requireAuth, h.PresignImage)

	images.GET("/*key", h.Image)
}

func (h *RecipeHandler) List(c *gin.Context) {
	filter := models.RecipeFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
	}

	list, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeList(list))
}

func (h *RecipeHandler) ListMine(c *gin.Context) {
	list, err := h.recipes.ListByOwner(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeList(list))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	r, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(r))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	r, err := h.recipes.Create(c.Request.Context(), callerID(c), req.fields())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toRecipeResponse(r))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	r, err := h.recipes.Update(c.Request.Context(), callerID(c), c.Param("id"), req.fields())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(r))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Recipe deleted"})
}

func (h *RecipeHandler) PresignImage(c *gin.Context) {
	var req imageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	up, err := h.recipes.PresignImageUpload(c.Request.Context(), callerID(c), req.ContentType)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ImageUploadResponse{Key: up.Key, UploadURL: up.UploadURL, ImageURL: up.ImagePath})
}

// Image redirects to a short-lived download URL of a stored image.
func (h *RecipeHandler) Image(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	url, err := h.recipes.ImageURL(c.Request.Context(), key)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
