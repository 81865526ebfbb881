package httpapi

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/server/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tune the router.
type Options struct {
	// CORSAllowedOrigins lists browser origins; "*" allows any, empty
	// disables CORS handling.
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
}

// NewRouter wires middleware and all routes.
func NewRouter(a *services.AuthService, r *services.RecipeService, store Pinger, l logging.Logger, o Options) *gin.Engine {
	logger := l.With("module", "httpapi")
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	if len(o.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(o.CORSAllowedOrigins)))
	}
	router.Use(Tracing(), RequestLogger(logger), Timeout(o.RequestTimeout))

	requireAuth := RequireAuth(a, logger)

	router.GET("/healthz", healthHandler(store))

	api := router.Group("/api")
	NewAuthHandler(a, logger).RegisterRoutes(api.Group("/auth"), requireAuth)
	NewRecipeHandler(r, logger).RegisterRoutes(api.Group("/recipes"), api.Group("/images"), requireAuth)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "route not found"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
