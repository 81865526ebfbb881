// Package server assembles the RecipeHub backend: storage, services, the
// JSON API, the gRPC health endpoint and background maintenance.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/recipehub/internal/buildinfo"
	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/obs"
	"github.com/dmitrijs2005/recipehub/internal/server/auth"
	"github.com/dmitrijs2005/recipehub/internal/server/config"
	"github.com/dmitrijs2005/recipehub/internal/server/events"
	"github.com/dmitrijs2005/recipehub/internal/server/httpapi"
	"github.com/dmitrijs2005/recipehub/internal/server/objectstore"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipehub/internal/server/services"

	gs "github.com/dmitrijs2005/recipehub/internal/server/grpc"
)

const tokenPurgeInterval = time.Hour

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	publisher      events.Publisher
	authService    *services.AuthService
	recipeService  *services.RecipeService
	shutdownTracer obs.ShutdownFunc
}

// NewApp opens every dependency named by c. On error, whatever was
// already opened is closed again.
func NewApp(ctx context.Context, c *config.Config) (app *App, err error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	var closers []func() error
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				_ = closers[i]()
			}
		}
	}()

	shutdownTracer, err := obs.InitTracer(ctx, c.OTelEndpoint, buildinfo.Version)
	if err != nil {
		return nil, fmt.Errorf("tracer init error: %w", err)
	}
	closers = append(closers, func() error { return shutdownTracer(context.Background()) })

	rm, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	closers = append(closers, rm.Close)

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.HashCost, c.HashWorkers)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if c.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(c.AMQPURL, c.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("amqp init error: %w", err)
		}
		publisher = p
		closers = append(closers, p.Close)
	}

	var images services.ImageStore
	if c.S3Bucket != "" {
		p, err := objectstore.NewS3Presigner(ctx, objectstore.Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			BaseEndpoint: c.S3BaseEndpoint,
			TTL:          c.S3PresignTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		images = p
	}

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    rm,
		publisher:      publisher,
		authService:    services.NewAuthService(rm, hasher, publisher, logger, c),
		recipeService:  services.NewRecipeService(rm, images, publisher, logger),
		shutdownTracer: shutdownTracer,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves until a signal arrives or one of the servers fails, then
// releases every dependency.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "version", buildinfo.Version, "storage", app.config.StorageBackend)

	router := httpapi.NewRouter(app.authService, app.recipeService, app.repomanager, app.logger, httpapi.Options{
		CORSAllowedOrigins: app.config.CORSAllowedOrigins,
		RequestTimeout:     app.config.RequestTimeout,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return httpapi.NewServer(app.config.HTTPAddr, router, app.logger).Run(ctx)
	})
	g.Go(func() error {
		return gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.repomanager, app.config.HealthProbeInterval).Run(ctx)
	})
	g.Go(func() error {
		app.purgeTokens(ctx, tokenPurgeInterval)
		return nil
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server failed", "error", err)
	}

	return errors.Join(err, app.close())
}

// purgeTokens periodically deletes expired refresh tokens.
func (app *App) purgeTokens(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := app.authService.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
			}
		}
	}
}

func (app *App) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return errors.Join(
		app.publisher.Close(),
		app.repomanager.Close(),
		app.shutdownTracer(ctx),
	)
}
