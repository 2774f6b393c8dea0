package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cocktail-service/internal/api/http"
	"github.com/spec-kit/cocktail-service/internal/api/http/handlers"
	"github.com/spec-kit/cocktail-service/internal/auth"
	"github.com/spec-kit/cocktail-service/internal/config"
	"github.com/spec-kit/cocktail-service/internal/observability"
	"github.com/spec-kit/cocktail-service/internal/persistence"
	"github.com/spec-kit/cocktail-service/internal/repository"
	"github.com/spec-kit/cocktail-service/internal/service"
	"github.com/spec-kit/cocktail-service/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	ingredientRepo := repository.NewIngredientRepository(pool)
	cocktailRepo := repository.NewCocktailRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	if pool != nil {
		if err := service.EnsureBootstrapAdmin(ctx, staffRepo, cfg.Auth, logger); err != nil {
			logger.Fatal("failed to seed staff", zap.Error(err))
		}
	}

	sessions := auth.NewSessionStore(cfg.Auth.SessionTimeout(), cfg.Auth.SessionSweepInterval(), logger)
	defer sessions.Close()

	codec := auth.NewCustomerTokenCodec(cfg.Auth.CustomerTokenSecret, config.CustomerTokenLifetime)
	gate := auth.NewGate(codec, sessions)

	hub := stream.NewHub(cfg.Stream.HeartbeatInterval(), cfg.Stream.SubscriberBuffer, logger)
	defer hub.Close()

	availabilityService := service.NewAvailabilityService(ingredientRepo, cocktailRepo, cfg.Availability.CacheTTL())
	defer availabilityService.Close()

	bridge := stream.NewBridge(hub, redis.Client, cfg.Stream.EventChannel, availabilityService.Invalidate, logger)
	bridge.Start(ctx)
	defer bridge.Stop()

	authService := service.NewAuthService(service.AuthDependencies{
		StaffRepo: staffRepo,
		Sessions:  sessions,
		Codec:     codec,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		IngredientRepo: ingredientRepo,
		CocktailRepo:   cocktailRepo,
		Hub:            hub,
		Bridge:         bridge,
		Availability:   availabilityService,
	}, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:         handlers.NewAuthHandler(authService, cfg.App.Env),
		Ingredients:  handlers.NewIngredientsHandler(catalogService),
		Cocktails:    handlers.NewCocktailsHandler(catalogService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Settings:     handlers.NewSettingsHandler(settingsRepo),
		Stream:       handlers.NewStreamHandler(hub, metrics),
		Gate:         gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
