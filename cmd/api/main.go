package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/secondplate/restaurant-service/internal/api/http"
	"github.com/secondplate/restaurant-service/internal/api/http/handlers"
	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/config"
	"github.com/secondplate/restaurant-service/internal/events"
	"github.com/secondplate/restaurant-service/internal/observability"
	"github.com/secondplate/restaurant-service/internal/persistence"
	"github.com/secondplate/restaurant-service/internal/repository"
	"github.com/secondplate/restaurant-service/internal/service"
	"github.com/secondplate/restaurant-service/internal/storage"
	"github.com/secondplate/restaurant-service/internal/upload"
	"github.com/secondplate/restaurant-service/internal/worker"
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

	store, err := storage.NewMinioStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to connect object store", zap.Error(err))
	}
	uploader := upload.NewOrchestrator(store, logger, cfg.Storage.OperationTimeout())

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	restaurantRepo := repository.NewRestaurantRepository(pool)
	menuItemRepo := repository.NewMenuItemRepository(pool)
	comboRepo := repository.NewComboRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		RestaurantRepo: restaurantRepo,
		Uploader:       uploader,
		Dispatcher:     dispatcher,
	}, logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, restaurantRepo)

	var googleProvider auth.IdentityProvider
	if provider := auth.NewGoogleProvider(cfg.OAuth); provider != nil {
		googleProvider = provider
	} else {
		logger.Warn("google oauth not configured; federated login disabled")
	}

	dashboardService := service.NewDashboardService(restaurantRepo, uploader, logger)
	menuService := service.NewMenuService(menuItemRepo)
	comboService := service.NewComboService(comboRepo)
	catalogService := service.NewCatalogService(restaurantRepo, menuItemRepo, comboService, redis.Client, logger)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxFileBytes)*2 + 1<<20,
	})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		RestaurantAuth: handlers.NewRestaurantAuthHandler(authService, cfg.Upload, cfg.Storage.Folder),
		OAuth:          handlers.NewOAuthHandler(googleProvider, authService, cfg.App.FrontendURL, logger),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, catalogService, cfg.Upload, cfg.Storage.Folder),
		Menu:           handlers.NewMenuHandler(menuService),
		Combo:          handlers.NewComboHandler(comboService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AuthMiddleware: authMiddleware,
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
