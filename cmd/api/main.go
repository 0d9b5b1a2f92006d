package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/skill-swap-service/internal/api/http"
	"github.com/spec-kit/skill-swap-service/internal/api/http/handlers"
	"github.com/spec-kit/skill-swap-service/internal/auth"
	"github.com/spec-kit/skill-swap-service/internal/config"
	"github.com/spec-kit/skill-swap-service/internal/events"
	"github.com/spec-kit/skill-swap-service/internal/observability"
	"github.com/spec-kit/skill-swap-service/internal/persistence"
	"github.com/spec-kit/skill-swap-service/internal/repository"
	"github.com/spec-kit/skill-swap-service/internal/seed"
	"github.com/spec-kit/skill-swap-service/internal/service"
	"github.com/spec-kit/skill-swap-service/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo         repository.UserRepository
		swapRepo         repository.SwapRepository
		feedbackRepo     repository.FeedbackRepository
		announcementRepo repository.AnnouncementRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pool)
		swapRepo = repository.NewSwapRepository(pool)
		feedbackRepo = repository.NewFeedbackRepository(pool)
		announcementRepo = repository.NewAnnouncementRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
		swapRepo = repository.NewMemorySwapRepository()
		feedbackRepo = repository.NewMemoryFeedbackRepository()
		announcementRepo = repository.NewMemoryAnnouncementRepository()
		if cfg.Seed.Fixtures {
			if err := seed.Fixtures(ctx, userRepo, swapRepo, cfg.Auth.BcryptCost, logger); err != nil {
				logger.Fatal("failed to seed fixtures", zap.Error(err))
			}
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo: userRepo,
		Cache:    redis,
		CacheTTL: cfg.Redis.DirectoryTTL(),
	})
	swapService := service.NewSwapService(service.SwapDependencies{
		SwapRepo:   swapRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	feedbackService := service.NewFeedbackService(service.FeedbackDependencies{
		FeedbackRepo: feedbackRepo,
		SwapRepo:     swapRepo,
		UserRepo:     userRepo,
		Dispatcher:   dispatcher,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:         userRepo,
		SwapRepo:         swapRepo,
		FeedbackRepo:     feedbackRepo,
		AnnouncementRepo: announcementRepo,
		Dispatcher:       dispatcher,
		Cache:            redis,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(directoryService, feedbackService),
		Swaps:          handlers.NewSwapsHandler(swapService, feedbackService),
		Admin:          handlers.NewAdminHandler(adminService),
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
