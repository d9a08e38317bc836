package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-api/internal/api/http"
	"github.com/spec-kit/helpdesk-api/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/config"
	"github.com/spec-kit/helpdesk-api/internal/events"
	"github.com/spec-kit/helpdesk-api/internal/observability"
	"github.com/spec-kit/helpdesk-api/internal/persistence"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/service"
	"github.com/spec-kit/helpdesk-api/internal/storage"
	"github.com/spec-kit/helpdesk-api/internal/worker"
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

	store, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		AttachmentRepo: attachmentRepo,
		UserRepo:       userRepo,
		Store:          store,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	commentService := service.NewCommentService(commentRepo, ticketRepo, userRepo, dispatcher)
	statsService := service.NewStatsService(ticketRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Storage.MaxUploadSizeMB * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Dashboard:      handlers.NewDashboardHandler(statsService),
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
