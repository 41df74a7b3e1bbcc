package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/ai"
	httptransport "github.com/blockbuddy/lead-console/internal/api/http"
	"github.com/blockbuddy/lead-console/internal/api/http/handlers"
	"github.com/blockbuddy/lead-console/internal/auth"
	"github.com/blockbuddy/lead-console/internal/config"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/observability"
	"github.com/blockbuddy/lead-console/internal/persistence"
	"github.com/blockbuddy/lead-console/internal/repository"
	"github.com/blockbuddy/lead-console/internal/service"
	"github.com/blockbuddy/lead-console/internal/session"
	"github.com/blockbuddy/lead-console/internal/stream"
	"github.com/blockbuddy/lead-console/internal/worker"
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
	requestRepo := repository.NewRequestRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	outboxRepo := repository.NewOutboxRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	hub := stream.NewHub()
	broadcaster := stream.NewBroadcaster(hub, requestRepo, messageRepo, logger)
	broadcaster.RegisterHandlers(dispatcher)

	sessions := session.NewStore(redis.Client, cfg.Chat.SessionTTL())

	promptRegistry, err := ai.LoadRegistry(cfg.AI.PromptsPath)
	if err != nil {
		logger.Fatal("failed to load prompt registry", zap.Error(err))
	}
	generator := ai.NewOpenAIGenerator(cfg.AI.APIKey, cfg.AI.Model, promptRegistry, cfg.AI.Timeout())

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		RequestRepo: requestRepo,
		MessageRepo: messageRepo,
		Sessions:    sessions,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	aiService := service.NewAIService(service.AIDependencies{
		Generator: generator,
		Cache:     redis.Client,
		CacheTTL:  cfg.AI.CacheTTL(),
		Logger:    logger,
	})
	authService := service.NewAuthService(cfg.Auth, adminRepo, logger)
	notificationService := service.NewNotificationService(dispatcher, requestRepo, outboxRepo, logger, cfg.Notification)

	if err := authService.EnsureSeedAdmin(ctx, cfg.Auth); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Intake:         handlers.NewIntakeHandler(intakeService),
		Chat:           handlers.NewChatHandler(chatService, hub),
		AI:             handlers.NewAIHandler(aiService),
		Admin:          handlers.NewAdminHandler(authService, adminService, chatService, hub),
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
