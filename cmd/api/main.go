package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fernwave/chat-service/internal/ai"
	httptransport "github.com/fernwave/chat-service/internal/api/http"
	"github.com/fernwave/chat-service/internal/api/http/handlers"
	"github.com/fernwave/chat-service/internal/auth"
	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/events"
	"github.com/fernwave/chat-service/internal/observability"
	"github.com/fernwave/chat-service/internal/persistence"
	"github.com/fernwave/chat-service/internal/repository"
	"github.com/fernwave/chat-service/internal/service"
	"github.com/fernwave/chat-service/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	sessions := auth.NewSessionManager(cfg.Auth, userRepo, !cfg.App.IsDevelopment())

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Issuer:     sessions,
		Dispatcher: dispatcher,
		Redis:      redis.Handle(),
	}, logger)

	provider := ai.NewProvider(cfg.App, cfg.AI, logger)
	chatService := service.NewChatService(chatRepo, messageRepo, provider, redis.Handle(), dispatcher, logger)

	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	gateway := auth.NewGateway(sessions, cfg.Features, logger, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Gateway: gateway,
		Auth:    handlers.NewAuthHandler(authService, sessions, cfg.Features),
		Chat:    handlers.NewChatHandler(chatService),
		Pages:   handlers.NewPagesHandler(),
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
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
