package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/guild-support-bot/internal/api/http"
	"github.com/spec-kit/guild-support-bot/internal/api/http/handlers"
	"github.com/spec-kit/guild-support-bot/internal/auth"
	"github.com/spec-kit/guild-support-bot/internal/bot"
	"github.com/spec-kit/guild-support-bot/internal/config"
	"github.com/spec-kit/guild-support-bot/internal/events"
	"github.com/spec-kit/guild-support-bot/internal/observability"
	"github.com/spec-kit/guild-support-bot/internal/persistence"
	"github.com/spec-kit/guild-support-bot/internal/platform"
	"github.com/spec-kit/guild-support-bot/internal/repository"
	"github.com/spec-kit/guild-support-bot/internal/service"
	"github.com/spec-kit/guild-support-bot/internal/worker"
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
	aliasRepo := repository.NewAliasRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)

	connector := platform.NewRetryingPlatform(
		platform.NewClient(cfg.Bot.ConnectorBaseURL, cfg.Bot.Token),
		logger,
		cfg.Bot.RetryBaseDelay(),
		cfg.Bot.RetryMaxAttempts,
	)
	scheduler := worker.NewCloseScheduler(connector, logger)
	defer scheduler.Stop()

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	aliasService := service.NewAliasService(service.AliasDependencies{
		AliasRepo:  aliasRepo,
		Cache:      redis,
		CacheTTL:   cfg.Bot.AliasCacheTTL(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	emergencyService := service.NewEmergencyService(service.EmergencyDependencies{
		Aliases:    aliasService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		ConversationRepo: conversationRepo,
		Platform:         connector,
		Scheduler:        scheduler,
		Dispatcher:       dispatcher,
		Logger:           logger,
		CloseDelay:       cfg.Bot.CloseDelay(),
	})

	metrics := observability.NewMetrics()
	botDispatcher := bot.NewDispatcher(bot.Dependencies{
		Tickets:   ticketService,
		Emergency: emergencyService,
		Aliases:   aliasService,
		Metrics:   metrics,
		Logger:    logger,
	})

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(tokenManager, cfg.Auth.ConnectorKeyHash),
		Gateway:        handlers.NewGatewayHandler(botDispatcher, connector, logger),
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
