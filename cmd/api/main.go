package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/SalahNassar0/IT-Tickets-Analysis/internal/api/http"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/api/http/handlers"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/config"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/events"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/observability"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/persistence"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/service"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/store"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	observability.RegisterEventMetrics(dispatcher, metrics)

	sessionStore := newSessionStore(cfg, logger, dispatcher)
	defer sessionStore.Close()

	dashboardService := service.NewDashboardService(service.Dependencies{
		Store:      sessionStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.Store.MaxUploadBytes(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, sessionStore, metrics),
		Datasets:  handlers.NewDatasetsHandler(dashboardService),
		Analytics: handlers.NewAnalyticsHandler(dashboardService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newSessionStore picks the Redis-backed store when an address is
// configured, so replicas can share upload sessions; otherwise datasets stay
// in process memory.
func newSessionStore(cfg *config.Config, logger *zap.Logger, dispatcher events.Dispatcher) store.SessionStore {
	if cfg.Redis.Addr != "" {
		redis := persistence.NewRedis(cfg.Redis, logger)
		return store.NewRedisStore(redis, cfg.Store.SessionTTL())
	}
	return store.NewMemoryStore(cfg.Store.SessionTTL(), cfg.Store.MaxDatasets, logger, dispatcher)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
