package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-bot/ticket-api/internal/api/http"
	"github.com/helpdesk-bot/ticket-api/internal/api/http/handlers"
	"github.com/helpdesk-bot/ticket-api/internal/config"
	"github.com/helpdesk-bot/ticket-api/internal/events"
	"github.com/helpdesk-bot/ticket-api/internal/observability"
	"github.com/helpdesk-bot/ticket-api/internal/persistence"
	"github.com/helpdesk-bot/ticket-api/internal/repository"
	"github.com/helpdesk-bot/ticket-api/internal/service"
	"github.com/helpdesk-bot/ticket-api/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize ticket store", zap.Error(err))
	}
	defer closeStore()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Issues:  handlers.NewIssuesHandler(ticketService),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildStore selects the persistence backend. An explicit STORE_DRIVER
// wins; auto picks the document database or Postgres when configured and
// otherwise the file store with its temp-dir and in-memory fallback tiers.
func buildStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TicketRepository, func(), error) {
	driver := cfg.Store.Driver
	if driver == config.DriverAuto {
		switch {
		case cfg.Mongo.URI != "":
			driver = config.DriverMongo
		case cfg.Postgres.DSN != "":
			driver = config.DriverPostgres
		default:
			driver = config.DriverFile
		}
	}

	switch driver {
	case config.DriverMongo:
		mg, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { mg.Close(context.Background()) }
		return repository.NewMongoRepository(mg.Collection(cfg.Mongo.Collection)), closeFn, nil

	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresRepository(pg.Pool), pg.Close, nil

	case config.DriverRedis:
		rd := persistence.NewRedis(cfg.Redis, logger)
		return repository.NewRedisRepository(rd.Client), rd.Close, nil

	case config.DriverMemory:
		return repository.NewMemoryRepository(), func() {}, nil

	default:
		chain := repository.NewFallbackRepository(logger,
			cfg.Store.DataDir,
			filepath.Join(os.TempDir(), "helpdesk-tickets"))
		return chain, func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
