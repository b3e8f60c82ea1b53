package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookledger/internal/config"
	"bookledger/internal/database"
	"bookledger/internal/database/schema"
	handlers "bookledger/internal/http/handler"
	"bookledger/internal/http/middleware"
	"bookledger/internal/logger"
	"bookledger/internal/otel"
	"bookledger/internal/repository"
	"bookledger/internal/repository/memory"
	"bookledger/internal/repository/postgres"
	"bookledger/internal/service"
	"bookledger/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("tracer shutdown")
		}
	}()

	var (
		pinger  handlers.Pinger
		books   repository.BookRepository
		lenders repository.LenderRepository
		issues  repository.IssueRepository
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.New()
		pinger, books, lenders, issues = store, store.Books(), store.Lenders(), store.Issues()
		log.Warn().Str("store", cfg.StoreDriver).Msg("using in-memory store; data is lost on restart")
	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if err := schema.EnsureCollections(ctx, db.DB, log, database.Target(cfg.Database)); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare collections")
		}

		pinger = db
		books = postgres.NewBookPostgres(db)
		lenders = postgres.NewLenderPostgres(db)
		issues = postgres.NewIssuePostgres(db)
	default:
		log.Fatal().Str("store", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}

	ledgerSvc := service.NewLedgerService(issues, books, lenders)
	svc := handlers.Services{
		Catalog: service.NewCatalogService(books),
		Roster:  service.NewRosterService(lenders),
		Ledger:  ledgerSvc,
	}

	// Ledger archives are optional; without an object store the archive button is hidden
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		expiry := time.Duration(cfg.ArchiveURLExpirySec) * time.Second
		svc.Archive = service.NewArchiveService(objStore, ledgerSvc, expiry)
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		// Form values outlive the request in the memory store and in metric labels
		Immutable:             true,
		Views:                 handlers.NewViews(),
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, pinger, svc)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("store", cfg.StoreDriver).Bool("archive", svc.Archive != nil).Msg("listening")

	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("failed to start server")
	}
}
