// Package main provides the entry point of the ExpertSoft billing API
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Luisr26/ExpertSoft/app/bootstrap"
	"github.com/Luisr26/ExpertSoft/app/handlers"
	"github.com/Luisr26/ExpertSoft/app/router"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/logger"
	"github.com/Luisr26/ExpertSoft/migrations"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.AppConfig
	server    *fiber.App
	db        *gorm.DB
	log       zerolog.Logger
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, logWriter := logger.New(cfg.Logging)
	log = log.With().Str("service", "expertsoft-api").Str("env", cfg.Deployment.Environment).Logger()
	log.Info().Str("version", cfg.Deployment.Version).Msg("starting ExpertSoft API")

	app, err := initializeApplication(cfg, log, logWriter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.router.Start(cfg.Server.Address()); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-sigChan
	log.Info().Msg("shutting down gracefully")
	app.shutdown()
	log.Info().Msg("server stopped")
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.AppConfig, log zerolog.Logger, logWriter io.Writer) (*Application, error) {
	var stopFuncs []func()

	db, err := bootstrap.InitializeDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(context.Background(), db); err != nil {
			return nil, err
		}
		log.Info().Msg("database schema applied")
	}

	rc, err := bootstrap.InitializeCache(cfg.Cache, log)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		stopFuncs = append(stopFuncs,
			bootstrap.StartCacheHealthMonitor(context.Background(), rc, cfg.Cache.HealthCheckInterval, log),
			func() { _ = rc.Close() },
		)
	}

	repos := bootstrap.NewRepositories(db)

	// Initialize business flows
	platformFlow := businessflow.NewPlatformFlow(repos.Platforms)
	clientFlow := businessflow.NewClientFlow(repos.Clients, repos.Transactions)
	invoiceFlow := businessflow.NewInvoiceFlow(repos.Invoices)
	transactionFlow := businessflow.NewTransactionFlow(repos.Transactions)

	// Initialize handlers
	h := router.Handlers{
		Platform:    handlers.NewPlatformHandler(platformFlow, log),
		Client:      handlers.NewClientHandler(clientFlow, log),
		Invoice:     handlers.NewInvoiceHandler(invoiceFlow, log),
		Transaction: handlers.NewTransactionHandler(transactionFlow, log),
	}

	if cfg.IsDevelopment() {
		notifier, closeNotifier, err := bootstrap.NewSeedNotifier(cfg, log)
		if err != nil {
			return nil, err
		}
		stopFuncs = append(stopFuncs, closeNotifier)

		seedFlow := bootstrap.NewSeedFlow(cfg, repos, rc, notifier, log)
		h.Seed = handlers.NewSeedHandler(seedFlow, cfg.Seed.Timeout, log)
	}

	appRouter := router.NewFiberRouter(cfg, h, log, logWriter)

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		db:        db,
		log:       log,
		stopFuncs: stopFuncs,
	}, nil
}

func (a *Application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.ShutdownWithContext(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("error during shutdown")
	}

	// Stop background workers
	for _, fn := range a.stopFuncs {
		fn()
	}

	if err := bootstrap.CloseDatabase(a.db); err != nil {
		a.log.Error().Err(err).Msg("failed to close database")
	}
}
