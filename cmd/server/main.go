package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gthiam/portfolio-analyzer/internal/config"
	"github.com/gthiam/portfolio-analyzer/internal/database"
	"github.com/gthiam/portfolio-analyzer/internal/modules/ledger"
	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
	markethandlers "github.com/gthiam/portfolio-analyzer/internal/modules/market/handlers"
	"github.com/gthiam/portfolio-analyzer/internal/modules/portfolio"
	portfoliohandlers "github.com/gthiam/portfolio-analyzer/internal/modules/portfolio/handlers"
	"github.com/gthiam/portfolio-analyzer/internal/scheduler"
	"github.com/gthiam/portfolio-analyzer/internal/server"
	"github.com/gthiam/portfolio-analyzer/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// No logger yet
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting portfolio analyzer API")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Apply schema
	if err := market.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize stocks schema")
	}
	if err := portfolio.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize portfolio schema")
	}
	if err := ledger.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ledger schema")
	}

	// Wire repositories and services
	stockRepo := market.NewStockRepository(db.Conn(), log)
	portfolioRepo := portfolio.NewPortfolioRepository(db.Conn(), log)
	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	transactionRepo := ledger.NewTransactionRepository(db.Conn(), log)
	service := portfolio.NewService(portfolioRepo, positionRepo, stockRepo, transactionRepo, log)

	// Background jobs
	sched := scheduler.New(log)
	auditJob := market.NewStalePriceAuditJob(stockRepo, time.Duration(cfg.PriceAuditMaxAge)*time.Hour, log)
	if err := sched.AddJob(cfg.PriceAuditSchedule, auditJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register stale price audit job")
	}
	if err := sched.AddJob("@daily", database.NewCheckpointJob(db, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register WAL checkpoint job")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:              cfg.Port,
		Log:               log,
		DB:                db,
		Cfg:               cfg,
		PortfolioHandlers: portfoliohandlers.NewHandler(service, log),
		MarketHandlers:    markethandlers.NewHandler(service, stockRepo, log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
