package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfoliohub/internal/api"
	"portfoliohub/internal/config"
	"portfoliohub/internal/hub"
	"portfoliohub/internal/ingest"
	"portfoliohub/internal/provider"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Str("oms_backend", cfg.OMSBackend).
		Msg("starting portfolio hub service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wire the OMS provider
	var oms provider.OMS
	var omsPing func(context.Context) error
	switch cfg.OMSBackend {
	case config.OMSBackendPostgres:
		pg, err := provider.NewPostgresOMS(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to OMS database")
		}
		defer pg.Close()

		if err := pg.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ping OMS database")
		}
		log.Info().Msg("connected to OMS PostgreSQL")

		if err := provider.EnsureSchema(ctx, pg.Pool()); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure schema")
		}
		log.Info().Msg("schema up to date")

		oms = pg
		omsPing = pg.Ping
	default:
		oms = provider.NewSeededOMS()
		log.Info().Msg("using simulated OMS dataset")
	}

	// Wire the market-data provider
	marketData := provider.NewSeededMarketData(cfg.FallbackPrice)

	// Connect to NATS and start the price-tick consumer, if configured
	if cfg.NATSURLs != "" {
		nc, err := ingest.ConnectNATS(cfg.NATSURLs, cfg.NATSCredsFile, cfg.NATSCreds)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer nc.Close()
		log.Info().Str("url", nc.ConnectedUrl()).Msg("connected to NATS")

		consumer := ingest.NewConsumer(nc, marketData, cfg.NATSSubject)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("NATS consumer error")
			}
		}()
	}

	// Build the core services
	accounts := hub.NewAccountService(oms)
	portfolio := hub.NewPortfolioService(oms, marketData)
	refdata := hub.NewReferenceDataService(marketData)

	// Start HTTP server
	srv := api.NewServer(accounts, portfolio, refdata).
		WithCorrelationHeader(cfg.CorrelationHeader)
	if omsPing != nil {
		srv.WithOMSPing(omsPing)
	}
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Router(),
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
