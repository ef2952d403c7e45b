package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zunayn/carpet-auction/internal/adapters/console"
	"github.com/zunayn/carpet-auction/internal/app"
	"github.com/zunayn/carpet-auction/internal/config"
	"github.com/zunayn/carpet-auction/internal/inventory"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Carpet Auction...")

	// Create context for shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bootstrap the inventory with the default admin
	inv := inventory.New(inventory.Params{BidRounds: cfg.Auction.BidRounds})
	admin := inventory.NewAdmin(cfg.Admin.Username, cfg.Admin.Secret, inv)

	log.Info().
		Str("admin_id", admin.ID.String()).
		Str("username", admin.Username).
		Int("bid_rounds", cfg.Auction.BidRounds).
		Msg("Inventory bootstrapped")

	// Create business services
	catalogService := app.NewCatalogService(app.CatalogServiceParams{
		Inventory: inv,
		Logger:    log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		Inventory: inv,
		Logger:    log.Logger,
	})

	log.Info().Msg("Business services initialized")

	// Create the console front end
	ui := console.New(console.Params{
		Catalog: catalogService,
		Bids:    bidService,
		Input:   os.Stdin,
		Output:  os.Stdout,
		Logger:  log.Logger,
	})

	// Run the console session
	done := make(chan error, 1)
	go func() {
		done <- ui.Run(ctx)
	}()

	// Wait for the session to end or an interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("Console session ended with error")
		}
	}

	log.Info().Msg("Auction closed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
