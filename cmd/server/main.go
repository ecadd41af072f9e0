package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/agrosuite/dashboard/internal/backend"
	"github.com/agrosuite/dashboard/internal/config"
	"github.com/agrosuite/dashboard/internal/fallback"
	"github.com/agrosuite/dashboard/internal/render"
	"github.com/agrosuite/dashboard/internal/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Create the locale-aware value formatter
	formatter, err := render.NewFormatter(cfg.Locale, cfg.CurrencySymbol)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the value formatter")
	}

	// Create the backend client
	client, err := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, cfg.PlaceholderToken)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the backend client")
	}

	// Load the sample records displayed whenever the backend cannot be reached
	log.Info().Bool("enabled", cfg.FallbackEnabled).Msg("loading sample records...")
	samples, err := fallback.New(web.Datasets()...)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the sample records")
	}

	// Start up the dashboard
	log.Info().Str("address", cfg.ListenAddress).Str("backend", cfg.BackendBaseURL).Msg("starting up the dashboard...")
	dashboard := &web.Service{
		Config:    cfg,
		Backend:   client,
		Samples:   samples,
		Formatter: formatter,
	}
	go func() {
		if err := dashboard.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("the dashboard raised an unexpected error")
		}
	}()
	defer func() {
		log.Info().Msg("shutting down the dashboard...")
		dashboard.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
