package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/huenthong/smartrouting/internal/charts"
	"github.com/huenthong/smartrouting/internal/config"
	"github.com/huenthong/smartrouting/internal/dashboard"
	"github.com/huenthong/smartrouting/internal/scenario"
	"github.com/huenthong/smartrouting/pkg/middleware"
)

func main() {
	// CLI flags
	var (
		port     = flag.String("port", "", "Listen port (overrides PORT)")
		apiURL   = flag.String("api-url", "", "Routing engine base URL (overrides API_BASE_URL)")
		logLevel = flag.String("log-level", "", "Log level (overrides LOG_LEVEL)")
	)
	flag.Parse()

	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Apply flag overrides
	if *port != "" {
		cfg.Port = *port
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Str("api_base_url", cfg.APIBaseURL).
		Str("log_level", cfg.LogLevel).
		Msg("starting smart routing dashboard")

	// Load test scenarios
	scenarios, err := scenario.Load(cfg.ScenariosFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.ScenariosFile).Msg("failed to load scenarios")
	}

	// Pick the chart backend
	renderer := charts.Select(charts.ParseMode(cfg.ChartMode), cfg.ChartAssetsHost, nil)
	log.Info().Str("mode", string(renderer.Mode())).Msg("chart backend selected")

	// Create dashboard server
	srv, err := dashboard.New(cfg, renderer, scenarios, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create dashboard server")
	}

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register routes
	srv.SetupRoutes(r)

	// Create HTTP server
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("dashboard listening on :%s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
