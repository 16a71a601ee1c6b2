package main

//
//  @title           fundfigures API
//  @version         1.0
//  @description     Trade order figures service for funds of hedge funds.
//  @termsOfService  https://github.com/guttosm/fundfigures
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/fundfigures
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        figures
//  @tag.description Quote amount, price and shares for a trade order
//
//  @tag.name        orders
//  @tag.description Submit and inspect trade orders
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/fundfigures/config"
	_ "github.com/guttosm/fundfigures/docs" // swagger docs
	"github.com/guttosm/fundfigures/internal/app"
	"github.com/guttosm/fundfigures/internal/logger"
	"github.com/guttosm/fundfigures/internal/processing"
	"github.com/guttosm/fundfigures/internal/seed"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the fundfigures application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API for quoting and submitting trade orders.
//   - process: Prices all PENDING trade orders in one batch run.
//   - seed:    Loads market data CSV files (prices, positions, fx rates).
//
// Flags:
//   - --mode:     Execution mode ("api", "process" or "seed"). Default: "api".
//   - --dir:      Directory with seed CSV files. Default: "./data/seed".
//   - --batch:    Max pending orders per processing run (0=default).
//   - --parallel: How many orders to price concurrently (0=auto up to CPU, max 7).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, process or seed")
	dir := flag.String("dir", "./data/seed", "Directory with seed CSV files")
	batch := flag.Int("batch", 0, "Max pending orders per processing run (0=default)")
	parallel := flag.Int("parallel", 0, "How many orders to price concurrently (0=auto up to CPU, max 7)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "process":
		// Processing mode: price pending orders and persist figures
		logger.L().Info().Msg("running pricing batch")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := processing.Run(ctx, db, *batch, *parallel); err != nil {
			logger.L().Fatal().Err(err).Msg("pricing batch failed")
		}
		logger.L().Info().Msg("pricing batch completed successfully")

	case "seed":
		// Seed mode: load market data CSVs into the database
		logger.L().Info().Msg("running seed load")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := seed.LoadDirectory(ctx, *dir, db); err != nil {
			logger.L().Fatal().Err(err).Msg("seed load failed")
		}
		logger.L().Info().Msg("seed load completed successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
