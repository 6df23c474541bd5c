package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"loadscout/internal/handlers"
	"loadscout/internal/logger"
	"loadscout/internal/lookup"
	"loadscout/internal/repository"
	"loadscout/internal/repository/db"
	"loadscout/internal/server"
	"loadscout/internal/service"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	table := lookup.Default().Merge(lookupOverrides(log))
	defaults := service.Defaults{
		DesignDeltaTF:   viper.GetFloat64("estimate.design_delta_t_f"),
		IndoorRHPercent: viper.GetFloat64("estimate.indoor_rh_percent"),
	}
	signingKey := viper.GetString("auth.signing_key")
	if signingKey == "" {
		log.Fatalw("auth.signing_key must be set in config")
	}

	services := service.NewService(repos, table, clockwork.NewRealClock(), defaults, signingKey)
	apiHandler := handlers.NewHandler(services, log)

	log.Infow("starting",
		"lookup_models", table.Len(),
		"design_delta_t_f", defaults.DesignDeltaTF,
		"indoor_rh_percent", defaults.IndoorRHPercent,
	)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "loadscout.db")
		dbPath = "loadscout.db"
	}
	return db.Init(dbPath)
}

// lookupOverrides reads extra model-to-AFUE entries from config. Values may
// be numbers or numeric strings; anything else is skipped with a warning.
func lookupOverrides(log *logger.Logger) map[string]float64 {
	raw := viper.GetStringMap("lookup.models")
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for model, v := range raw {
		switch val := v.(type) {
		case float64:
			out[model] = val
		case int:
			out[model] = float64(val)
		case string:
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				log.Warnw("skipping non-numeric lookup entry", "model", model, "value", val)
				continue
			}
			out[model] = f
		default:
			log.Warnw("skipping lookup entry with unsupported type", "model", model)
		}
	}
	return out
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
