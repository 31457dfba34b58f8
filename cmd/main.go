package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tillpoint/internal/errorcode"
	"tillpoint/internal/handlers"
	"tillpoint/internal/logger"
	"tillpoint/internal/printqueue"
	"tillpoint/internal/repository"
	"tillpoint/internal/server"
	"tillpoint/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml before anything else: the log level lives there
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	signingKey := viper.GetString("auth.signing_key")
	if signingKey == "" {
		log.Fatalw("auth.signing_key must be set in config")
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// error-code registry, loaded from its backing file
	registry := errorcode.New(registryPath(log), log)

	// print queue with the configured executor
	queue := printqueue.New(newExecutor(log), log)

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, signingKey)
	apiHandler := handlers.NewHandler(services, registry, queue, log)

	// context for background goroutines
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, queue, log)
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
		log.Infow("db.path not set in config; using default file", "default", "tillpoint.db")
		dbPath = "tillpoint.db"
	}
	return repository.InitDB(dbPath)
}

// registryPath resolves the error-code registry file location.
func registryPath(log *logger.Logger) string {
	path := viper.GetString("errors.registry_path")
	if path == "" {
		log.Infow("errors.registry_path not set in config; using default file", "default", "error-codes.json")
		path = "error-codes.json"
	}
	return path
}

// newExecutor picks the print backend from configuration. Spooling to a
// directory is the default; raw-socket printing needs printer addresses.
func newExecutor(log *logger.Logger) printqueue.Executor {
	switch mode := viper.GetString("print.mode"); mode {
	case "network":
		addrs := viper.GetStringMapString("print.printers")
		if len(addrs) == 0 {
			log.Fatalw("print.mode is network but print.printers is empty")
		}
		return &printqueue.NetworkExecutor{
			Addrs:   addrs,
			Timeout: viper.GetDuration("print.timeout"),
		}
	case "", "spool":
		dir := viper.GetString("print.spool_dir")
		if dir == "" {
			dir = "spool"
		}
		return &printqueue.SpoolExecutor{Dir: dir}
	default:
		log.Fatalw("unknown print.mode", "mode", mode)
		return nil
	}
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
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, queue *printqueue.Queue, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}

	// give an in-flight print a moment to land before exiting
	drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer drainCancel()
	for !queue.Idle() {
		select {
		case <-drainCtx.Done():
			log.Warnw("exiting with print jobs still pending")
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}
