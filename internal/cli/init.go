// Package cli provides common initialization utilities for the command-line
// front end: logging, environment, configuration and the storage stack.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cuentamia/internal/auth"
	"cuentamia/internal/backend"
	"cuentamia/internal/cache"
	"cuentamia/internal/config"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
	"cuentamia/internal/services"
	"cuentamia/internal/session"
)

// SetupLogger initializes structured logging at the given level and makes
// it the default logger.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Handler = nil
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// App is the wired storage stack shared by every command.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Gateway  *gateway.Gateway
	Sessions *session.Manager
	Calendar *services.Calendar

	caches  *cache.Manager
	cleanup backend.CleanupFunc
}

// NewApp builds the store selected by cfg and everything layered on it.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, err
	}

	readCache := cache.NewLRUCache[[]byte](cfg.CacheSize, cfg.CacheTTL)
	caches := cache.NewManager(logger)
	caches.Register(readCache)
	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		caches.StartCleanup(cfg.CacheTTL)
	}

	gw := gateway.New(result.Store, logger, gateway.Options{
		Prefix:       cfg.KeyPrefix,
		Cache:        readCache,
		WriteTimeout: cfg.WriteTimeout,
	})
	dir := auth.NewDirectory(gw, logger)

	logger.Debug("Application initialized",
		log.FieldBackend, cfg.DataBackend,
		log.FieldOperation, log.OpStartup)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Gateway: gw,
		Sessions: session.NewManager(gw, dir, session.ManagerOptions{
			SeedDemoData: cfg.SeedDemoData,
			Logger:       logger,
		}),
		Calendar: services.NewCalendar(logger),
		caches:   caches,
		cleanup:  result.Cleanup,
	}, nil
}

// Close flushes pending writes and releases the store. Persistence failures
// that happened while the app ran are returned joined together.
func (a *App) Close(ctx context.Context) error {
	a.Sessions.Close(ctx)
	a.Gateway.Close()
	a.caches.Stop()

	var errs []error
	for drained := false; !drained; {
		select {
		case err := <-a.Gateway.Errors():
			errs = append(errs, err)
		default:
			drained = true
		}
	}

	if err := a.cleanup(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

// Exit prints err and terminates with status 1.
func Exit(logger *log.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err.Error())
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
