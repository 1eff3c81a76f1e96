package main

import (
	"context"
	"fmt"
	"os"
	"time"

	appcli "cuentamia/internal/cli"
	"cuentamia/internal/log"
)

func main() {
	appcli.LoadEnvFile()

	cfg, err := appcli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := appcli.SetupLogger(cfg.LogLevel)

	ctx, stop := appcli.SignalContext()
	defer stop()

	app, err := appcli.NewApp(ctx, cfg, logger)
	if err != nil {
		appcli.Exit(logger, "Failed to initialize application", err)
	}

	runErr := newCLI(app, os.Stdout, time.Now).RunContext(ctx, os.Args)

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer cancel()
	if err := app.Close(closeCtx); err != nil {
		logger.Warn("Some changes could not be saved", log.FieldError, err.Error())
		fmt.Fprintf(os.Stderr, "warning: some changes could not be saved: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
