package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/great-dispatch/internal/application"
	"github.com/eugenenazirov/great-dispatch/internal/config"
	"github.com/eugenenazirov/great-dispatch/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("onboarding", "Onboarding - shoots the enemy picked by the targeting strategy each turn")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	strategy := kingpinApp.Flag("strategy", "Targeting strategy (closest or farthest)").String()
	var budgetSet bool
	budget := kingpinApp.Flag("turn-budget", "Stop after this much time has elapsed (0 disables)").IsSetByUser(&budgetSet).Duration()
	logLevel := kingpinApp.Flag("log-level", "Diagnostic log level").String()
	logEncoding := kingpinApp.Flag("log-encoding", "Diagnostic log encoding (json or console)").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "onboarding: %v\n", err)
		return application.ExitFailure
	}

	overrides := &config.CLIOverrides{
		ConfigFile:  *configFile,
		Strategy:    strategy,
		LogLevel:    logLevel,
		LogEncoding: logEncoding,
	}

	if budgetSet {
		overrides.TurnBudget = budget
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "onboarding: failed to load configuration: %v\n", err)
		return application.ExitFailure
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "onboarding: failed to initialize logger: %v\n", err)
		return application.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, stderr)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return application.ExitFailure
	}

	if err := app.Onboard(ctx, stdin, stdout); err != nil {
		logger.Error("onboarding failed", zap.Error(err))
		return application.ExitCode(err)
	}
	return application.ExitOK
}
