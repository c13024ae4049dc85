package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/great-dispatch/internal/application"
	"github.com/eugenenazirov/great-dispatch/internal/config"
	"github.com/eugenenazirov/great-dispatch/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("dispatch", "The Great Dispatch - spreads boxes over trucks, balancing their weight")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	trucks := kingpinApp.Flag("trucks", "Number of trucks to dispatch into").Default("-1").Int()
	logLevel := kingpinApp.Flag("log-level", "Diagnostic log level").String()
	logEncoding := kingpinApp.Flag("log-encoding", "Diagnostic log encoding (json or console)").String()
	var chartSet bool
	loadChart := kingpinApp.Flag("load-chart", "Draw the truck load chart on stderr").IsSetByUser(&chartSet).Bool()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "dispatch: %v\n", err)
		return application.ExitFailure
	}

	overrides := &config.CLIOverrides{
		ConfigFile:  *configFile,
		LogLevel:    logLevel,
		LogEncoding: logEncoding,
	}

	if *trucks >= 0 {
		overrides.Trucks = trucks
	}

	if chartSet {
		overrides.LoadChart = loadChart
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "dispatch: failed to load configuration: %v\n", err)
		return application.ExitFailure
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "dispatch: failed to initialize logger: %v\n", err)
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

	if err := app.Dispatch(stdin, stdout); err != nil {
		code := application.ExitCode(err)
		logger.Error("dispatch failed", zap.Error(err), zap.Int("exit_code", code))
		return code
	}
	return application.ExitOK
}
