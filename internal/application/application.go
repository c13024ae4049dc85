package application

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/great-dispatch/internal/config"
	"github.com/eugenenazirov/great-dispatch/internal/dispatch"
	"github.com/eugenenazirov/great-dispatch/internal/fleet"
	"github.com/eugenenazirov/great-dispatch/internal/onboarding"
	"github.com/eugenenazirov/great-dispatch/internal/protocol"
	"github.com/eugenenazirov/great-dispatch/internal/report"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitCapacityExceeded = 2
	ExitInfeasible       = 3
)

// App encapsulates the puzzle solvers and their dependencies.
type App struct {
	cfg        config.Config
	dispatcher dispatch.Dispatcher
	reporter   *report.Reporter
	strategy   onboarding.Strategy
	logger     *zap.Logger
}

// New initializes the application with all dependencies from the provided
// configuration. diag receives the load chart when it is enabled.
func New(cfg config.Config, logger *zap.Logger, diag io.Writer) (*App, error) {
	if cfg.Trucks <= 0 {
		return nil, fmt.Errorf("invalid truck count %d: %w", cfg.Trucks, fleet.ErrInvalidFleet)
	}

	strategy, err := onboarding.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to apply strategy: %w", err)
	}

	var chart io.Writer
	if cfg.LoadChart {
		chart = diag
	}

	return &App{
		cfg:        cfg,
		dispatcher: dispatch.New(dispatch.WithLogger(logger)),
		reporter:   report.New(logger, chart),
		strategy:   strategy,
		logger:     logger,
	}, nil
}

// Dispatch solves one dispatch puzzle: boxes are read from in and the truck
// of every box is written to out. Nothing is written to out on failure.
func (a *App) Dispatch(in io.Reader, out io.Writer) error {
	var seq fleet.Sequence
	items, err := protocol.ReadBoxes(in, &seq)
	if err != nil {
		return fmt.Errorf("read boxes: %w", err)
	}
	if err := a.reporter.Boxes(items); err != nil {
		return err
	}

	trucks, err := fleet.NewTrucks(a.cfg.Trucks)
	if err != nil {
		return fmt.Errorf("prepare trucks: %w", err)
	}
	a.logger.Debug("trucks prepared", zap.Int("trucks", trucks.Len()))

	feasibility, err := dispatch.CheckFeasible(items, trucks)
	a.reporter.Feasibility(feasibility, err)
	if err != nil {
		return err
	}

	if _, err := a.dispatcher.Assign(items, trucks); err != nil {
		a.logger.Error("error during distribution", zap.Error(err))
		return err
	}
	a.logger.Info("all boxes loaded", zap.Int("boxes", len(items)))

	if err := a.reporter.Fleet(trucks, items); err != nil {
		return err
	}

	if err := protocol.WriteAssignment(out, items); err != nil {
		return fmt.Errorf("write assignment: %w", err)
	}
	return nil
}

// Onboard plays the onboarding game until input ends, ctx is cancelled or
// the turn budget runs out.
func (a *App) Onboard(ctx context.Context, in io.Reader, out io.Writer) error {
	loop := onboarding.NewLoop(a.strategy,
		onboarding.WithBudget(a.cfg.TurnBudget),
		onboarding.WithLogger(a.logger),
	)
	turns, err := loop.Run(ctx, in, out)
	if err != nil {
		return err
	}
	a.logger.Info("game over", zap.Int("turns", turns), zap.String("strategy", string(a.strategy)))
	return nil
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, dispatch.ErrInfeasible):
		return ExitInfeasible
	case errors.Is(err, dispatch.ErrCapacityExceeded):
		return ExitCapacityExceeded
	default:
		return ExitFailure
	}
}
