package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/great-dispatch/internal/protocol"
)

// Loop plays the onboarding game one turn at a time.
type Loop struct {
	strategy Strategy
	budget   time.Duration
	logger   *zap.Logger
	clock    func() time.Time
	sampler  *rate.Sometimes
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithBudget stops the loop once a completed turn finds more than budget
// elapsed since Run started. Zero disables the check.
func WithBudget(budget time.Duration) LoopOption {
	return func(l *Loop) {
		l.budget = budget
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) LoopOption {
	return func(l *Loop) {
		l.clock = clock
	}
}

// NewLoop creates a loop using strategy to pick targets.
func NewLoop(strategy Strategy, opts ...LoopOption) *Loop {
	l := &Loop{
		strategy: strategy,
		logger:   zap.NewNop(),
		clock:    time.Now,
		sampler:  &rate.Sometimes{First: 3, Every: 10},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run reads turns from in and writes one target per turn to out. It returns
// the number of turns played. A clean end of input, an exhausted budget and
// context cancellation all end the loop without error.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	reader := protocol.NewTurnReader(in)
	start := l.clock()
	turns := 0

	for {
		if err := ctx.Err(); err != nil {
			l.logger.Info("loop cancelled", zap.Int("turns", turns))
			return turns, nil
		}

		enemies, err := reader.Next()
		if errors.Is(err, io.EOF) {
			l.logger.Info("input closed", zap.Int("turns", turns))
			return turns, nil
		}
		if err != nil {
			return turns, fmt.Errorf("turn %d: %w", turns+1, err)
		}

		target, err := l.strategy.Select(enemies)
		if err != nil {
			return turns, fmt.Errorf("turn %d: %w", turns+1, err)
		}
		if err := protocol.WriteTarget(out, target); err != nil {
			return turns, fmt.Errorf("write turn %d: %w", turns+1, err)
		}
		turns++

		l.sampler.Do(func() {
			l.logger.Debug("turn played",
				zap.Int("turn", turns),
				zap.String("target", target.Name),
				zap.Int("distance", target.Distance),
			)
		})

		if l.budget > 0 {
			if elapsed := l.clock().Sub(start); elapsed > l.budget {
				l.logger.Warn("turn budget exhausted",
					zap.Int("turns", turns),
					zap.Duration("elapsed", elapsed),
					zap.Duration("budget", l.budget),
				)
				return turns, nil
			}
		}
	}
}
