package dispatch

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/eugenenazirov/great-dispatch/internal/fleet"
)

type greedyDispatcher struct {
	logger *zap.Logger
}

// Option configures the dispatcher returned by New.
type Option func(*greedyDispatcher)

// WithLogger routes pass-level debug output to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *greedyDispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Dispatcher that loads the heaviest boxes first, always into
// the lightest truck that still has room.
func New(opts ...Option) Dispatcher {
	d := &greedyDispatcher{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Assign loads every item into f. On success the item bin tags and f are
// updated; on failure neither is touched.
func (d *greedyDispatcher) Assign(items []fleet.Item, f *fleet.Fleet) (map[int]int, error) {
	if _, err := CheckFeasible(items, f); err != nil {
		return nil, err
	}

	work := f.Clone()
	loaded := slices.Clone(items)

	order := make([]int, len(loaded))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(loaded[b].Weight, loaded[a].Weight)
	})

	seeds := min(len(order), work.Len())
	for binID, idx := range order[:seeds] {
		if !work.Load(binID, loaded, idx) {
			return nil, fmt.Errorf("seed item %d (volume %v) into bin %d: %w",
				loaded[idx].ID, loaded[idx].Volume, binID, ErrCapacityExceeded)
		}
	}
	d.logger.Debug("seed pass complete", zap.Int("seeded", seeds))

	bins := make([]int, work.Len())
	for i := range bins {
		bins[i] = i
	}
	byWeight := func(a, b int) int {
		return cmp.Compare(work.Weight(a), work.Weight(b))
	}
	slices.SortStableFunc(bins, byWeight)

	for _, idx := range order[seeds:] {
		placed := false
		for _, binID := range bins {
			if work.Load(binID, loaded, idx) {
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Errorf("item %d (weight %v, volume %v): %w",
				loaded[idx].ID, loaded[idx].Weight, loaded[idx].Volume, ErrCapacityExceeded)
		}
		slices.SortStableFunc(bins, byWeight)
	}
	d.logger.Debug("fill pass complete", zap.Int("filled", len(order)-seeds))

	assignment := make(map[int]int, len(loaded))
	for _, item := range loaded {
		assignment[item.ID] = item.Bin
	}

	copy(items, loaded)
	*f = *work
	return assignment, nil
}

// CheckFeasible fails with ErrInfeasible when the total volume spread evenly
// over the bins would already overflow them. Passing is necessary, not
// sufficient, for the heuristic to succeed.
func CheckFeasible(items []fleet.Item, f *fleet.Fleet) (Feasibility, error) {
	if f.Len() == 0 {
		return Feasibility{}, ErrNoBins
	}

	total := 0.0
	for _, item := range items {
		total += item.Volume
	}
	result := Feasibility{
		TotalVolume: total,
		AverageLoad: total / float64(f.Len()),
		Capacity:    f.Capacity(),
	}
	if result.AverageLoad > result.Capacity {
		return result, fmt.Errorf("average load %v over %d bins, capacity %v: %w",
			result.AverageLoad, f.Len(), result.Capacity, ErrInfeasible)
	}
	return result, nil
}
