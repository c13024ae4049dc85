package dispatch

import "errors"

var (
	// ErrNoBins is returned when there is no bin to dispatch into.
	ErrNoBins = errors.New("at least one bin is required")
	// ErrInfeasible is returned when the average load per bin already exceeds the bin capacity.
	ErrInfeasible = errors.New("average load per bin exceeds capacity")
	// ErrCapacityExceeded is returned when the heuristic finds no bin with room for an item.
	ErrCapacityExceeded = errors.New("no bin has capacity left for item")
)
