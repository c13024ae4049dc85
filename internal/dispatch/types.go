package dispatch

import "github.com/eugenenazirov/great-dispatch/internal/fleet"

// Feasibility summarises the arithmetic pre-check run before dispatching.
type Feasibility struct {
	TotalVolume float64
	AverageLoad float64
	Capacity    float64
}

// Dispatcher describes the behaviour required from a box dispatcher.
// Assign returns the bin id chosen for every item id.
type Dispatcher interface {
	Assign(items []fleet.Item, f *fleet.Fleet) (map[int]int, error)
}
