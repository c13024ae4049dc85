package fleet

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// TruckCapacity is the volume every truck can carry in the dispatch puzzle.
	TruckCapacity = 99.0
	// DefaultTrucks is the size of the puzzle's fleet.
	DefaultTrucks = 100
	// Unassigned tags an item that has not been loaded yet.
	Unassigned = -1
)

var (
	// ErrInvalidFleet is returned when a fleet is requested with no bins.
	ErrInvalidFleet = errors.New("fleet must contain at least one bin")
	// ErrInvalidCapacity is returned when the bin capacity is not a positive number.
	ErrInvalidCapacity = errors.New("bin capacity must be positive")
)

// Item is a box to be dispatched. Bin is the only field that changes after
// creation.
type Item struct {
	ID     int
	Weight float64
	Volume float64
	Bin    int
}

// Sequence hands out item ids. The caller owns it, so two runs never share
// numbering.
type Sequence struct {
	next int
}

// Next returns the next id and advances the sequence.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// NewItem creates an unassigned item with the next id from seq.
func NewItem(seq *Sequence, weight, volume float64) Item {
	return Item{
		ID:     seq.Next(),
		Weight: weight,
		Volume: volume,
		Bin:    Unassigned,
	}
}

// Bin accumulates items up to a fixed volume capacity. Items holds indexes
// into the caller's item slice, in loading order.
type Bin struct {
	ID       int
	Items    []int
	Weight   float64
	Volume   float64
	Capacity float64
}

func (b Bin) spaceLeft() float64 {
	return b.Capacity - b.Volume
}

// CanLoad reports whether item fits. An item that would fill the bin
// exactly is rejected.
func (b Bin) CanLoad(item Item) bool {
	return item.Volume < b.spaceLeft()
}

// Overloaded reports whether the bin holds more volume than its capacity.
func (b Bin) Overloaded() bool {
	return b.Volume > b.Capacity
}

// Fleet is an index-addressed arena of bins sharing one capacity. A bin's
// ID is its index.
type Fleet struct {
	capacity float64
	bins     []Bin
}

// New creates a fleet of count empty bins.
func New(count int, capacity float64) (*Fleet, error) {
	if count <= 0 {
		return nil, ErrInvalidFleet
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidCapacity, capacity)
	}

	bins := make([]Bin, count)
	for i := range bins {
		bins[i] = Bin{ID: i, Capacity: capacity}
	}
	return &Fleet{capacity: capacity, bins: bins}, nil
}

// NewTrucks creates the puzzle's fleet of count trucks with TruckCapacity each.
func NewTrucks(count int) (*Fleet, error) {
	return New(count, TruckCapacity)
}

// Len returns the number of bins.
func (f *Fleet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.bins)
}

// Capacity returns the capacity shared by every bin.
func (f *Fleet) Capacity() float64 {
	return f.capacity
}

// Bin returns a copy of the bin with the given id.
func (f *Fleet) Bin(id int) Bin {
	return cloneBin(f.bins[id])
}

// Bins returns a copy of every bin in index order.
func (f *Fleet) Bins() []Bin {
	out := make([]Bin, len(f.bins))
	for i, b := range f.bins {
		out[i] = cloneBin(b)
	}
	return out
}

// Weights returns the running weight of every bin in index order.
func (f *Fleet) Weights() []float64 {
	out := make([]float64, len(f.bins))
	for i, b := range f.bins {
		out[i] = b.Weight
	}
	return out
}

// Weight returns the running weight of the bin with the given id.
func (f *Fleet) Weight(id int) float64 {
	return f.bins[id].Weight
}

// Load places items[idx] in the bin with the given id and tags the item.
// It returns false and changes nothing when the item does not fit.
func (f *Fleet) Load(id int, items []Item, idx int) bool {
	bin := &f.bins[id]
	item := &items[idx]
	if !bin.CanLoad(*item) {
		return false
	}

	bin.Items = append(bin.Items, idx)
	bin.Weight += item.Weight
	bin.Volume += item.Volume
	item.Bin = bin.ID
	return true
}

// Clone returns a deep copy of the fleet.
func (f *Fleet) Clone() *Fleet {
	return &Fleet{capacity: f.capacity, bins: f.Bins()}
}

func cloneBin(b Bin) Bin {
	b.Items = slices.Clone(b.Items)
	return b
}
