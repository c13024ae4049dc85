// Package stats summarises numeric projections of a collection: mean,
// population standard deviation, extremes and spread.
package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyInput is returned when a summary is requested over no values.
var ErrEmptyInput = errors.New("cannot summarise an empty collection")

// Summary describes a set of values. Delta is Max - Min.
type Summary struct {
	Avg   float64
	Std   float64
	Min   float64
	Max   float64
	Delta float64
}

// String renders the summary the way diagnostics print it.
func (s Summary) String() string {
	return fmt.Sprintf("avg: %g std: %g min: %g max: %g delta: %g", s.Avg, s.Std, s.Min, s.Max, s.Delta)
}

// Compute summarises values. The standard deviation is the population one.
func Compute(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyInput
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	lo, hi := floats.Min(values), floats.Max(values)
	return Summary{
		Avg:   mean,
		Std:   std,
		Min:   lo,
		Max:   hi,
		Delta: hi - lo,
	}, nil
}

// Of summarises the projection fn over xs.
func Of[T any](xs []T, fn func(T) float64) (Summary, error) {
	values := make([]float64, len(xs))
	for i, x := range xs {
		values[i] = fn(x)
	}
	return Compute(values)
}
