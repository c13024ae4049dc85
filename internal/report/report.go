// Package report writes dispatch diagnostics: statistics over boxes and
// trucks, a sample of trucks, overload warnings and an optional load chart.
// Nothing here ever touches the solution stream.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/great-dispatch/internal/dispatch"
	"github.com/eugenenazirov/great-dispatch/internal/fleet"
	"github.com/eugenenazirov/great-dispatch/internal/stats"
)

// chartScale is how many weight units one chart character stands for.
const chartScale = 3

// Reporter emits diagnostics through a logger and, for the load chart, a
// plain writer.
type Reporter struct {
	logger *zap.Logger
	chart  io.Writer
}

// New creates a Reporter. A nil chart writer disables the load chart.
func New(logger *zap.Logger, chart io.Writer) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{logger: logger, chart: chart}
}

// Boxes logs weight and volume statistics of the boxes read from input.
func (r *Reporter) Boxes(items []fleet.Item) error {
	weights, err := stats.Of(items, func(it fleet.Item) float64 { return it.Weight })
	if err != nil {
		return fmt.Errorf("box weight stats: %w", err)
	}
	volumes, err := stats.Of(items, func(it fleet.Item) float64 { return it.Volume })
	if err != nil {
		return fmt.Errorf("box volume stats: %w", err)
	}

	r.logger.Info("boxes loaded",
		zap.Int("count", len(items)),
		zap.Object("weight", summary(weights)),
		zap.Object("volume", summary(volumes)),
	)
	return nil
}

// Feasibility logs the outcome of the arithmetic pre-check.
func (r *Reporter) Feasibility(result dispatch.Feasibility, err error) {
	fields := []zap.Field{
		zap.Float64("total_volume", result.TotalVolume),
		zap.Float64("average_load", result.AverageLoad),
		zap.Float64("capacity", result.Capacity),
	}
	if err != nil {
		r.logger.Warn("no solution, the limit per truck is exceeded", append(fields, zap.Error(err))...)
		return
	}
	r.logger.Info("feasibility check passed", fields...)
}

// Fleet logs truck weight statistics, a sample of trucks and any overloaded
// truck, then draws the load chart when enabled.
func (r *Reporter) Fleet(f *fleet.Fleet, items []fleet.Item) error {
	bins := f.Bins()
	r.Overloads(bins)

	weights, err := stats.Of(bins, func(b fleet.Bin) float64 { return b.Weight })
	if err != nil {
		return fmt.Errorf("truck weight stats: %w", err)
	}

	sample := make(binArray, 0, 5)
	for _, idx := range SampleIndexes(len(bins)) {
		sample = append(sample, bins[idx])
	}
	r.logger.Info("trucks loaded",
		zap.Object("weight", summary(weights)),
		zap.Array("sample", sample),
	)

	if r.chart != nil {
		if err := WriteLoadChart(r.chart, bins, items); err != nil {
			return fmt.Errorf("write load chart: %w", err)
		}
	}
	return nil
}

// Overloads warns about every bin holding more volume than its capacity and
// returns how many it found.
func (r *Reporter) Overloads(bins []fleet.Bin) int {
	n := 0
	for _, b := range bins {
		if !b.Overloaded() {
			continue
		}
		n++
		r.logger.Warn("truck is overloaded",
			zap.Int("truck", b.ID),
			zap.Float64("volume", b.Volume),
			zap.Float64("capacity", b.Capacity),
		)
	}
	return n
}

// SampleIndexes picks a few representative indexes out of n: the first two,
// the middle one and the last two, without duplicates.
func SampleIndexes(n int) []int {
	candidates := []int{0, 1, n / 2, n - 2, n - 1}
	out := make([]int, 0, len(candidates))
	seen := make(map[int]struct{}, len(candidates))
	for _, idx := range candidates {
		if idx < 0 || idx >= n {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// WriteLoadChart draws one row per truck. Each box is a run of characters,
// one per chartScale weight units rounded up, alternating between '|' and
// '-' so neighbouring boxes stay distinguishable.
func WriteLoadChart(w io.Writer, bins []fleet.Bin, items []fleet.Item) error {
	var sb strings.Builder
	for _, b := range bins {
		fmt.Fprintf(&sb, "Truck %4d(%8.2f):", b.ID, b.Weight)
		marks := [2]byte{'|', '-'}
		for i, idx := range b.Items {
			n := int(math.Ceil(items[idx].Weight / chartScale))
			sb.WriteString(strings.Repeat(string(marks[i%2]), n))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type summary stats.Summary

func (s summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat64("avg", s.Avg)
	enc.AddFloat64("std", s.Std)
	enc.AddFloat64("min", s.Min)
	enc.AddFloat64("max", s.Max)
	enc.AddFloat64("delta", s.Delta)
	return nil
}

type binArray []fleet.Bin

func (a binArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, b := range a {
		if err := enc.AppendObject(binObject(b)); err != nil {
			return err
		}
	}
	return nil
}

type binObject fleet.Bin

func (b binObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("id", b.ID)
	enc.AddFloat64("weight", b.Weight)
	enc.AddFloat64("volume", b.Volume)
	enc.AddFloat64("max_volume", b.Capacity)
	enc.AddInt("boxes", len(b.Items))
	return nil
}
