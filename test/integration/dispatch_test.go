package integration

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/great-dispatch/internal/application"
	"github.com/eugenenazirov/great-dispatch/internal/config"
	"github.com/eugenenazirov/great-dispatch/internal/fleet"
)

type box struct {
	weight, volume float64
}

func newApp(t *testing.T, trucks int) *application.App {
	t.Helper()

	cfg := config.Config{
		Trucks:      trucks,
		LogLevel:    "info",
		LogEncoding: "json",
		Strategy:    "closest",
	}
	app, err := application.New(cfg, zaptest.NewLogger(t), nil)
	if err != nil {
		t.Fatalf("application.New returned error: %v", err)
	}
	return app
}

func puzzleInput(boxes []box) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n", len(boxes))
	for _, b := range boxes {
		fmt.Fprintf(&sb, "%g %g\n", b.weight, b.volume)
	}
	return sb.String()
}

// puzzleBoxes builds a deterministic instance shaped like the puzzle's
// larger test cases.
func puzzleBoxes(n int) []box {
	boxes := make([]box, n)
	for i := range boxes {
		boxes[i] = box{
			weight: float64(1 + (i*37)%97),
			volume: float64(1+(i*13)%9) / 2,
		}
	}
	return boxes
}

func TestIntegrationDispatchFlow(t *testing.T) {
	boxes := puzzleBoxes(1200)
	app := newApp(t, fleet.DefaultTrucks)

	var out bytes.Buffer
	if err := app.Dispatch(strings.NewReader(puzzleInput(boxes)), &out); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	line := out.String()
	if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
		t.Fatalf("expected a single terminated line, got %q", line)
	}

	fields := strings.Fields(line)
	if len(fields) != len(boxes) {
		t.Fatalf("expected %d trucks in output, got %d", len(boxes), len(fields))
	}

	weights := make([]float64, fleet.DefaultTrucks)
	volumes := make([]float64, fleet.DefaultTrucks)
	for i, field := range fields {
		truck, err := strconv.Atoi(field)
		if err != nil || truck < 0 || truck >= fleet.DefaultTrucks {
			t.Fatalf("box %d: invalid truck %q", i, field)
		}
		weights[truck] += boxes[i].weight
		volumes[truck] += boxes[i].volume
	}

	lightest, heaviest := weights[0], weights[0]
	for truck := range weights {
		if volumes[truck] > fleet.TruckCapacity {
			t.Fatalf("truck %d overloaded: %v", truck, volumes[truck])
		}
		lightest = min(lightest, weights[truck])
		heaviest = max(heaviest, weights[truck])
	}
	// Heaviest-first into the lightest truck keeps the spread within one box.
	if spread := heaviest - lightest; spread > 97 {
		t.Fatalf("unexpected weight spread %v", spread)
	}
}

func TestIntegrationDispatchIsDeterministic(t *testing.T) {
	input := puzzleInput(puzzleBoxes(500))

	var first, second bytes.Buffer
	if err := newApp(t, 40).Dispatch(strings.NewReader(input), &first); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := newApp(t, 40).Dispatch(strings.NewReader(input), &second); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("runs differ")
	}
}

func TestIntegrationOnboardingFlow(t *testing.T) {
	app := newApp(t, 1)

	var turns strings.Builder
	var want strings.Builder
	for i := 0; i < 20; i++ {
		near, far := 10+i, 50+i
		fmt.Fprintf(&turns, "Near%d\n%d\nFar%d\n%d\n", i, near, i, far)
		fmt.Fprintf(&want, "Near%d\n", i)
	}

	var out bytes.Buffer
	if err := app.Onboard(context.Background(), strings.NewReader(turns.String()), &out); err != nil {
		t.Fatalf("Onboard returned error: %v", err)
	}
	if out.String() != want.String() {
		t.Fatalf("unexpected targets:\n%s", out.String())
	}
}
