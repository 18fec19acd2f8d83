package headless

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"torus-life/internal/telemetry"
	"torus-life/pkg/core"
	"torus-life/pkg/sims/life"
)

func blinker() *life.Grid {
	g := life.NewEmpty(5, 5)
	g.Set(2, 1, true)
	g.Set(2, 2, true)
	g.Set(2, 3, true)
	return g
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRunWritesTelemetryAndFrames(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	g := blinker()
	r := New(g, Options{
		MaxGenerations: 4,
		StatsWindow:    2,
		FrameEvery:     2,
		Scale:          2,
		Output:         out,
		Logger:         quietLogger(),
	})
	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	if g.Generation() != 4 || r.Generation() != 4 {
		t.Fatalf("generation = %d/%d, want 4", g.Generation(), r.Generation())
	}
	if summary.Generations != 5 || summary.PopulationMin != 3 || summary.PopulationMax != 3 {
		t.Fatalf("summary = %+v", summary)
	}
	// A blinker swaps two cells each generation.
	if summary.Births != 8 || summary.Deaths != 8 {
		t.Fatalf("births/deaths = %d/%d, want 8/8", summary.Births, summary.Deaths)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 6 {
		t.Fatalf("csv has %d lines, want header + 5", len(lines))
	}
	for _, name := range []string{"gen_000000.png", "gen_000002.png", "gen_000004.png"} {
		if _, err := os.Stat(filepath.Join(dir, "frames", name)); err != nil {
			t.Errorf("missing frame %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "frames", "gen_000001.png")); err == nil {
		t.Error("unexpected frame for generation 1")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(blinker(), Options{Logger: quietLogger()})
	summary, err := r.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if r.Generation() != 0 || summary.Generations != 1 {
		t.Fatalf("generation = %d, summary = %+v", r.Generation(), summary)
	}
}

func TestRunWithoutOutput(t *testing.T) {
	r := New(life.NewEmpty(3, 3), Options{MaxGenerations: 2, FrameEvery: 1, Logger: quietLogger()})
	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.PopulationMax != 0 || summary.Generations != 3 {
		t.Fatalf("summary = %+v", summary)
	}
}

// cancelAfter wraps a sim and cancels the run once it has stepped n times.
type cancelAfter struct {
	core.Sim
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) Step() {
	c.Sim.Step()
	c.n--
	if c.n == 0 {
		c.cancel()
	}
}

func TestUnboundedRunRetainsBoundedState(t *testing.T) {
	const steps = 5000
	const window = 64
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := life.New(16, 16, core.NewRNG(8).Source())
	r := New(&cancelAfter{Sim: g, n: steps, cancel: cancel}, Options{
		StatsWindow: window,
		Logger:      quietLogger(),
	})
	summary, err := r.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if r.Generation() != steps || summary.Generations != steps+1 {
		t.Fatalf("generation = %d, summary generations = %d", r.Generation(), summary.Generations)
	}
	if summary.FirstGeneration != 0 || summary.LastGeneration != steps {
		t.Fatalf("summary range = %d..%d", summary.FirstGeneration, summary.LastGeneration)
	}
	if cap(r.window) > window {
		t.Fatalf("window buffer grew to %d, want <= %d", cap(r.window), window)
	}
	if len(r.prev) != 16*16 {
		t.Fatalf("previous-generation buffer len = %d, want %d", len(r.prev), 16*16)
	}
}

func TestFramesWithoutOutputWarns(t *testing.T) {
	var buf bytes.Buffer
	r := New(life.NewEmpty(3, 3), Options{
		MaxGenerations: 1,
		FrameEvery:     1,
		Logger:         slog.New(slog.NewTextHandler(&buf, nil)),
	})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "frames will not be written") {
		t.Fatalf("missing warning in log:\n%s", buf.String())
	}
}
