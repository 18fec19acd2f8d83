// Package headless drives a simulation without a window, recording
// telemetry and optional PNG frames.
package headless

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"torus-life/internal/render"
	"torus-life/internal/telemetry"
	"torus-life/pkg/core"
)

// Options controls a headless run.
type Options struct {
	MaxGenerations int // 0 = until ctx is done
	StatsWindow    int // 0 = no periodic summaries
	FrameEvery     int // 0 = no frames
	Scale          int
	OnColor        color.Color
	OffColor       color.Color
	Output         *telemetry.Output
	Logger         *slog.Logger
}

// Runner advances a Sim one generation at a time. Every read of a generation
// (telemetry, frames) completes before the next Step.
type Runner struct {
	sim    core.Sim
	opts   Options
	prev   []uint8
	gen    uint64
	window []telemetry.GenerationStats
	total  telemetry.Accumulator
}

// New prepares a runner for sim.
func New(sim core.Sim, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.OnColor == nil {
		opts.OnColor = color.White
	}
	if opts.OffColor == nil {
		opts.OffColor = color.Black
	}
	return &Runner{sim: sim, opts: opts}
}

// Run records the current generation, then alternates Step and record until
// MaxGenerations steps have been taken or ctx is cancelled. It returns the
// summary over every recorded generation. Memory use does not grow with the
// number of generations.
func (r *Runner) Run(ctx context.Context) (telemetry.Summary, error) {
	if r.opts.FrameEvery > 0 && r.opts.Output == nil {
		r.opts.Logger.Warn("frame_every is set but there is no output directory; frames will not be written",
			"frame_every", r.opts.FrameEvery)
	}
	if r.opts.FrameEvery > 0 && r.opts.Output != nil {
		if err := os.MkdirAll(r.framesDir(), 0755); err != nil {
			return telemetry.Summary{}, fmt.Errorf("creating frames directory: %w", err)
		}
	}
	size := r.sim.Size()
	r.opts.Logger.Info("starting headless run",
		"sim", r.sim.Name(),
		"width", size.W,
		"height", size.H,
		"max_generations", r.opts.MaxGenerations,
	)

	if err := r.record(); err != nil {
		return telemetry.Summary{}, err
	}
	for r.opts.MaxGenerations == 0 || r.gen < uint64(r.opts.MaxGenerations) {
		if err := ctx.Err(); err != nil {
			r.opts.Logger.Info("run cancelled", "generation", r.gen)
			break
		}
		r.prev = append(r.prev[:0], r.sim.Cells()...)
		r.sim.Step()
		r.gen++
		if err := r.record(); err != nil {
			return telemetry.Summary{}, err
		}
	}
	r.flushWindow()

	summary := r.total.Summary()
	r.opts.Logger.Info("run finished", "summary", summary)
	return summary, nil
}

// Generation is the number of steps taken so far.
func (r *Runner) Generation() uint64 { return r.gen }

func (r *Runner) record() error {
	var prev []uint8
	if r.gen > 0 {
		prev = r.prev
	}
	stats := telemetry.Observe(r.gen, prev, r.sim.Cells())
	r.total.Add(stats)
	if err := r.opts.Output.Write(stats); err != nil {
		return err
	}
	if r.opts.FrameEvery > 0 && r.opts.Output != nil && r.gen%uint64(r.opts.FrameEvery) == 0 {
		if err := r.writeFrame(); err != nil {
			return err
		}
	}
	if r.opts.StatsWindow > 0 {
		r.window = append(r.window, stats)
		if len(r.window) >= r.opts.StatsWindow {
			r.flushWindow()
		}
	}
	return nil
}

func (r *Runner) flushWindow() {
	if len(r.window) == 0 {
		return
	}
	r.opts.Logger.Info("stats", "window", telemetry.Summarize(r.window))
	r.window = r.window[:0]
}

func (r *Runner) framesDir() string {
	return filepath.Join(r.opts.Output.Dir(), "frames")
}

func (r *Runner) writeFrame() error {
	img := render.Image(r.sim.Cells(), r.sim.Size(), r.opts.Scale, r.opts.OnColor, r.opts.OffColor)
	path := filepath.Join(r.framesDir(), fmt.Sprintf("gen_%06d.png", r.gen))
	r.opts.Logger.Debug("writing frame", "path", path)
	return render.WritePNG(path, img)
}
