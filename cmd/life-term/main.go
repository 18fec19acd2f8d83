package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"torus-life/internal/config"
	"torus-life/internal/render"
	"torus-life/internal/telemetry"
	"torus-life/pkg/core"
	_ "torus-life/pkg/sims/life"
)

func main() {
	if err := run(); err != nil {
		slog.Error("terminal viewer failed", "error", err)
		os.Exit(1)
	}
}

type clearer interface {
	Clear()
}

type viewer struct {
	sim    core.Sim
	screen tcell.Screen
	step   *core.FixedStep
	seed   int64
	gen    uint64
	paused bool
}

func run() error {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	// The terminal belongs to the grid; only warnings and errors go to stderr.
	cfg.Log.Level = "warn"
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))
	seed := cfg.ResolveSeed()

	sim, err := core.New(cfg.Sim, cfg.SimOptions())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	v := &viewer{sim: sim, screen: screen, step: core.NewFixedStep(cfg.Display.TPS), seed: seed}
	return v.loop()
}

func (v *viewer) loop() error {
	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	poll := v.step.Step() / 4
	if poll < time.Millisecond {
		poll = time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	v.draw()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
			v.draw()
		case <-ticker.C:
			if !v.paused && v.step.ShouldStep() {
				v.advance()
				v.draw()
			}
		}
	}
}

// handleKey reports whether the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.advance()
	case 'r':
		v.reset(v.seed)
	case 's':
		v.reset(time.Now().UnixNano())
	case 'c':
		if c, ok := v.sim.(clearer); ok {
			c.Clear()
			v.gen = 0
			v.paused = true
		}
	}
	return false
}

func (v *viewer) advance() {
	v.sim.Step()
	v.gen++
}

func (v *viewer) reset(seed int64) {
	v.seed = seed
	v.sim.Reset(seed)
	v.gen = 0
}

func (v *viewer) draw() {
	size := v.sim.Size()
	cells := v.sim.Cells()
	v.screen.Clear()
	render.DrawTerminal(v.screen, cells, size, tcell.StyleDefault)

	stats := telemetry.Observe(v.gen, nil, cells)
	status := fmt.Sprintf("gen %d  pop %d  density %.3f  seed %d", stats.Generation, stats.Population, stats.Density, v.seed)
	if v.paused {
		status += "  [paused]"
	}
	status += "  (space pause, n step, r reset, s reseed, c clear, q quit)"
	render.DrawStatus(v.screen, size.H, status, tcell.StyleDefault.Reverse(true))
	v.screen.Show()
}
