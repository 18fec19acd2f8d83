//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"torus-life/internal/app"
	"torus-life/internal/config"
	"torus-life/pkg/core"
	_ "torus-life/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))
	seed := cfg.ResolveSeed()

	sim, err := core.New(cfg.Sim, cfg.SimOptions())
	if err != nil {
		slog.Error("failed to create sim", "error", err)
		os.Exit(1)
	}

	on, off := cfg.Colors()
	game := app.New(sim, cfg.Display.Scale, seed, on, off)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(windowTitle(sim.Name()))
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetWindowSize(w, h)

	slog.Info("starting", "sim", sim.Name(), "seed", seed, "width", sim.Size().W, "height", sim.Size().H)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game exited", "error", err)
		os.Exit(1)
	}
}
