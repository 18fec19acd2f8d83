package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"torus-life/internal/config"
	"torus-life/internal/headless"
	"torus-life/internal/telemetry"
	"torus-life/pkg/core"
	_ "torus-life/pkg/sims/life"
)

func main() {
	if err := run(); err != nil {
		slog.Error("headless run failed", "error", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	seed := cfg.ResolveSeed()

	sim, err := core.New(cfg.Sim, cfg.SimOptions())
	if err != nil {
		return err
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		logger.Info("parameters", append([]any{"seed", seed}, p.Parameters().Flatten()...)...)
	}

	out, err := telemetry.NewOutput(cfg.Run.OutputDir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	if out != nil {
		if err := cfg.WriteYAML(filepath.Join(out.Dir(), "config.yaml")); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	on, off := cfg.Colors()
	r := headless.New(sim, headless.Options{
		MaxGenerations: cfg.Run.MaxGenerations,
		StatsWindow:    cfg.Run.StatsWindow,
		FrameEvery:     cfg.Run.FrameEvery,
		Scale:          cfg.Display.Scale,
		OnColor:        on,
		OffColor:       off,
		Output:         out,
		Logger:         logger,
	})
	_, err = r.Run(ctx)
	return err
}
