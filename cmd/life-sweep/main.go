package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gocarina/gocsv"

	"torus-life/internal/config"
	"torus-life/internal/sweep"
)

func main() {
	seeds := flag.Int("seeds", 64, "number of seeds to evaluate")
	generations := flag.Int("generations", 500, "generations to advance per seed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")

	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := sweep.Params{
		Width:       cfg.Life.Width,
		Height:      cfg.Life.Height,
		FirstSeed:   cfg.ResolveSeed(),
		Seeds:       *seeds,
		Generations: *generations,
		Workers:     *workers,
	}
	logger.Info("starting sweep",
		"width", p.Width,
		"height", p.Height,
		"first_seed", p.FirstSeed,
		"seeds", p.Seeds,
		"generations", p.Generations,
		"workers", p.Workers,
	)

	start := time.Now()
	results, err := sweep.Run(ctx, p)
	if err != nil {
		logger.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	if err := gocsv.Marshal(results, os.Stdout); err != nil {
		logger.Error("writing results", "error", err)
		os.Exit(1)
	}
	logger.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond), "aggregate", sweep.Summarize(results))
}
