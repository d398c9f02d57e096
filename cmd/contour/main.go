// Command contour extracts document outlines from every PDF in a
// directory, writing one JSON file per input.
//
// Usage:
//
//	contour -input ./pdfs -output ./out
//	contour -input ./pdfs -output ./out -config contour.yaml -workers 8
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

	"github.com/tsawler/contour/batch"
	"github.com/tsawler/contour/export"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "contour:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inputDir   = flag.String("input", "input", "directory of PDF files to process")
		outputDir  = flag.String("output", "output", "directory for outline JSON files")
		configPath = flag.String("config", "", "optional YAML configuration file")
		workers    = flag.Int("workers", 0, "worker count override (0 keeps the configured value)")
		manifest   = flag.Bool("manifest", false, "write a batch report to <output>/manifest.json")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := batch.DefaultConfig()
	if *configPath != "" {
		loaded, err := batch.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc, err := batch.NewProcessor(cfg)
	if err != nil {
		return err
	}

	report, err := proc.ProcessDir(ctx, *inputDir, *outputDir)
	if err != nil {
		return err
	}

	if *manifest {
		data, err := export.JSONIndent(report)
		if err != nil {
			return err
		}
		path := filepath.Join(*outputDir, "manifest.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
	}

	fmt.Printf("processed %d, failed %d\n", report.Processed, report.Failed)
	if report.Failed > 0 {
		for _, r := range report.Results {
			if r.Error != "" {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", r.Input, r.Error)
			}
		}
	}
	return nil
}
