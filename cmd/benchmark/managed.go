package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/skoredin/crossdb-bench/internal/benchmark"
	"github.com/skoredin/crossdb-bench/internal/config"
	"github.com/skoredin/crossdb-bench/internal/orchestrator"
	"github.com/skoredin/crossdb-bench/internal/reporter"
)

const (
	cGreen = "\033[0;32m"
	cBlue  = "\033[0;34m"
	cRed   = "\033[0;31m"
	cReset = "\033[0m"
)

func colorLogf(color, format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, color+format+cReset+"\n", args...)
}

// runManaged starts each engine's container, runs the benchmark pass,
// stops the container, then prints a combined summary at the end. SQLite
// is embedded and runs without container management.
func runManaged() {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vendors := selectedVendors()

	colorLogf(cBlue, "Managed mode: testing %d engine(s) sequentially", len(vendors))

	var all []benchmark.Result

	for _, vendor := range vendors {
		colorLogf(cBlue, "================================================")
		colorLogf(cBlue, "  %s", vendor)
		colorLogf(cBlue, "================================================")

		results := runManagedPass(ctx, cfg, vendor)
		if len(results) == 0 {
			colorLogf(cRed, "✗ %s produced no records", vendor)
		} else {
			colorLogf(cGreen, "✓ %s benchmark complete (%d records)", vendor, len(results))
		}

		all = append(all, results...)

		_, _ = fmt.Fprintln(os.Stderr)
	}

	rep := reporter.New(*outputFormat, os.Stderr)
	rep.PrintHeader()
	rep.PrintResults(all)

	if *outDir != "" {
		if err := exportResults(*outDir, all); err != nil {
			log.Printf("Export failed: %v", err)
		}
	}

	if !*keepData {
		if err := orchestrator.Cleanup(ctx); err != nil {
			log.Printf("Container cleanup failed: %v", err)
		}
	}

	colorLogf(cGreen, "All benchmarks complete!")
}

func runManagedPass(ctx context.Context, cfg *config.Config, vendor string) []benchmark.Result {
	svc, containerized := orchestrator.ServiceByVendor(vendor)
	if !containerized {
		return runPass(ctx, cfg, vendor)
	}

	if err := orchestrator.StartService(ctx, svc.Service); err != nil {
		colorLogf(cRed, "✗ %s failed to start: %v", vendor, err)
		return nil
	}

	if err := orchestrator.WaitReady(ctx, svc); err != nil {
		if err := orchestrator.StopService(ctx, svc.Service); err != nil {
			log.Printf("Failed to stop %s: %v", svc.Service, err)
		}

		return nil
	}

	results := runPass(ctx, cfg, vendor)

	if err := orchestrator.StopService(ctx, svc.Service); err != nil {
		log.Printf("Failed to stop %s: %v", svc.Service, err)
	}

	return results
}
