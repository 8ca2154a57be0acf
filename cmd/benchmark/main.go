package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/skoredin/crossdb-bench/internal/benchmark"
	"github.com/skoredin/crossdb-bench/internal/config"
	"github.com/skoredin/crossdb-bench/internal/engine"
	"github.com/skoredin/crossdb-bench/internal/generator"
	"github.com/skoredin/crossdb-bench/internal/reporter"
	"github.com/skoredin/crossdb-bench/internal/workload"
)

var (
	dbFamily     = flag.String("type", "all", "Database family: relational, graph, all")
	vendorsFlag  = flag.String("vendors", "", "Comma-separated vendor tags (overrides -type)")
	configPath   = flag.String("config", "", "Path to YAML configuration file")
	outputFormat = flag.String("output", "table", "Output format: table, json, markdown")
	outDir       = flag.String("out-dir", "", "Directory for CSV and summary exports (empty = skip)")
	seed         = flag.Int64("seed", 0, "Random seed for reproducible runs (0 = time-based)")
	noSetup      = flag.Bool("no-setup", false, "Skip the unmeasured seed-data phase")
	keepData     = flag.Bool("keep-data", false, "Leave benchmark data (and managed containers) in place after the run")
	opTimeout    = flag.Duration("op-timeout", 0, "Per-operation deadline (0 = none)")
	managed      = flag.Bool("managed", false, "Manage Docker containers automatically (start/stop per database)")
)

// Seed-phase sizes: enough rows and edges for the join, traversal and
// pattern workloads to have something to find.
const (
	seedUsers         = 1000
	seedPosts         = 50
	seedNodes         = 500
	seedRelationships = 200
)

func main() {
	flag.Parse()

	if *managed {
		runManaged()
		return
	}

	runDirect()
}

func runDirect() {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var all []benchmark.Result

	for _, vendor := range selectedVendors() {
		log.Printf("Starting benchmark pass for %s...", vendor)
		all = append(all, runPass(ctx, cfg, vendor)...)
		log.Printf("Completed benchmark pass for %s", vendor)
	}

	report(all)
}

// selectedVendors resolves the -vendors / -type flags to an ordered list
// of vendor tags.
func selectedVendors() []string {
	if *vendorsFlag != "" {
		parts := strings.Split(*vendorsFlag, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}

		return parts
	}

	relational := []string{engine.VendorPostgreSQL, engine.VendorMySQL, engine.VendorSQLite}
	graph := []string{engine.VendorNeo4j, engine.VendorArangoDB}

	switch *dbFamily {
	case "relational":
		return relational
	case "graph":
		return graph
	case "all":
		return append(relational, graph...)
	default:
		log.Fatalf("Unknown database family: %s", *dbFamily)
		return nil
	}
}

// runPass executes one engine's full benchmark pass:
// connect → setupSchema → workloads → cleanup → disconnect.
// A false from connect or setupSchema skips the engine; an unknown vendor
// tag is a configuration mistake and terminates the run.
func runPass(ctx context.Context, cfg *config.Config, vendor string) []benchmark.Result {
	conn, err := engine.New(vendor, cfg)
	if err != nil {
		log.Fatalf("Invalid vendor configuration: %v", err)
	}

	if !conn.Connect(ctx) {
		log.Printf("Skipping %s: connection failed", vendor)
		return nil
	}

	defer conn.Disconnect()

	if !conn.SetupSchema(ctx) {
		log.Printf("Skipping %s: schema setup failed", vendor)
		return nil
	}

	results := runWorkloads(ctx, conn, vendor)

	if !*keepData {
		if !conn.Cleanup(ctx) {
			log.Printf("Cleanup failed for %s", vendor)
		}
	}

	return results
}

func runWorkloads(ctx context.Context, conn engine.Connection, vendor string) []benchmark.Result {
	runSeed := runSeedValue()
	runner := benchmark.NewRunner(vendor)
	gen := generator.New(runSeed)
	rng := rand.New(rand.NewSource(runSeed))

	timed := engine.WithTimeout(conn, *opTimeout)

	if engine.IsGraph(vendor) {
		suite := workload.NewGraphSuite(timed, runner, gen, rng)

		if !*noSetup {
			log.Printf("Seeding %s with %d nodes, %d relationships...", vendor, seedNodes, seedRelationships)

			if err := suite.Seed(ctx, seedNodes, seedRelationships); err != nil {
				log.Printf("Seed failed for %s: %v", vendor, err)
			}
		}

		return suite.RunAll(ctx, workload.DefaultGraphPlan())
	}

	suite := workload.NewRelationalSuite(timed, runner, gen, rng)

	if !*noSetup {
		log.Printf("Seeding %s with %d users, %d posts...", vendor, seedUsers, seedPosts)

		if err := suite.Seed(ctx, seedUsers, seedPosts); err != nil {
			log.Printf("Seed failed for %s: %v", vendor, err)
		}
	}

	return suite.RunAll(ctx, workload.DefaultRelationalPlan())
}

func runSeedValue() int64 {
	if *seed != 0 {
		return *seed
	}

	return time.Now().UnixNano()
}

func report(results []benchmark.Result) {
	rep := reporter.New(*outputFormat, os.Stdout)
	rep.PrintHeader()
	rep.PrintResults(results)

	if *outDir == "" {
		return
	}

	if err := exportResults(*outDir, results); err != nil {
		log.Printf("Export failed: %v", err)
		return
	}

	log.Printf("Results saved to %s/", *outDir)
}

func exportResults(dir string, results []benchmark.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "benchmark_results.csv"), func(f *os.File) error {
		return reporter.ExportCSV(f, results)
	}); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}

	if err := writeFile(filepath.Join(dir, "summary.json"), func(f *os.File) error {
		return reporter.ExportSummaryJSON(f, results)
	}); err != nil {
		return fmt.Errorf("summary export: %w", err)
	}

	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
