package orchestrator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// execCommand is swapped out in tests so no real docker invocations run.
var execCommand = exec.CommandContext

const (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func logInfof(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, colorBlue+"[orchestrator] "+colorReset+format+"\n", args...)
}

func logOKf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, colorGreen+"✓ "+colorReset+format+"\n", args...)
}

func logWarnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, colorYellow+"⚠ "+colorReset+format+"\n", args...)
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, colorRed+"✗ "+colorReset+format+"\n", args...)
}

// DBService describes how to start and health check a database container.
// SQLite is embedded and has no service entry.
type DBService struct {
	Vendor     string
	Service    string   // docker-compose service name
	ReadyCheck []string // command to verify readiness (passed to docker exec)
}

// DefaultServices returns the container-backed engines in benchmark order.
func DefaultServices() []DBService {
	return []DBService{
		{
			Vendor:     "postgresql",
			Service:    "postgres",
			ReadyCheck: []string{"docker", "exec", "benchmark-postgres", "pg_isready", "-U", "benchmark"},
		},
		{
			Vendor:     "mysql",
			Service:    "mysql",
			ReadyCheck: []string{"docker", "exec", "benchmark-mysql", "mysqladmin", "ping", "-h", "localhost", "--silent"},
		},
		{
			Vendor:     "neo4j",
			Service:    "neo4j",
			ReadyCheck: []string{"docker", "exec", "benchmark-neo4j", "cypher-shell", "-u", "neo4j", "-p", "benchmark123", "RETURN 1"},
		},
		{
			Vendor:     "arangodb",
			Service:    "arangodb",
			ReadyCheck: []string{"docker", "exec", "benchmark-arangodb", "arangosh", "--server.password", "benchmark123", "--javascript.execute-string", "db._version()"},
		},
	}
}

// ServiceByVendor returns the DBService for a vendor tag. Embedded engines
// report ok=false and need no container management.
func ServiceByVendor(vendor string) (DBService, bool) {
	for _, s := range DefaultServices() {
		if s.Vendor == vendor {
			return s, true
		}
	}

	return DBService{}, false
}

// StartService brings up a docker-compose service.
func StartService(ctx context.Context, service string) error {
	logInfof("Starting %s...", service)

	cmd := execCommand(ctx, "docker-compose", "up", "-d", service)
	cmd.Stdout = nil
	cmd.Stderr = nil

	return cmd.Run()
}

// StopService stops and removes a docker-compose service.
func StopService(ctx context.Context, service string) error {
	logWarnf("Stopping %s to free memory...", service)

	stop := execCommand(ctx, "docker-compose", "stop", service)

	err := stop.Run()
	if err != nil {
		logErrf("%v", err)
	}

	rm := execCommand(ctx, "docker-compose", "rm", "-f", service)

	return rm.Run()
}

// WaitReady polls the readiness check until it succeeds or the context is
// canceled.
func WaitReady(ctx context.Context, svc DBService) error {
	logInfof("Waiting for %s to be ready...", svc.Vendor)

	select {
	case <-time.After(5 * time.Second):
	case <-ctx.Done():
		return ctx.Err()
	}

	deadline := time.After(90 * time.Second)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			logErrf("%s: readiness timeout after 90s", svc.Vendor)
			return fmt.Errorf("%s: readiness timeout after 90s", svc.Vendor)
		case <-ticker.C:
			if runReadyCheck(ctx, svc.ReadyCheck) == nil {
				logOKf("%s is ready", svc.Vendor)
				return nil
			}
		}
	}
}

// runReadyCheck executes a readiness check command.
// The commands are defined internally in DefaultServices, not from user input.
func runReadyCheck(ctx context.Context, args []string) error {
	return execCommand(ctx, args[0], args[1:]...).Run()
}

// Cleanup tears down all docker-compose services and removes volumes.
func Cleanup(ctx context.Context) error {
	logWarnf("Cleaning up containers and volumes...")

	cmd := execCommand(ctx, "docker-compose", "down", "-v")

	if err := cmd.Run(); err != nil {
		logErrf("Cleanup failed: %v", err)
		return err
	}

	logOKf("Cleanup complete")

	return nil
}
