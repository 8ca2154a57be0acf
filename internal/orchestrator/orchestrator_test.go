package orchestrator

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCommands records every command the orchestrator would run and makes
// each one succeed without touching docker.
func stubCommands(t *testing.T) *[][]string {
	t.Helper()

	var calls [][]string

	orig := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, append([]string{name}, args...))

		return exec.CommandContext(ctx, "true")
	}

	t.Cleanup(func() { execCommand = orig })

	return &calls
}

func TestServiceByVendor(t *testing.T) {
	svc, ok := ServiceByVendor("postgresql")
	require.True(t, ok)
	assert.Equal(t, "postgres", svc.Service)

	// SQLite is embedded: no container to manage.
	_, ok = ServiceByVendor("sqlite")
	assert.False(t, ok)
}

func TestCleanupTearsDownComposeStack(t *testing.T) {
	calls := stubCommands(t)

	require.NoError(t, Cleanup(context.Background()))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"docker-compose", "down", "-v"}, (*calls)[0])
}

func TestStopServiceStopsAndRemoves(t *testing.T) {
	calls := stubCommands(t)

	require.NoError(t, StopService(context.Background(), "mysql"))

	require.Len(t, *calls, 2)
	assert.Equal(t, []string{"docker-compose", "stop", "mysql"}, (*calls)[0])
	assert.Equal(t, []string{"docker-compose", "rm", "-f", "mysql"}, (*calls)[1])
}

func TestStartServiceBringsUpService(t *testing.T) {
	calls := stubCommands(t)

	require.NoError(t, StartService(context.Background(), "neo4j"))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"docker-compose", "up", "-d", "neo4j"}, (*calls)[0])
}
