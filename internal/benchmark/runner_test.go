package benchmark

import (
	"fmt"
	"testing"
	"time"

	"github.com/skoredin/crossdb-bench/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	runner := NewRunner("postgresql")

	record := runner.Run(OpInsertSingle, func() (*engine.Result, error) {
		return &engine.Result{Affected: 1}, nil
	})

	assert.Equal(t, OpInsertSingle, record.Operation)
	assert.Equal(t, "postgresql", record.Vendor)
	assert.True(t, record.Success)
	assert.Equal(t, int64(1), record.RecordsAffected)
	assert.Empty(t, record.Error)
	assert.GreaterOrEqual(t, record.DurationMS, 0.0)
}

func TestRunReadLeavesAffectedZero(t *testing.T) {
	runner := NewRunner("sqlite")

	record := runner.Run(OpSelectByID, func() (*engine.Result, error) {
		return &engine.Result{Rows: []engine.Row{{"id": int64(1)}, {"id": int64(2)}}}, nil
	})

	assert.True(t, record.Success)
	// Row-sequence results are not counted; affected is for writes only.
	assert.Equal(t, int64(0), record.RecordsAffected)
}

func TestRunFaultContainment(t *testing.T) {
	runner := NewRunner("mysql")

	record := runner.Run(OpUpdate, func() (*engine.Result, error) {
		return nil, fmt.Errorf("duplicate entry 'a@b.com' for key 'email'")
	})

	assert.False(t, record.Success)
	assert.Equal(t, "duplicate entry 'a@b.com' for key 'email'", record.Error)
	assert.Equal(t, int64(0), record.RecordsAffected)
	assert.GreaterOrEqual(t, record.DurationMS, 0.0)
	require.Len(t, runner.GetResults(), 1)
}

func TestRunPanicContainment(t *testing.T) {
	runner := NewRunner("neo4j")

	record := runner.Run(OpCreateNode, func() (*engine.Result, error) {
		panic("driver blew up")
	})

	assert.False(t, record.Success)
	assert.Contains(t, record.Error, "driver blew up")
	assert.Equal(t, int64(0), record.RecordsAffected)
	assert.GreaterOrEqual(t, record.DurationMS, 0.0)
	require.Len(t, runner.GetResults(), 1)
}

func TestRunRecordsDurationOnFailure(t *testing.T) {
	runner := NewRunner("sqlite")

	record := runner.Run(OpDelete, func() (*engine.Result, error) {
		time.Sleep(5 * time.Millisecond)
		return nil, fmt.Errorf("locked")
	})

	assert.False(t, record.Success)
	assert.GreaterOrEqual(t, record.DurationMS, 4.0)
}

func TestRunOrderPreservation(t *testing.T) {
	runner := NewRunner("postgresql")

	const n = 10

	for i := 0; i < n; i++ {
		op := fmt.Sprintf("op_%d", i)
		runner.Run(op, func() (*engine.Result, error) {
			return &engine.Result{}, nil
		})
	}

	results := runner.GetResults()
	require.Len(t, results, n)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("op_%d", i), r.Operation)
	}

	runner.ClearResults()
	assert.Empty(t, runner.GetResults())
}

func TestGetResultsReturnsCopy(t *testing.T) {
	runner := NewRunner("sqlite")

	runner.Run(OpAggregate, func() (*engine.Result, error) {
		return &engine.Result{}, nil
	})

	first := runner.GetResults()
	first[0].Operation = "mutated"

	assert.Equal(t, OpAggregate, runner.GetResults()[0].Operation)
}
