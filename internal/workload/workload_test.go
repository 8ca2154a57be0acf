package workload

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/skoredin/crossdb-bench/internal/benchmark"
	"github.com/skoredin/crossdb-bench/internal/engine"
	"github.com/skoredin/crossdb-bench/internal/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConn implements engine.Connection for driving the suites without a
// live database.
type mockConn struct {
	vendor   string
	execFunc func(query string, kind engine.Kind, params engine.Params) (*engine.Result, error)
	queries  []string
}

func (m *mockConn) Vendor() string                   { return m.vendor }
func (m *mockConn) Connect(context.Context) bool     { return true }
func (m *mockConn) Disconnect()                      {}
func (m *mockConn) SetupSchema(context.Context) bool { return true }
func (m *mockConn) Cleanup(context.Context) bool     { return true }

func (m *mockConn) Execute(_ context.Context, query string, kind engine.Kind, params engine.Params) (*engine.Result, error) {
	m.queries = append(m.queries, query)

	if m.execFunc != nil {
		return m.execFunc(query, kind, params)
	}

	return &engine.Result{}, nil
}

func newRelationalSuite(conn engine.Connection) (*RelationalSuite, *benchmark.Runner) {
	runner := benchmark.NewRunner(conn.Vendor())
	suite := NewRelationalSuite(conn, runner, generator.New(42), rand.New(rand.NewSource(42)))

	return suite, runner
}

func sampledIDs(n int) []engine.Row {
	rows := make([]engine.Row, n)
	for i := range rows {
		rows[i] = engine.Row{"id": int64(i + 1)}
	}

	return rows
}

func TestSelectByIDEndToEnd(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorPostgreSQL,
		execFunc: func(query string, kind engine.Kind, _ engine.Params) (*engine.Result, error) {
			if strings.HasPrefix(query, "SELECT id FROM users") {
				return &engine.Result{Rows: sampledIDs(10)}, nil
			}

			require.Equal(t, engine.Read, kind)

			return &engine.Result{Rows: sampledIDs(1)}, nil
		},
	}

	suite, runner := newRelationalSuite(mock)

	results := suite.SelectByID(context.Background(), 5)
	require.Len(t, results, 5)
	require.Len(t, runner.GetResults(), 5)

	var anySuccess bool

	for _, r := range results {
		assert.Equal(t, benchmark.OpSelectByID, r.Operation)
		assert.Equal(t, engine.VendorPostgreSQL, r.Vendor)
		assert.GreaterOrEqual(t, r.DurationMS, 0.0)

		anySuccess = anySuccess || r.Success
	}

	assert.True(t, anySuccess)
}

func TestSamplingEmptinessSkipsRunner(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorSQLite,
		execFunc: func(string, engine.Kind, engine.Params) (*engine.Result, error) {
			return &engine.Result{}, nil // empty dataset
		},
	}

	suite, runner := newRelationalSuite(mock)
	ctx := context.Background()

	assert.Empty(t, suite.SelectByID(ctx, 10))
	assert.Empty(t, suite.SelectByEmail(ctx, 10))
	assert.Empty(t, suite.SelectWithJoin(ctx, 10))
	assert.Empty(t, suite.Update(ctx, 10))
	assert.Empty(t, suite.Delete(ctx, 10))

	// The Runner must never have been touched, and only the sampling
	// queries should have reached the connection: one per operation.
	assert.Empty(t, runner.GetResults())
	require.Len(t, mock.queries, 5)

	for _, q := range mock.queries {
		assert.True(t, strings.HasPrefix(q, "SELECT"), "unexpected statement: %s", q)
	}
}

func TestDeleteConsumesIdentifiers(t *testing.T) {
	deleted := make(map[int64]int)

	mock := &mockConn{
		vendor: engine.VendorMySQL,
		execFunc: func(query string, _ engine.Kind, params engine.Params) (*engine.Result, error) {
			if strings.HasPrefix(query, "SELECT id FROM users") {
				return &engine.Result{Rows: sampledIDs(8)}, nil
			}

			id, ok := params.BindVars()["id"].(int64)
			require.True(t, ok)

			deleted[id]++

			return &engine.Result{Affected: 1}, nil
		},
	}

	suite, _ := newRelationalSuite(mock)

	// More deletes requested than the sample holds: clamp to 8.
	results := suite.Delete(context.Background(), 20)
	require.Len(t, results, 8)

	for id, count := range deleted {
		assert.Equal(t, 1, count, "id %d deleted more than once", id)
	}

	assert.Len(t, deleted, 8)
}

func TestInsertSingleProducesWrites(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorPostgreSQL,
		execFunc: func(query string, kind engine.Kind, params engine.Params) (*engine.Result, error) {
			require.Equal(t, engine.Write, kind)
			require.Len(t, params, 3)
			require.Equal(t, "name", params[0].Name)
			require.Equal(t, "email", params[1].Name)
			require.Equal(t, "age", params[2].Name)

			return &engine.Result{Affected: 1}, nil
		},
	}

	suite, _ := newRelationalSuite(mock)

	results := suite.InsertSingle(context.Background(), 3)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Equal(t, benchmark.OpInsertSingle, r.Operation)
		assert.True(t, r.Success)
		assert.Equal(t, int64(1), r.RecordsAffected)
	}
}

func TestInsertBatchPlaceholderShape(t *testing.T) {
	var captured string

	mock := &mockConn{
		vendor: engine.VendorSQLite,
		execFunc: func(query string, _ engine.Kind, params engine.Params) (*engine.Result, error) {
			captured = query

			return &engine.Result{Affected: int64(len(params) / 3)}, nil
		},
	}

	suite, _ := newRelationalSuite(mock)

	results := suite.InsertBatch(context.Background(), 4, 2)
	require.Len(t, results, 2)

	assert.Equal(t, 4, strings.Count(captured, "(%s, %s, %s)"))
	assert.Equal(t, int64(4), results[0].RecordsAffected)
}

func TestFaultingOperationDoesNotAbortPass(t *testing.T) {
	var calls int

	mock := &mockConn{
		vendor: engine.VendorMySQL,
		execFunc: func(string, engine.Kind, engine.Params) (*engine.Result, error) {
			calls++

			if calls%2 == 0 {
				return nil, fmt.Errorf("deadlock found")
			}

			return &engine.Result{Affected: 1}, nil
		},
	}

	suite, runner := newRelationalSuite(mock)

	results := suite.InsertSingle(context.Background(), 6)
	require.Len(t, results, 6)

	var failures int

	for _, r := range results {
		if !r.Success {
			failures++

			assert.Equal(t, "deadlock found", r.Error)
			assert.Equal(t, int64(0), r.RecordsAffected)
		}
	}

	assert.Equal(t, 3, failures)
	assert.Len(t, runner.GetResults(), 6)
}

func newGraphSuite(conn engine.Connection) (*GraphSuite, *benchmark.Runner) {
	runner := benchmark.NewRunner(conn.Vendor())
	suite := NewGraphSuite(conn, runner, generator.New(42), rand.New(rand.NewSource(42)))

	return suite, runner
}

func sampledNodeIDs(n int) []engine.Row {
	rows := make([]engine.Row, n)
	for i := range rows {
		rows[i] = engine.Row{"id": int64(i)}
	}

	return rows
}

func TestFindNodeByIDEndToEnd(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorNeo4j,
		execFunc: func(query string, _ engine.Kind, _ engine.Params) (*engine.Result, error) {
			if strings.Contains(query, "RETURN u.id AS id") {
				return &engine.Result{Rows: sampledNodeIDs(10)}, nil
			}

			return &engine.Result{Rows: sampledNodeIDs(1)}, nil
		},
	}

	suite, runner := newGraphSuite(mock)

	results := suite.FindNodeByID(context.Background(), 5)
	require.Len(t, results, 5)
	require.Len(t, runner.GetResults(), 5)

	for _, r := range results {
		assert.Equal(t, benchmark.OpFindNodeByID, r.Operation)
		assert.Equal(t, engine.VendorNeo4j, r.Vendor)
		assert.True(t, r.Success)
	}
}

func TestGraphSamplingEmptiness(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorNeo4j,
		execFunc: func(string, engine.Kind, engine.Params) (*engine.Result, error) {
			return &engine.Result{}, nil
		},
	}

	suite, runner := newGraphSuite(mock)
	ctx := context.Background()

	assert.Empty(t, suite.CreateRelationships(ctx, 10))
	assert.Empty(t, suite.FindNodeByID(ctx, 10))
	assert.Empty(t, suite.Traverse(ctx, 10))
	assert.Empty(t, suite.ShortestPath(ctx, 10))
	assert.Empty(t, runner.GetResults())
}

func TestCreateNodesBulkForArango(t *testing.T) {
	var batches []int

	mock := &mockConn{
		vendor: engine.VendorArangoDB,
		execFunc: func(query string, kind engine.Kind, params engine.Params) (*engine.Result, error) {
			require.Equal(t, engine.Write, kind)
			require.Contains(t, query, "INSERT doc INTO users")

			docs, ok := params.BindVars()["docs"].([]map[string]any)
			require.True(t, ok)

			batches = append(batches, len(docs))

			return &engine.Result{Affected: int64(len(docs))}, nil
		},
	}

	suite, _ := newGraphSuite(mock)

	// 250 nodes → bulk batches of 100, 100, 50.
	results := suite.CreateNodes(context.Background(), 250)
	require.Len(t, results, 3)
	assert.Equal(t, []int{100, 100, 50}, batches)

	var total int64
	for _, r := range results {
		assert.Equal(t, benchmark.OpCreateNode, r.Operation)
		total += r.RecordsAffected
	}

	assert.Equal(t, int64(250), total)
}

func TestCreateNodesPerNodeForNeo4j(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorNeo4j,
		execFunc: func(query string, _ engine.Kind, params engine.Params) (*engine.Result, error) {
			require.Contains(t, query, "CREATE (u:User")
			require.Len(t, params, 4)

			return &engine.Result{Affected: 1}, nil
		},
	}

	suite, _ := newGraphSuite(mock)

	results := suite.CreateNodes(context.Background(), 25)
	require.Len(t, results, 25)
}

func TestShortestPathDistinctEndpoints(t *testing.T) {
	mock := &mockConn{
		vendor: engine.VendorNeo4j,
		execFunc: func(query string, _ engine.Kind, params engine.Params) (*engine.Result, error) {
			if strings.Contains(query, "RETURN u.id AS id") {
				return &engine.Result{Rows: sampledNodeIDs(20)}, nil
			}

			vars := params.BindVars()
			require.NotEqual(t, vars["start_id"], vars["end_id"])

			return &engine.Result{Rows: sampledNodeIDs(1)}, nil
		},
	}

	suite, _ := newGraphSuite(mock)

	// Clamped to half the sample size.
	results := suite.ShortestPath(context.Background(), 100)
	assert.Len(t, results, 10)
}
