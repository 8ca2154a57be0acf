package engine

import (
	"context"
	"fmt"

	"github.com/skoredin/crossdb-bench/internal/config"
)

// Kind declares the intent of a statement. Callers state it explicitly
// instead of the engine guessing from the leading keyword, so a read
// issued through a write-shaped statement is never misclassified.
type Kind int

const (
	// Read executes the statement and returns its rows.
	Read Kind = iota
	// Write executes the statement and returns the affected-entity count.
	Write
)

// Row is one result row keyed by column or field name.
type Row map[string]any

// Result is the outcome of one Execute call: rows for reads,
// an affected count for writes.
type Result struct {
	Rows     []Row
	Affected int64
}

// Connection is a capability handle to one database engine.
//
// Connect, SetupSchema and Cleanup never propagate driver errors; they log
// a diagnostic with engine context and report a boolean, so the
// orchestrator can skip an unreachable engine and continue with the rest.
// Execute propagates errors uncaught — the benchmark Runner is the
// designated catcher for operation-level faults and must see them to time
// and record the failure.
type Connection interface {
	// Vendor returns the engine's vendor tag (e.g. "postgresql", "neo4j").
	Vendor() string

	// Connect establishes the underlying session from stored configuration.
	Connect(ctx context.Context) bool

	// Disconnect releases the session. Idempotent.
	Disconnect()

	// Execute submits an engine-native statement with optional bindings.
	// The statement must not be executed on a disconnected capability.
	Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error)

	// SetupSchema provisions the users/posts structures the workload
	// suites need, with a uniqueness constraint on email. Idempotent.
	SetupSchema(ctx context.Context) bool

	// Cleanup removes everything SetupSchema created. Idempotent.
	Cleanup(ctx context.Context) bool
}

// Relational vendor tags.
const (
	VendorPostgreSQL = "postgresql"
	VendorMySQL      = "mysql"
	VendorSQLite     = "sqlite"
)

// Graph vendor tags.
const (
	VendorNeo4j    = "neo4j"
	VendorArangoDB = "arangodb"
)

// New returns the capability for the given vendor tag. An unknown tag is a
// configuration mistake, not a runtime condition, and is reported as an
// error for the caller to treat as fatal.
func New(vendor string, cfg *config.Config) (Connection, error) {
	switch vendor {
	case VendorPostgreSQL:
		return NewPostgres(cfg.Relational.PostgreSQL), nil
	case VendorMySQL:
		return NewMySQL(cfg.Relational.MySQL), nil
	case VendorSQLite:
		return NewSQLite(cfg.Relational.SQLite), nil
	case VendorNeo4j:
		return NewNeo4j(cfg.Graph.Neo4j), nil
	case VendorArangoDB:
		return NewArangoDB(cfg.Graph.ArangoDB), nil
	default:
		return nil, fmt.Errorf("unknown vendor: %s", vendor)
	}
}

// IsGraph reports whether the vendor tag belongs to the graph family.
func IsGraph(vendor string) bool {
	return vendor == VendorNeo4j || vendor == VendorArangoDB
}
