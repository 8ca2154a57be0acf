package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/skoredin/crossdb-bench/internal/config"
)

type Neo4j struct {
	cfg    config.Neo4jConfig
	driver neo4j.DriverWithContext
}

func NewNeo4j(cfg config.Neo4jConfig) *Neo4j {
	return &Neo4j{cfg: cfg}
}

func (n *Neo4j) Vendor() string { return VendorNeo4j }

func (n *Neo4j) Connect(ctx context.Context) bool {
	driver, err := neo4j.NewDriverWithContext(n.cfg.URI, neo4j.BasicAuth(n.cfg.User, n.cfg.Password, ""))
	if err != nil {
		log.Printf("neo4j: driver creation failed: %v", err)
		return false
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)

		log.Printf("neo4j: connection failed: %v", err)

		return false
	}

	n.driver = driver

	return true
}

func (n *Neo4j) Disconnect() {
	if n.driver == nil {
		return
	}

	_ = n.driver.Close(context.Background())
	n.driver = nil
}

// Execute runs a Cypher statement in a fresh session. Bindings pass
// through by name; Cypher references them as $name in the statement text.
func (n *Neo4j) Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error) {
	if n.driver == nil {
		return nil, fmt.Errorf("not connected")
	}

	mode := neo4j.AccessModeWrite
	if kind == Read {
		mode = neo4j.AccessModeRead
	}

	session := n.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, query, params.BindVars())
	if err != nil {
		return nil, err
	}

	if kind == Read {
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}

		rows := make([]Row, len(records))
		for i, record := range records {
			rows[i] = Row(record.AsMap())
		}

		return &Result{Rows: rows}, nil
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return nil, err
	}

	counters := summary.Counters()
	affected := counters.NodesCreated() + counters.NodesDeleted() +
		counters.RelationshipsCreated() + counters.RelationshipsDeleted()

	return &Result{Affected: int64(affected)}, nil
}

func (n *Neo4j) SetupSchema(ctx context.Context) bool {
	// Neo4j has no fixed schema; constraints double as the unique indexes
	// the lookup workloads expect.
	constraints := []string{
		`CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		`CREATE CONSTRAINT user_email IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE`,
		`CREATE CONSTRAINT post_id IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE`,
	}

	for _, stmt := range constraints {
		if _, err := n.Execute(ctx, stmt, Write, nil); err != nil {
			log.Printf("neo4j: schema setup failed: %v", err)
			return false
		}
	}

	return true
}

func (n *Neo4j) Cleanup(ctx context.Context) bool {
	if _, err := n.Execute(ctx, `MATCH (x) DETACH DELETE x`, Write, nil); err != nil {
		log.Printf("neo4j: cleanup failed: %v", err)
		return false
	}

	return true
}
