package engine

import (
	"context"
	"fmt"
	"log"

	driver "github.com/arangodb/go-driver"
	arangohttp "github.com/arangodb/go-driver/http"
	"github.com/skoredin/crossdb-bench/internal/config"
)

const arangoGraph = "social_graph"

type ArangoDB struct {
	cfg config.ArangoDBConfig
	db  driver.Database
}

func NewArangoDB(cfg config.ArangoDBConfig) *ArangoDB {
	return &ArangoDB{cfg: cfg}
}

func (a *ArangoDB) Vendor() string { return VendorArangoDB }

func (a *ArangoDB) Connect(ctx context.Context) bool {
	conn, err := arangohttp.NewConnection(arangohttp.ConnectionConfig{
		Endpoints: []string{a.cfg.Endpoint},
	})
	if err != nil {
		log.Printf("arangodb: connection setup failed: %v", err)
		return false
	}

	client, err := driver.NewClient(driver.ClientConfig{
		Connection:     conn,
		Authentication: driver.BasicAuthentication(a.cfg.User, a.cfg.Password),
	})
	if err != nil {
		log.Printf("arangodb: client creation failed: %v", err)
		return false
	}

	db, err := a.openDatabase(ctx, client)
	if err != nil {
		log.Printf("arangodb: connection failed: %v", err)
		return false
	}

	a.db = db

	return true
}

func (a *ArangoDB) openDatabase(ctx context.Context, client driver.Client) (driver.Database, error) {
	exists, err := client.DatabaseExists(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}

	if !exists {
		return client.CreateDatabase(ctx, a.cfg.Database, nil)
	}

	return client.Database(ctx, a.cfg.Database)
}

// Disconnect drops the handle; the HTTP connection holds no server-side
// session to release.
func (a *ArangoDB) Disconnect() {
	a.db = nil
}

// Execute runs an AQL statement. Bindings pass through by name; AQL
// references them as @name in the statement text.
func (a *ArangoDB) Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error) {
	if a.db == nil {
		return nil, fmt.Errorf("not connected")
	}

	var bindVars map[string]any
	if len(params) > 0 {
		bindVars = params.BindVars()
	}

	cursor, err := a.db.Query(ctx, query, bindVars)
	if err != nil {
		return nil, err
	}

	defer func() { _ = cursor.Close() }()

	if kind == Read {
		var rows []Row

		for cursor.HasMore() {
			var doc map[string]any
			if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
				return nil, err
			}

			rows = append(rows, Row(doc))
		}

		return &Result{Rows: rows}, nil
	}

	return &Result{Affected: cursor.Statistics().WritesExecuted()}, nil
}

func (a *ArangoDB) SetupSchema(ctx context.Context) bool {
	if a.db == nil {
		log.Printf("arangodb: schema setup on disconnected capability")
		return false
	}

	for _, name := range []string{"users", "posts"} {
		if err := a.ensureCollection(ctx, name); err != nil {
			log.Printf("arangodb: schema setup failed: %v", err)
			return false
		}
	}

	if err := a.ensureGraph(ctx); err != nil {
		log.Printf("arangodb: schema setup failed: %v", err)
		return false
	}

	if err := a.ensureEmailIndex(ctx); err != nil {
		log.Printf("arangodb: schema setup failed: %v", err)
		return false
	}

	return true
}

func (a *ArangoDB) ensureCollection(ctx context.Context, name string) error {
	exists, err := a.db.CollectionExists(ctx, name)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = a.db.CreateCollection(ctx, name, nil)

	return err
}

func (a *ArangoDB) ensureGraph(ctx context.Context) error {
	exists, err := a.db.GraphExists(ctx, arangoGraph)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = a.db.CreateGraphV2(ctx, arangoGraph, &driver.CreateGraphOptions{
		EdgeDefinitions: []driver.EdgeDefinition{{
			Collection: "writes",
			From:       []string{"users"},
			To:         []string{"posts"},
		}},
	})

	return err
}

func (a *ArangoDB) ensureEmailIndex(ctx context.Context) error {
	col, err := a.db.Collection(ctx, "users")
	if err != nil {
		return err
	}

	_, _, err = col.EnsurePersistentIndex(ctx, []string{"email"}, &driver.EnsurePersistentIndexOptions{
		Unique: true,
	})

	return err
}

func (a *ArangoDB) Cleanup(ctx context.Context) bool {
	if a.db == nil {
		return true
	}

	if err := a.removeGraph(ctx); err != nil {
		log.Printf("arangodb: cleanup failed: %v", err)
		return false
	}

	for _, name := range []string{"writes", "posts", "users"} {
		if err := a.removeCollection(ctx, name); err != nil {
			log.Printf("arangodb: cleanup failed: %v", err)
			return false
		}
	}

	return true
}

func (a *ArangoDB) removeGraph(ctx context.Context) error {
	exists, err := a.db.GraphExists(ctx, arangoGraph)
	if err != nil || !exists {
		return err
	}

	g, err := a.db.Graph(ctx, arangoGraph)
	if err != nil {
		return err
	}

	return g.Remove(ctx)
}

func (a *ArangoDB) removeCollection(ctx context.Context, name string) error {
	exists, err := a.db.CollectionExists(ctx, name)
	if err != nil || !exists {
		return err
	}

	col, err := a.db.Collection(ctx, name)
	if err != nil {
		return err
	}

	return col.Remove(ctx)
}
