package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "localhost", cfg.Relational.PostgreSQL.Host)
	assert.Equal(t, "5432", cfg.Relational.PostgreSQL.Port)
	assert.Equal(t, "3306", cfg.Relational.MySQL.Port)
	assert.Equal(t, "benchmark.db", cfg.Relational.SQLite.Database)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.Neo4j.URI)
	assert.Equal(t, "http://localhost:8529", cfg.Graph.ArangoDB.Endpoint)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("NEO4J_URI", "bolt://graph.internal:7687")

	cfg := Default()

	assert.Equal(t, "db.internal", cfg.Relational.PostgreSQL.Host)
	assert.Equal(t, "bolt://graph.internal:7687", cfg.Graph.Neo4j.URI)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Relational.MySQL.Host)
}

func TestLoadYAML(t *testing.T) {
	content := `
relational:
  postgresql:
    host: pg.example.com
    port: "5433"
    database: bench
  sqlite:
    database: ":memory:"
graph:
  arangodb:
    endpoint: http://arango.example.com:8529
`

	path := filepath.Join(t.TempDir(), "databases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pg.example.com", cfg.Relational.PostgreSQL.Host)
	assert.Equal(t, "5433", cfg.Relational.PostgreSQL.Port)
	assert.Equal(t, ":memory:", cfg.Relational.SQLite.Database)
	assert.Equal(t, "http://arango.example.com:8529", cfg.Graph.ArangoDB.Endpoint)

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost", cfg.Relational.MySQL.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/databases.yaml")

	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "benchmark",
		Password: "secret",
		Database: "bench",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=benchmark password=secret dbname=bench sslmode=disable",
		cfg.DSN(),
	)
}

func TestMySQLDSN(t *testing.T) {
	cfg := MySQLConfig{
		Host:     "localhost",
		Port:     "3306",
		User:     "benchmark",
		Password: "secret",
		Database: "bench",
	}

	assert.Equal(t,
		"benchmark:secret@tcp(localhost:3306)/bench?parseTime=true&charset=utf8mb4",
		cfg.DSN(),
	)
}
