package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Relational RelationalConfig `yaml:"relational"`
	Graph      GraphConfig      `yaml:"graph"`
}

type RelationalConfig struct {
	PostgreSQL PostgresConfig `yaml:"postgresql"`
	MySQL      MySQLConfig    `yaml:"mysql"`
	SQLite     SQLiteConfig   `yaml:"sqlite"`
}

type GraphConfig struct {
	Neo4j    Neo4jConfig    `yaml:"neo4j"`
	ArangoDB ArangoDBConfig `yaml:"arangodb"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type SQLiteConfig struct {
	// Database is the file path; ":memory:" runs fully in memory.
	Database string `yaml:"database"`
}

type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type ArangoDBConfig struct {
	Endpoint string `yaml:"endpoint"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Default returns the configuration for a local docker-compose stack.
// Environment variables override individual fields.
func Default() *Config {
	return &Config{
		Relational: RelationalConfig{
			PostgreSQL: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnv("POSTGRES_PORT", "5432"),
				User:     getEnv("POSTGRES_USER", "benchmark"),
				Password: getEnv("POSTGRES_PASSWORD", "benchmark123"),
				Database: getEnv("POSTGRES_DB", "benchmark"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
			MySQL: MySQLConfig{
				Host:     getEnv("MYSQL_HOST", "localhost"),
				Port:     getEnv("MYSQL_PORT", "3306"),
				User:     getEnv("MYSQL_USER", "benchmark"),
				Password: getEnv("MYSQL_PASSWORD", "benchmark123"),
				Database: getEnv("MYSQL_DB", "benchmark"),
			},
			SQLite: SQLiteConfig{
				Database: getEnv("SQLITE_DB", "benchmark.db"),
			},
		},
		Graph: GraphConfig{
			Neo4j: Neo4jConfig{
				URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
				User:     getEnv("NEO4J_USER", "neo4j"),
				Password: getEnv("NEO4J_PASSWORD", "benchmark123"),
			},
			ArangoDB: ArangoDBConfig{
				Endpoint: getEnv("ARANGODB_ENDPOINT", "http://localhost:8529"),
				User:     getEnv("ARANGODB_USER", "root"),
				Password: getEnv("ARANGODB_PASSWORD", "benchmark123"),
				Database: getEnv("ARANGODB_DB", "benchmark"),
			},
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
