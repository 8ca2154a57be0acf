package engine

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/skoredin/crossdb-bench/internal/config"
)

type Postgres struct {
	cfg config.PostgresConfig
	db  *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) *Postgres {
	return &Postgres{cfg: cfg}
}

func (p *Postgres) Vendor() string { return VendorPostgreSQL }

func (p *Postgres) Connect(ctx context.Context) bool {
	db, err := sql.Open("postgres", p.cfg.DSN())
	if err != nil {
		log.Printf("postgresql: open failed: %v", err)
		return false
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		log.Printf("postgresql: connection failed: %v", err)

		return false
	}

	p.db = db

	return true
}

func (p *Postgres) Disconnect() {
	if p.db == nil {
		return
	}

	_ = p.db.Close()
	p.db = nil
}

func (p *Postgres) Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error) {
	return execSQL(ctx, p.db, RewriteOrdinal, query, kind, params)
}

func (p *Postgres) SetupSchema(ctx context.Context) bool {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			age INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)`,
	}

	if err := execScript(ctx, p.db, schema); err != nil {
		log.Printf("postgresql: schema setup failed: %v", err)
		return false
	}

	return true
}

func (p *Postgres) Cleanup(ctx context.Context) bool {
	drops := []string{
		`DROP TABLE IF EXISTS posts CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	if err := execScript(ctx, p.db, drops); err != nil {
		log.Printf("postgresql: cleanup failed: %v", err)
		return false
	}

	return true
}
