package engine

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/skoredin/crossdb-bench/internal/config"
)

type SQLite struct {
	cfg config.SQLiteConfig
	db  *sql.DB
}

func NewSQLite(cfg config.SQLiteConfig) *SQLite {
	return &SQLite{cfg: cfg}
}

func (s *SQLite) Vendor() string { return VendorSQLite }

func (s *SQLite) Connect(ctx context.Context) bool {
	db, err := sql.Open("sqlite3", s.cfg.Database)
	if err != nil {
		log.Printf("sqlite: open failed: %v", err)
		return false
	}

	// The embedded driver serializes access through one connection;
	// more would contend on the file lock.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		log.Printf("sqlite: connection failed: %v", err)

		return false
	}

	s.db = db

	return true
}

func (s *SQLite) Disconnect() {
	if s.db == nil {
		return
	}

	_ = s.db.Close()
	s.db = nil
}

func (s *SQLite) Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error) {
	return execSQL(ctx, s.db, RewriteQuestionMark, query, kind, params)
}

func (s *SQLite) SetupSchema(ctx context.Context) bool {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			age INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			title TEXT NOT NULL,
			content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)`,
	}

	if err := execScript(ctx, s.db, schema); err != nil {
		log.Printf("sqlite: schema setup failed: %v", err)
		return false
	}

	return true
}

func (s *SQLite) Cleanup(ctx context.Context) bool {
	drops := []string{
		`DROP TABLE IF EXISTS posts`,
		`DROP TABLE IF EXISTS users`,
	}

	if err := execScript(ctx, s.db, drops); err != nil {
		log.Printf("sqlite: cleanup failed: %v", err)
		return false
	}

	return true
}
