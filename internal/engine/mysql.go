package engine

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/skoredin/crossdb-bench/internal/config"
)

type MySQL struct {
	cfg config.MySQLConfig
	db  *sql.DB
}

func NewMySQL(cfg config.MySQLConfig) *MySQL {
	return &MySQL{cfg: cfg}
}

func (m *MySQL) Vendor() string { return VendorMySQL }

func (m *MySQL) Connect(ctx context.Context) bool {
	db, err := sql.Open("mysql", m.cfg.DSN())
	if err != nil {
		log.Printf("mysql: open failed: %v", err)
		return false
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		log.Printf("mysql: connection failed: %v", err)

		return false
	}

	m.db = db

	return true
}

func (m *MySQL) Disconnect() {
	if m.db == nil {
		return
	}

	_ = m.db.Close()
	m.db = nil
}

func (m *MySQL) Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error) {
	return execSQL(ctx, m.db, RewriteQuestionMark, query, kind, params)
}

func (m *MySQL) SetupSchema(ctx context.Context) bool {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			age INT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_users_email (email)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT,
			title VARCHAR(255) NOT NULL,
			content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_posts_user_id (user_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB`,
	}

	if err := execScript(ctx, m.db, schema); err != nil {
		log.Printf("mysql: schema setup failed: %v", err)
		return false
	}

	return true
}

func (m *MySQL) Cleanup(ctx context.Context) bool {
	drops := []string{
		`DROP TABLE IF EXISTS posts`,
		`DROP TABLE IF EXISTS users`,
	}

	if err := execScript(ctx, m.db, drops); err != nil {
		log.Printf("mysql: cleanup failed: %v", err)
		return false
	}

	return true
}
