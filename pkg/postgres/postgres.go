package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ds124wfegd/comment-board/config"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// NewPostgresDB opens the process-wide pool. The pool is bounded by MaxOpenConns;
// requests past that limit wait for a free connection.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host":           cfg.Host,
		"dbname":         cfg.DBName,
		"max_open_conns": cfg.MaxOpenConns,
	}).Info("Successfully connected to PostgreSQL")
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS comments (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		content TEXT NOT NULL,
		likes INTEGER DEFAULT 0,
		create_time TIMESTAMP DEFAULT (CURRENT_TIMESTAMP AT TIME ZONE 'UTC')
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_create_time ON comments(create_time DESC)`,
}

// RunMigrations creates the comments table if it is missing.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
