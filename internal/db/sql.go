package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type SQLConnection struct {
	*sql.DB
}

// OpenSQLite opens the SQLite database at cfg.DSN and creates the schema if missing.
func OpenSQLite(ctx context.Context, cfg SQLConfig) (*SQLConnection, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn := &SQLConnection{db}
	if err := conn.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return conn, nil
}

// outputs holds a JSON array of URLs; created_at is RFC 3339 text in UTC.
func (conn *SQLConnection) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS generations (
			id TEXT PRIMARY KEY,
			user_email TEXT,
			input_url TEXT NOT NULL,
			outputs TEXT NOT NULL,
			style TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
	}

	for _, query := range queries {
		if _, err := conn.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
