// Package database provides connection setup for the SQLite store and the
// optional Redis render cache. Connections are created once at startup and
// shared across the application via dependency injection. This package owns
// the connection lifecycle (open, configure, ping, close) and schema
// migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver -- imported for side effect of registering the driver.
	_ "github.com/mattn/go-sqlite3"

	"notewell/internal/config"
)

// NewSQLite opens the single-file SQLite store described by the config and
// verifies it is usable before returning. The file is created on first open.
//
// SQLite allows a single writer at a time; the pool is capped at one open
// connection so writes never race inside the process and the busy timeout
// in the DSN covers contention from other processes.
func NewSQLite(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return db, nil
}
