package database

import (
	"database/sql"
	"fmt"

	"github.com/advantage-qa/aos-e2e/internal/config"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the ledger database, configures the pool and verifies the connection
func Connect(cfg *config.LedgerConfig) (*sql.DB, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("ledger is not configured")
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
