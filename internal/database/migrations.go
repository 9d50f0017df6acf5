package database

import (
	"database/sql"
	"fmt"
)

// migrations are portable across postgres and sqlite3
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS provisioned_accounts (
		id VARCHAR(36) PRIMARY KEY,
		login_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		account_id VARCHAR(64) NOT NULL DEFAULT '',
		success BOOLEAN NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_provisioned_accounts_login_name ON provisioned_accounts(login_name)`,
	`CREATE INDEX IF NOT EXISTS idx_provisioned_accounts_created_at ON provisioned_accounts(created_at)`,
}

// RunMigrations creates the ledger tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
