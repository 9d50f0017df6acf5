package config

import (
	"fmt"
	"time"
)

// Ledger drivers
const (
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite3"
)

// LedgerConfig holds configuration for the optional provisioned-account ledger.
// An empty Driver disables the ledger.
type LedgerConfig struct {
	Driver          string        `env:"LEDGER_DRIVER" validate:"omitempty,oneof=postgres sqlite3"`
	DSN             string        `env:"LEDGER_DSN"`
	MaxOpenConns    int           `env:"LEDGER_MAX_OPEN_CONNS" default:"10" validate:"gt=0"`
	MaxIdleConns    int           `env:"LEDGER_MAX_IDLE_CONNS" default:"5" validate:"gte=0"`
	ConnMaxLifetime time.Duration `env:"LEDGER_CONN_MAX_LIFETIME" default:"5m"`
}

// LoadLedgerConfig loads ledger configuration from environment variables.
// For postgres without LEDGER_DSN the connection string is assembled from
// POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB and POSTGRES_HOSTNAME.
func LoadLedgerConfig(getenv func(string) string) (*LedgerConfig, error) {
	config := &LedgerConfig{}
	if err := applyDefaults(config); err != nil {
		return nil, err
	}

	stringFromEnv(getenv, "LEDGER_DRIVER", &config.Driver)
	stringFromEnv(getenv, "LEDGER_DSN", &config.DSN)
	if err := intFromEnv(getenv, "LEDGER_MAX_OPEN_CONNS", &config.MaxOpenConns); err != nil {
		return nil, err
	}
	if err := intFromEnv(getenv, "LEDGER_MAX_IDLE_CONNS", &config.MaxIdleConns); err != nil {
		return nil, err
	}
	if err := durationFromEnv(getenv, "LEDGER_CONN_MAX_LIFETIME", &config.ConnMaxLifetime); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	if config.Driver == LedgerPostgres && config.DSN == "" {
		dsn, err := postgresDSN(getenv)
		if err != nil {
			return nil, err
		}
		config.DSN = dsn
	}
	if config.Driver != "" && config.DSN == "" {
		return nil, fmt.Errorf("LEDGER_DSN is required")
	}

	return config, nil
}

// Enabled reports whether a ledger driver is configured
func (c *LedgerConfig) Enabled() bool {
	return c.Driver != ""
}

func postgresDSN(getenv func(string) string) (string, error) {
	user := getenv("POSTGRES_USER")
	password := getenv("POSTGRES_PASSWORD")
	database := getenv("POSTGRES_DB")
	host := getenv("POSTGRES_HOSTNAME")

	if user == "" {
		return "", fmt.Errorf("POSTGRES_USER is required")
	}
	if password == "" {
		return "", fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if database == "" {
		return "", fmt.Errorf("POSTGRES_DB is required")
	}
	if host == "" {
		return "", fmt.Errorf("POSTGRES_HOSTNAME is required")
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		host, user, password, database), nil
}
