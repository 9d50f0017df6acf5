package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/advantage-qa/aos-e2e/internal/database"
	_ "github.com/lib/pq"
)

// TestDatabase represents an isolated postgres schema for ledger tests
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	masterDB   *sql.DB
}

// SetupTestDatabase creates an isolated schema and runs the ledger migrations
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadLedgerConfig(func(key string) string {
		switch key {
		case "LEDGER_DRIVER":
			return config.LedgerPostgres
		case "POSTGRES_USER":
			return getEnvOrDefault("POSTGRES_USER", "postgres")
		case "POSTGRES_PASSWORD":
			return getEnvOrDefault("POSTGRES_PASSWORD", "postgres")
		case "POSTGRES_DB":
			return getEnvOrDefault("POSTGRES_DB", "postgres")
		case "POSTGRES_HOSTNAME":
			return getEnvOrDefault("POSTGRES_HOSTNAME", "localhost")
		default:
			return ""
		}
	})
	if err != nil {
		t.Fatalf("Failed to load ledger config: %v", err)
	}

	masterDB, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to master database: %v", err)
	}

	schemaName := fmt.Sprintf("test_schema_%d_%d", time.Now().UnixNano(), rand.Intn(10000))
	if _, err = masterDB.Exec(fmt.Sprintf("CREATE SCHEMA %s", schemaName)); err != nil {
		masterDB.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	schemaCfg := *cfg
	schemaCfg.DSN, err = withSearchPath(cfg.DSN, schemaName)
	if err != nil {
		masterDB.Exec(fmt.Sprintf("DROP SCHEMA %s CASCADE", schemaName))
		masterDB.Close()
		t.Fatalf("Failed to build test schema DSN: %v", err)
	}
	schemaCfg.MaxOpenConns = 5
	schemaCfg.MaxIdleConns = 2

	testDB, err := database.Connect(&schemaCfg)
	if err != nil {
		masterDB.Exec(fmt.Sprintf("DROP SCHEMA %s CASCADE", schemaName))
		masterDB.Close()
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	td := &TestDatabase{
		DB:         testDB,
		SchemaName: schemaName,
		masterDB:   masterDB,
	}

	if err := database.RunMigrations(testDB); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return td
}

// Teardown drops the test schema and closes both connections
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
	}

	if td.masterDB != nil {
		_, err := td.masterDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName))
		if err != nil {
			t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
		}
		td.masterDB.Close()
	}
}

// withSearchPath pins the schema on a lib/pq DSN, which may be either a
// postgres:// URL or a key=value connection string
func withSearchPath(dsn, schema string) (string, error) {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return fmt.Sprintf("%s search_path=%s", dsn, schema), nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse ledger DSN: %w", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
