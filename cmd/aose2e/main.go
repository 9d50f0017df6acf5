package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	internalcli "github.com/advantage-qa/aos-e2e/internal/cli"
	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/advantage-qa/aos-e2e/internal/database"
	"github.com/advantage-qa/aos-e2e/internal/handlers"
	"github.com/advantage-qa/aos-e2e/internal/models"
	"github.com/advantage-qa/aos-e2e/internal/repository"
	"github.com/advantage-qa/aos-e2e/internal/services"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var version = "0.1.0"

// stubFirstAccountID keeps stub ids clear of the real service's low ids
const stubFirstAccountID = 1000

// openLedger connects to the ledger when one is configured. It returns a nil
// db when LEDGER_DRIVER is empty.
func openLedger(logger *zap.Logger) (*sql.DB, *config.LedgerConfig, error) {
	cfg, err := config.LoadLedgerConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ledger configuration: %w", err)
	}
	if !cfg.Enabled() {
		return nil, cfg, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to ledger: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run ledger migrations: %w", err)
	}
	logger.Debug("ledger connected", zap.String("driver", cfg.Driver))
	return db, cfg, nil
}

// ProvisionCommand returns the provision command
func ProvisionCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "provision",
		Usage: "Create test accounts on the account service",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "number of accounts to create"},
			&cli.StringFlag{Name: "login-name", Usage: "login name (only with --count 1)"},
			&cli.StringFlag{Name: "email", Usage: "email address (only with --count 1)"},
			&cli.StringFlag{Name: "password", Usage: "password for the new accounts"},
			&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
		},
		Action: func(c *cli.Context) error {
			accountCfg, err := config.LoadAccountServiceConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid account service configuration: %w", err)
			}

			opts := []services.ProvisionerOption{services.WithProvisionerLogger(logger)}

			db, ledgerCfg, err := openLedger(logger)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
				opts = append(opts, services.WithAccountStore(repository.NewAccountRepository(db, ledgerCfg.Driver, logger)))
			}

			client := services.NewAccountClient(accountCfg, services.WithLogger(logger))
			provisioner := services.NewProvisioner(client, opts...)

			return internalcli.RunProvision(c.Context, provisioner, internalcli.ProvisionOptions{
				Count: c.Int("count"),
				Overrides: models.AccountCreateParams{
					LoginName: c.String("login-name"),
					Email:     c.String("email"),
					Password:  c.String("password"),
				},
				JSON: c.Bool("json"),
			}, c.App.Writer)
		},
	}
}

// AccountsCommand returns the accounts command
func AccountsCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "accounts",
		Usage: "List recently provisioned accounts from the ledger",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of accounts to show"},
		},
		Action: func(c *cli.Context) error {
			db, ledgerCfg, err := openLedger(logger)
			if err != nil {
				return err
			}
			if db == nil {
				return fmt.Errorf("ledger is not configured: set LEDGER_DRIVER and LEDGER_DSN")
			}
			defer db.Close()

			repo := repository.NewAccountRepository(db, ledgerCfg.Driver, logger)
			return internalcli.RunAccounts(c.Context, repo, c.Int("limit"), c.App.Writer)
		},
	}
}

// StubCommand returns the stub command
func StubCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Serve an in-memory account service for offline runs",
		Action: func(c *cli.Context) error {
			serverCfg, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid server configuration: %w", err)
			}

			stub := handlers.NewAccountServiceHandler(stubFirstAccountID, logger)
			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig:   serverCfg,
				AccountHandler: stub,
				HealthHandler:  handlers.HealthCheck(stub),
				Logger:         logger,
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	logger, err := config.NewLogger(os.Getenv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	app := &cli.App{
		Name:    "aose2e",
		Usage:   "Advantage Online Shopping test account tooling",
		Version: version,
		Commands: []*cli.Command{
			ProvisionCommand(logger),
			AccountsCommand(logger),
			StubCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
