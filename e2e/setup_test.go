//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/browser"
	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/advantage-qa/aos-e2e/internal/models"
	"github.com/advantage-qa/aos-e2e/internal/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const pageWait = 10 * time.Second

var (
	driver      browser.Browser
	provisioner *services.Provisioner
	logger      *zap.Logger
)

// TestMain launches the configured browser and builds the account
// provisioner shared by all scenarios. Playwright browsers must be installed
// first: go run github.com/playwright-community/playwright-go/cmd/playwright install chromium
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	_ = godotenv.Load("../.env")

	var err error
	logger, err = config.NewLogger(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	accountCfg, err := config.LoadAccountServiceConfig(os.Getenv)
	if err != nil {
		logger.Error("invalid account service configuration", zap.Error(err))
		return 1
	}
	provisioner = services.NewProvisioner(
		services.NewAccountClient(accountCfg, services.WithLogger(logger)),
		services.WithProvisionerLogger(logger),
	)

	browserCfg, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		logger.Error("invalid browser configuration", zap.Error(err))
		return 1
	}
	driver, err = browser.Launch(browserCfg, logger)
	if err != nil {
		logger.Error("failed to launch browser", zap.Error(err))
		return 1
	}
	defer driver.Close()

	return m.Run()
}

// newPage opens a fresh page closed at the end of the test
func newPage(t *testing.T) browser.Page {
	t.Helper()
	page, err := driver.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// provisionAccount creates a fresh account and stops the test if that fails
func provisionAccount(t *testing.T) models.ProvisionedParams {
	t.Helper()
	account := provisioner.ProvisionTestAccount(context.Background(), models.AccountCreateParams{})
	if !account.Success {
		t.Fatalf("Failed to provision test account %s", account.LoginName)
	}
	t.Logf("Test user created: %s / %s", account.LoginName, account.Email)
	return account
}
