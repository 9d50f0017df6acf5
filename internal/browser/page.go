package browser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/config"
	"go.uber.org/zap"
)

// ErrElementNotFound is returned when a locator matches nothing
var ErrElementNotFound = errors.New("element not found")

// Page is the browser surface the page objects drive
type Page interface {
	// Navigate loads path relative to the base URL and waits for the network
	// to go idle
	Navigate(path string) error
	Click(l Locator) error
	// ForceClick clicks without actionability checks
	ForceClick(l Locator) error
	Fill(l Locator, value string) error
	TextContent(l Locator) (string, error)
	InnerText(l Locator) (string, error)
	IsVisible(l Locator) (bool, error)
	Count(l Locator) (int, error)
	Hover(l Locator) error
	SelectOptionByLabel(l Locator, label string) error
	WaitVisible(l Locator, timeout time.Duration) error
	WaitHidden(l Locator, timeout time.Duration) error
	WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error
	URL() string
	Close() error
}

// Browser opens pages
type Browser interface {
	NewPage() (Page, error)
	Close() error
}

// Launch starts the browser selected by cfg.Driver
func Launch(cfg *config.BrowserConfig, logger *zap.Logger) (Browser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("launching browser",
		zap.String("driver", cfg.Driver),
		zap.Bool("headless", cfg.Headless),
		zap.String("baseURL", cfg.BaseURL))

	switch cfg.Driver {
	case config.DriverPlaywright:
		b, err := LaunchPlaywright(cfg)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.DriverChromedp:
		b, err := LaunchChromedp(cfg)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported browser driver %q", cfg.Driver)
	}
}

// resolveURL joins a page path onto the base URL. Absolute URLs pass through.
func resolveURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(baseURL, "/")
	if path == "" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
