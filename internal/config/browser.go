package config

import (
	"strings"
	"time"
)

// Browser drivers
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// BrowserConfig holds configuration for the browser used by scenarios
type BrowserConfig struct {
	Driver   string        `env:"BROWSER_DRIVER" default:"playwright" validate:"oneof=playwright chromedp"`
	Headless bool          `env:"BROWSER_HEADLESS" default:"true"`
	BaseURL  string        `env:"AOS_BASE_URL" default:"https://www.advantageonlineshopping.com" validate:"required,url"`
	Timeout  time.Duration `env:"BROWSER_TIMEOUT" default:"60s" validate:"gt=0"`
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{}
	if err := applyDefaults(config); err != nil {
		return nil, err
	}

	stringFromEnv(getenv, "BROWSER_DRIVER", &config.Driver)
	config.Driver = strings.ToLower(config.Driver)
	stringFromEnv(getenv, "AOS_BASE_URL", &config.BaseURL)
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if err := boolFromEnv(getenv, "BROWSER_HEADLESS", &config.Headless); err != nil {
		return nil, err
	}
	if err := durationFromEnv(getenv, "BROWSER_TIMEOUT", &config.Timeout); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// TimeoutMillis returns the timeout in the unit playwright expects
func (c *BrowserConfig) TimeoutMillis() float64 {
	return float64(c.Timeout.Milliseconds())
}
