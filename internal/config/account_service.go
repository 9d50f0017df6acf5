package config

import (
	"strings"
	"time"
)

// DefaultBaseURL is the public Advantage Online Shopping demo site
const DefaultBaseURL = "https://www.advantageonlineshopping.com"

// AccountServiceConfig holds configuration for the SOAP account service
type AccountServiceConfig struct {
	BaseURL string        `env:"AOS_BASE_URL" default:"https://www.advantageonlineshopping.com" validate:"required,url"`
	Timeout time.Duration `env:"ACCOUNT_SERVICE_TIMEOUT" default:"30s" validate:"gt=0"`
}

// LoadAccountServiceConfig loads account service configuration from environment variables
func LoadAccountServiceConfig(getenv func(string) string) (*AccountServiceConfig, error) {
	config := &AccountServiceConfig{}
	if err := applyDefaults(config); err != nil {
		return nil, err
	}

	stringFromEnv(getenv, "AOS_BASE_URL", &config.BaseURL)
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if err := durationFromEnv(getenv, "ACCOUNT_SERVICE_TIMEOUT", &config.Timeout); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
