package config

// ServerConfig holds configuration for the stub account service
type ServerConfig struct {
	Port string `env:"STUB_PORT" default:"8085" validate:"required,numeric"`
}

// LoadServerConfig loads stub server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	config := ServerConfig{}
	if err := applyDefaults(&config); err != nil {
		return config, err
	}
	stringFromEnv(getenv, "STUB_PORT", &config.Port)
	if err := validateConfig(&config); err != nil {
		return config, err
	}
	return config, nil
}
