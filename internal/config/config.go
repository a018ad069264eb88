package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Search strategies accepted in SEARCH_STRATEGY.
const (
	StrategySpatial   = "spatial"
	StrategyHaversine = "haversine"
)

// Config stores all configuration of the application.
// Values are read from app.env in the config directory and can be overridden by environment variables.
type Config struct {
	DBSource       string `mapstructure:"DB_SOURCE"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	SearchStrategy string `mapstructure:"SEARCH_STRATEGY"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	GinMode        string `mapstructure:"GIN_MODE"`
}

// LoadConfig reads configuration from path/app.env and the environment.
// A missing file is not an error; environment variables and defaults still apply.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("SEARCH_STRATEGY", StrategySpatial)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIN_MODE", "release")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	config.SearchStrategy = strings.ToLower(strings.TrimSpace(config.SearchStrategy))
	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.DBSource == "" {
		return errors.New("config: DB_SOURCE is required")
	}
	switch c.SearchStrategy {
	case StrategySpatial, StrategyHaversine:
	default:
		return fmt.Errorf("config: unknown SEARCH_STRATEGY %q", c.SearchStrategy)
	}
	return nil
}
