// Package configpkg provides parsing functionality for harness configuration.
package configpkg

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the test harness.
//
// The values are read by viper from a config file or environment variables.
// Process environment overrides the file, the file overrides the defaults.
type Config struct {
	BaseURL                 string        `mapstructure:"BASE_URL"`
	BasePort                int           `mapstructure:"BASE_PORT"`
	BasePath                string        `mapstructure:"BASE_PATH"`
	AuthToken               string        `mapstructure:"AUTH_TOKEN"`
	LoggingEnabled          bool          `mapstructure:"LOGGING_ENABLED"`
	RetryCount              int           `mapstructure:"RETRY_COUNT"`
	TestTimeout             time.Duration `mapstructure:"TEST_TIMEOUT"`
	ParallelThreads         int           `mapstructure:"TEST_PARALLEL_THREADS"`
	SchemaValidationEnabled bool          `mapstructure:"SCHEMA_VALIDATION_ENABLED"`
	ResponseTimeCeiling     time.Duration `mapstructure:"RESPONSE_TIME_CEILING"`
	TestDataDir             string        `mapstructure:"TESTDATA_DIR"`
	Environment             string        `mapstructure:"GO_ENV"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("BASE_URL", "http://localhost")
	v.SetDefault("BASE_PORT", 8083)
	v.SetDefault("BASE_PATH", "/api")
	v.SetDefault("AUTH_TOKEN", "")
	v.SetDefault("LOGGING_ENABLED", true)
	v.SetDefault("RETRY_COUNT", 2)
	v.SetDefault("TEST_TIMEOUT", "30s")
	v.SetDefault("TEST_PARALLEL_THREADS", 3)
	v.SetDefault("SCHEMA_VALIDATION_ENABLED", true)
	v.SetDefault("RESPONSE_TIME_CEILING", "5s")
	v.SetDefault("TESTDATA_DIR", "testdata")
	v.SetDefault("GO_ENV", "test")

	v.AutomaticEnv()

	// A missing file is fine: defaults plus process environment serve
	// every key. Any other read failure is fatal.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshaling config: %w", err)
	}

	return c, nil
}

// BaseTarget composes the root URL all requests are issued against.
func (c Config) BaseTarget() string {
	return fmt.Sprintf("%s:%d%s", c.BaseURL, c.BasePort, c.BasePath)
}
