// Package config provides configuration for the evaluation service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Timeouts
	StoreTimeout time.Duration

	// Ingest guard policy (rego). Empty means the built-in default.
	GuardPolicyPath string

	// API keys mapping key -> principal. Loaded from the config file;
	// EVAL_API_KEY/EVAL_API_PRINCIPAL provide a single-key fallback.
	APIKeys map[string]string

	// AllowAnonymous admits requests without a resolvable principal as
	// "anonymous" instead of rejecting them. Off unless set explicitly.
	AllowAnonymous bool

	// Logging
	LogLevel string
}

// fileConfig is the optional YAML config file shape.
type fileConfig struct {
	APIKeys []struct {
		Key       string `yaml:"key"`
		Principal string `yaml:"principal"`
	} `yaml:"api_keys"`
}

// Load loads configuration from environment variables, merging in the YAML
// file named by EVAL_CONFIG_FILE when set.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:     getEnv("DATABASE_URL", "file:evaluations.db?cache=shared&mode=rwc"),
		StoreTimeout:    time.Duration(getEnvInt("STORE_TIMEOUT_MS", 5000)) * time.Millisecond,
		GuardPolicyPath: getEnv("GUARD_POLICY_FILE", ""),
		APIKeys:         map[string]string{},
		AllowAnonymous:  getEnvBool("EVAL_ALLOW_ANONYMOUS", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if key := os.Getenv("EVAL_API_KEY"); key != "" {
		cfg.APIKeys[key] = getEnv("EVAL_API_PRINCIPAL", "default")
	}

	if path := os.Getenv("EVAL_CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	for _, k := range fc.APIKeys {
		if k.Key != "" && k.Principal != "" {
			c.APIKeys[k.Key] = k.Principal
		}
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
