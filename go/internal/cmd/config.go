package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir    string `yaml:"data_dir"`
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	NATS       struct {
		Enabled       bool   `yaml:"enabled"`
		URL           string `yaml:"url"`
		StreamName    string `yaml:"stream_name"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
}

func defaultConfig() *Config {
	cfg := &Config{
		DataDir:    "data",
		ListenAddr: ":8080",
		LogLevel:   "info",
	}
	cfg.NATS.URL = "nats://localhost:4222"
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// loadConfig reads the yaml config file, falling back to defaults when the
// file does not exist, then applies environment overrides.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.DataDir = getEnv("DATA_DIR", config.DataDir)
	config.ListenAddr = getEnv("LISTEN_ADDR", config.ListenAddr)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.NATS.Enabled = getEnvAsBool("NATS_ENABLED", config.NATS.Enabled)
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)

	return config, nil
}
