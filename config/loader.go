package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.vecstore.yaml",
	"~/.config/vecstore/config.yaml",
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VECSTORE_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{configPaths: ConfigPaths, getenv: os.Getenv}
}

// LoadConfig loads configuration with priority order:
// 1. Environment variables
// 2. customPath, or the first existing file of ConfigPaths
// 3. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	path := customPath
	if path == "" {
		path = l.findConfigFile()
	} else if err := validateConfigPath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}
	if path != "" {
		if err := loadFromFile(config, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// loadFromFile decodes YAML over config; keys absent from the file keep
// their current values.
func loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated or taken from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"STORE_BACKEND":              func(v string) error { config.Store.Backend = v; return nil },
		"STORE_PATH":                 func(v string) error { config.Store.Path = v; return nil },
		"STORE_CREATE_IF_MISSING":    func(v string) error { return parseBool(v, &config.Store.CreateIfMissing) },
		"STORE_REJECT_DUPLICATE_IDS": func(v string) error { return parseBool(v, &config.Store.RejectDuplicateIDs) },
		"STORE_DIMENSION":            func(v string) error { return parseInt(v, &config.Store.Dimension) },

		"SQLITE_DSN": func(v string) error { config.SQLite.DSN = v; return nil },

		"MINIO_ENDPOINT":      func(v string) error { config.Minio.Endpoint = v; return nil },
		"MINIO_ACCESS_KEY":    func(v string) error { config.Minio.AccessKey = v; return nil },
		"MINIO_SECRET_KEY":    func(v string) error { config.Minio.SecretKey = v; return nil },
		"MINIO_BUCKET":        func(v string) error { config.Minio.Bucket = v; return nil },
		"MINIO_KEY":           func(v string) error { config.Minio.Key = v; return nil },
		"MINIO_SECURE":        func(v string) error { return parseBool(v, &config.Minio.Secure) },
		"MINIO_CREATE_BUCKET": func(v string) error { return parseBool(v, &config.Minio.CreateBucket) },

		"LOG_LEVEL":  func(v string) error { config.Log.Level = v; return nil },
		"LOG_FORMAT": func(v string) error { config.Log.Format = v; return nil },

		"EMBEDDING_BATCH_SIZE":          func(v string) error { return parseInt(v, &config.Embedding.BatchSize) },
		"EMBEDDING_PARALLELISM":         func(v string) error { return parseInt(v, &config.Embedding.Parallelism) },
		"EMBEDDING_REQUESTS_PER_SECOND": func(v string) error { return parseFloat(v, &config.Embedding.RequestsPerSecond) },
		"EMBEDDING_BURST":               func(v string) error { return parseInt(v, &config.Embedding.Burst) },
	}

	for name, setter := range envMappings {
		envVar := EnvPrefix + name
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}
	return nil
}

func (l *Loader) findConfigFile() string {
	for _, path := range l.configPaths {
		expanded := expandPath(path)
		if fileExists(expanded) {
			return expanded
		}
	}
	return ""
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
