package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Supported store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendMinio  = "minio"
)

// Config holds the complete store configuration
type Config struct {
	Store     StoreConfig     `yaml:"store" json:"store"`
	SQLite    SQLiteConfig    `yaml:"sqlite" json:"sqlite"`
	Minio     MinioConfig     `yaml:"minio" json:"minio"`
	Log       LogConfig       `yaml:"log" json:"log"`
	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding"`
}

// StoreConfig selects the persistence backend and store policies
type StoreConfig struct {
	Backend            string `yaml:"backend" json:"backend"`                           // json|sqlite|memory|minio
	Path               string `yaml:"path" json:"path"`                                 // JSON document path
	CreateIfMissing    bool   `yaml:"create_if_missing" json:"create_if_missing"`       // absent document means empty store
	RejectDuplicateIDs bool   `yaml:"reject_duplicate_ids" json:"reject_duplicate_ids"` // fail inserts of existing ids
	Dimension          int    `yaml:"dimension" json:"dimension"`                       // 0 disables insert-time checks
}

// SQLiteConfig configures the SQLite snapshot backend
type SQLiteConfig struct {
	DSN string `yaml:"dsn" json:"dsn"` // database file path or :memory:
}

// MinioConfig configures the object storage backend
type MinioConfig struct {
	Endpoint     string `yaml:"endpoint" json:"endpoint"`
	AccessKey    string `yaml:"access_key" json:"access_key"`
	SecretKey    string `yaml:"secret_key" json:"secret_key"`
	Bucket       string `yaml:"bucket" json:"bucket"`
	Key          string `yaml:"key" json:"key"`
	Secure       bool   `yaml:"secure" json:"secure"`
	CreateBucket bool   `yaml:"create_bucket" json:"create_bucket"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug|info|warn|error
	Format string `yaml:"format" json:"format"` // text|json|none
}

// EmbeddingConfig configures how texts are sent to the embedding provider
type EmbeddingConfig struct {
	BatchSize         int     `yaml:"batch_size" json:"batch_size"`
	Parallelism       int     `yaml:"parallelism" json:"parallelism"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"` // 0 disables pacing
	Burst             int     `yaml:"burst" json:"burst"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendJSON,
			Path:    "persisted_vectors.json",
		},
		SQLite: SQLiteConfig{
			DSN: "vectors.sqlite",
		},
		Minio: MinioConfig{
			Endpoint: "localhost:9000",
			Bucket:   "vectors",
			Key:      "persisted_vectors.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Embedding: EmbeddingConfig{
			BatchSize:   32,
			Parallelism: 4,
			Burst:       1,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateStoreConfig(); err != nil {
		return err
	}
	if err := c.validateLogConfig(); err != nil {
		return err
	}
	return c.validateEmbeddingConfig()
}

func (c *Config) validateStoreConfig() error {
	switch c.Store.Backend {
	case BackendJSON:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s backend", BackendJSON)
		}
	case BackendSQLite:
		if c.SQLite.DSN == "" {
			return fmt.Errorf("sqlite.dsn is required for the %s backend", BackendSQLite)
		}
	case BackendMemory:
	case BackendMinio:
		if c.Minio.Endpoint == "" || c.Minio.Bucket == "" {
			return fmt.Errorf("minio.endpoint and minio.bucket are required for the %s backend", BackendMinio)
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be one of: json, sqlite, memory, minio)", c.Store.Backend)
	}
	if c.Store.Dimension < 0 {
		return fmt.Errorf("store.dimension must be non-negative")
	}
	return nil
}

func (c *Config) validateLogConfig() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json", "none":
		return nil
	}
	return fmt.Errorf("invalid log format: %s (must be one of: text, json, none)", c.Log.Format)
}

func (c *Config) validateEmbeddingConfig() error {
	if c.Embedding.BatchSize < 1 {
		return fmt.Errorf("embedding.batch_size must be greater than 0")
	}
	if c.Embedding.Parallelism < 1 {
		return fmt.Errorf("embedding.parallelism must be greater than 0")
	}
	if c.Embedding.RequestsPerSecond < 0 {
		return fmt.Errorf("embedding.requests_per_second must be non-negative")
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", s)
}
