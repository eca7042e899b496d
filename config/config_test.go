package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Store.Backend != BackendJSON {
		t.Errorf("Expected default backend json, got %s", cfg.Store.Backend)
	}
	if cfg.Store.Path != "persisted_vectors.json" {
		t.Errorf("Expected default path persisted_vectors.json, got %s", cfg.Store.Path)
	}
	if cfg.Store.CreateIfMissing {
		t.Error("Expected strict loading by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"UnknownBackend", func(c *Config) { c.Store.Backend = "redis" }, "invalid store backend"},
		{"MissingPath", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"MissingDSN", func(c *Config) { c.Store.Backend = BackendSQLite; c.SQLite.DSN = "" }, "sqlite.dsn"},
		{"MissingBucket", func(c *Config) { c.Store.Backend = BackendMinio; c.Minio.Bucket = "" }, "minio.bucket"},
		{"NegativeDimension", func(c *Config) { c.Store.Dimension = -1 }, "dimension"},
		{"BadLevel", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"BadFormat", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"ZeroBatch", func(c *Config) { c.Embedding.BatchSize = 0 }, "batch_size"},
		{"ZeroParallelism", func(c *Config) { c.Embedding.Parallelism = 0 }, "parallelism"},
		{"NegativeRate", func(c *Config) { c.Embedding.RequestsPerSecond = -1 }, "requests_per_second"},
		{"MemoryBackend", func(c *Config) { c.Store.Backend = BackendMemory; c.Store.Path = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
