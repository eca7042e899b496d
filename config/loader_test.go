package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(env map[string]string) *Loader {
	return &Loader{getenv: func(k string) string { return env[k] }}
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	require.NotNil(t, loader)
	assert.Len(t, loader.configPaths, 2)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := newTestLoader(nil).LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vecstore.yaml")
	content := `store:
  backend: sqlite
  create_if_missing: true
  dimension: 384
sqlite:
  dsn: /var/lib/vecstore/vectors.sqlite
log:
  level: debug
  format: json
embedding:
  batch_size: 64
  requests_per_second: 2.5
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := newTestLoader(nil).LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.True(t, cfg.Store.CreateIfMissing)
	assert.Equal(t, 384, cfg.Store.Dimension)
	assert.Equal(t, "/var/lib/vecstore/vectors.sqlite", cfg.SQLite.DSN)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 64, cfg.Embedding.BatchSize)
	assert.InDelta(t, 2.5, cfg.Embedding.RequestsPerSecond, 1e-9)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "persisted_vectors.json", cfg.Store.Path)
	assert.Equal(t, 4, cfg.Embedding.Parallelism)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vecstore.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("store:\n  backend: sqlite\n"), 0o600))

	cfg, err := newTestLoader(map[string]string{
		"VECSTORE_STORE_BACKEND":              "minio",
		"VECSTORE_MINIO_BUCKET":               "embeddings",
		"VECSTORE_MINIO_SECURE":               "true",
		"VECSTORE_STORE_REJECT_DUPLICATE_IDS": "1",
		"VECSTORE_EMBEDDING_PARALLELISM":      "8",
	}).LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, BackendMinio, cfg.Store.Backend)
	assert.Equal(t, "embeddings", cfg.Minio.Bucket)
	assert.True(t, cfg.Minio.Secure)
	assert.True(t, cfg.Store.RejectDuplicateIDs)
	assert.Equal(t, 8, cfg.Embedding.Parallelism)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("store: [unclosed"), 0o600))
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("store:\n  backend: redis\n"), 0o600))

	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{"WrongExtension", filepath.Join(dir, "config.json"), nil},
		{"Traversal", "../config.yaml", nil},
		{"MissingFile", filepath.Join(dir, "absent.yaml"), nil},
		{"MalformedYAML", badYAML, nil},
		{"InvalidValue", invalid, nil},
		{"BadEnvInt", "", map[string]string{"VECSTORE_STORE_DIMENSION": "many"}},
		{"BadEnvBool", "", map[string]string{"VECSTORE_MINIO_SECURE": "perhaps"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(tt.env).LoadConfig(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigSearchPaths(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(second, []byte("store:\n  backend: memory\n"), 0o600))

	loader := &Loader{configPaths: []string{first, second}, getenv: func(string) string { return "" }}
	cfg, err := loader.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
}
