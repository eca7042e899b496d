package config

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/viant/vecstore/snapshot"
	miniosnap "github.com/viant/vecstore/snapshot/minio"
	"github.com/viant/vecstore/store"
	"github.com/viant/vecstore/vecutil"
)

// Open builds the persister and logger described by c and constructs a
// store over them. The persister is closed by Store.Close.
func (c *Config) Open(ctx context.Context, opts ...store.Option) (*store.Store, error) {
	p, err := c.Persister(ctx)
	if err != nil {
		return nil, err
	}
	s, err := store.New(ctx, p, append(c.StoreOptions(), opts...)...)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return s, nil
}

// Persister returns the snapshot backend selected by Store.Backend.
func (c *Config) Persister(ctx context.Context) (snapshot.Persister, error) {
	switch c.Store.Backend {
	case BackendJSON, "":
		return snapshot.NewFile(c.Store.Path), nil
	case BackendSQLite:
		return snapshot.OpenSQLite(ctx, c.SQLite.DSN)
	case BackendMemory:
		return snapshot.NewMemory(), nil
	case BackendMinio:
		client, err := minio.New(c.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(c.Minio.AccessKey, c.Minio.SecretKey, ""),
			Secure: c.Minio.Secure,
		})
		if err != nil {
			return nil, fmt.Errorf("config: minio client: %w", err)
		}
		p := miniosnap.New(client, c.Minio.Bucket, c.Minio.Key)
		if c.Minio.CreateBucket {
			if err := p.EnsureBucket(ctx); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	return nil, fmt.Errorf("config: unsupported store backend %q", c.Store.Backend)
}

// StoreOptions translates store policies and logging into store options.
func (c *Config) StoreOptions() []store.Option {
	opts := []store.Option{store.WithLogger(c.Logger())}
	if c.Store.CreateIfMissing || c.Store.Backend == BackendMemory {
		opts = append(opts, store.WithCreateIfMissing())
	}
	if c.Store.RejectDuplicateIDs {
		opts = append(opts, store.WithRejectDuplicateIDs())
	}
	if c.Store.Dimension > 0 {
		opts = append(opts, store.WithDimension(c.Store.Dimension))
	}
	return opts
}

// Logger returns the logger described by the log section.
func (c *Config) Logger() *store.Logger {
	level, _ := parseLevel(c.Log.Level)
	switch c.Log.Format {
	case "json":
		return store.NewJSONLogger(level)
	case "none":
		return store.NoopLogger()
	}
	return store.NewTextLogger(level)
}

// IndexOptions translates the embedding section into vecutil options.
func (c *Config) IndexOptions() []vecutil.IndexOption {
	return []vecutil.IndexOption{
		vecutil.WithBatchSize(c.Embedding.BatchSize),
		vecutil.WithParallelism(c.Embedding.Parallelism),
		vecutil.WithRateLimit(c.Embedding.RequestsPerSecond, c.Embedding.Burst),
	}
}
