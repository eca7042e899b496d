package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/viant/vecstore/snapshot"
	"github.com/viant/vecstore/vector"
)

const contentType = "application/json"

// Store implements snapshot.Persister for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	key    string
}

// New creates a persister writing the document to bucket/key.
func New(client *minio.Client, bucket, key string) *Store {
	if key == "" {
		key = snapshot.DefaultFileName
	}
	return &Store{client: client, bucket: bucket, key: key}
}

// Location returns the object URL used in error reports.
func (s *Store) Location() string {
	return fmt.Sprintf("minio://%s/%s", s.bucket, s.key)
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return vector.NewPersistenceError("open", s.Location(), err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return vector.NewPersistenceError("open", s.Location(), err)
	}
	return nil
}

// Save encodes records and uploads them, replacing the object.
func (s *Store) Save(ctx context.Context, records []vector.Record) error {
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, records); err != nil {
		return vector.NewPersistenceError("save", s.Location(), err)
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: contentType})
	return vector.NewPersistenceError("save", s.Location(), err)
}

// Load downloads and decodes the object. A missing object wraps
// snapshot.ErrNotFound.
func (s *Store) Load(ctx context.Context) ([]vector.Record, error) {
	data, err := s.download(ctx)
	if err != nil {
		return nil, vector.NewPersistenceError("load", s.Location(), err)
	}
	records, err := snapshot.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, vector.NewPersistenceError("load", s.Location(), err)
	}
	return records, nil
}

func (s *Store) download(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapError(err)
	}
	return data, nil
}

// Delete removes the object. A missing object is not an error.
func (s *Store) Delete(ctx context.Context) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return vector.NewPersistenceError("delete", s.Location(), err)
	}
	return nil
}

// Close is a no-op; the client is owned by the caller.
func (s *Store) Close() error { return nil }

func mapError(err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %v", snapshot.ErrNotFound, err)
	}
	return err
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

var _ snapshot.Persister = (*Store)(nil)
