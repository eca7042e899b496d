package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/viant/vecstore/vector"
)

// DefaultFileName is the document name used when a directory-less default is
// needed.
const DefaultFileName = "persisted_vectors.json"

// File persists the record sequence as a single JSON document on the local
// file system.
type File struct {
	path string
	perm os.FileMode
}

// NewFile returns a File persister writing to path.
func NewFile(path string) *File {
	return &File{path: path, perm: 0o644}
}

// Path returns the document location.
func (f *File) Path() string { return f.path }

// Save encodes records and replaces the document. The bytes are written to a
// temp file in the same directory, synced, then renamed over the target.
func (f *File) Save(ctx context.Context, records []vector.Record) error {
	if err := ctx.Err(); err != nil {
		return vector.NewPersistenceError("save", f.path, err)
	}
	return vector.NewPersistenceError("save", f.path, f.writeAtomic(records))
}

func (f *File) writeAtomic(records []vector.Record) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()
	_ = tmp.Chmod(f.perm)

	buf := bufio.NewWriter(tmp)
	if err := Encode(buf, records); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return err
	}
	tmpName = ""

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// Load reads and decodes the document. A missing file wraps ErrNotFound.
func (f *File) Load(ctx context.Context) ([]vector.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, vector.NewPersistenceError("load", f.path, err)
	}
	data, err := os.ReadFile(f.path) // #nosec G304 -- path is controlled by caller
	if err != nil {
		return nil, vector.NewPersistenceError("load", f.path, err)
	}
	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, vector.NewPersistenceError("load", f.path, err)
	}
	return records, nil
}

// Close is a no-op for file persistence.
func (f *File) Close() error { return nil }

// Ensure File satisfies the Persister interface.
var _ Persister = (*File)(nil)
