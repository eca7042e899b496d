package snapshot

import (
	"context"
	"os"

	"github.com/viant/vecstore/vector"
)

// ErrNotFound is wrapped by Load when no document has been persisted yet.
//
// Implementations should return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// Persister saves and loads the full record sequence. Both operations report
// failures as *vector.PersistenceError.
type Persister interface {
	// Save replaces the persisted document with records, preserving order.
	Save(ctx context.Context, records []vector.Record) error

	// Load parses the persisted document. It fails when the document is
	// absent, unreadable or malformed.
	Load(ctx context.Context) ([]vector.Record, error)

	// Close releases resources held by the persister.
	Close() error
}
