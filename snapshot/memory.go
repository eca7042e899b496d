package snapshot

import (
	"bytes"
	"context"
	"sync"

	"github.com/viant/vecstore/vector"
)

const memoryLocation = "memory"

// Memory keeps the encoded document in process memory. It is used by tests
// and by stores that do not need durability. Thread-safe.
type Memory struct {
	mu      sync.RWMutex
	doc     []byte
	saves   int
	saveErr error
}

// NewMemory creates an empty Memory persister. Load fails with ErrNotFound
// until the first Save.
func NewMemory() *Memory {
	return &Memory{}
}

// Save encodes records and replaces the held document.
func (m *Memory) Save(ctx context.Context, records []vector.Record) error {
	if err := ctx.Err(); err != nil {
		return vector.NewPersistenceError("save", memoryLocation, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return vector.NewPersistenceError("save", memoryLocation, m.saveErr)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return vector.NewPersistenceError("save", memoryLocation, err)
	}
	m.doc = buf.Bytes()
	m.saves++
	return nil
}

// Load decodes the held document.
func (m *Memory) Load(ctx context.Context) ([]vector.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, vector.NewPersistenceError("load", memoryLocation, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, vector.NewPersistenceError("load", memoryLocation, ErrNotFound)
	}
	records, err := Decode(bytes.NewReader(m.doc))
	if err != nil {
		return nil, vector.NewPersistenceError("load", memoryLocation, err)
	}
	return records, nil
}

// SetDocument replaces the held document with raw bytes, bypassing Encode.
func (m *Memory) SetDocument(doc []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = append([]byte(nil), doc...)
}

// Document returns a copy of the held document, or nil before the first Save.
func (m *Memory) Document() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil
	}
	return append([]byte(nil), m.doc...)
}

// Saves returns the number of successful Save calls.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// FailSaves makes subsequent Save calls fail with err until called with nil.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Close is a no-op for memory persistence.
func (m *Memory) Close() error { return nil }

// Ensure Memory satisfies the Persister interface.
var _ Persister = (*Memory)(nil)
