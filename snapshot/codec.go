package snapshot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/viant/vecstore/vector"
)

// document is the persisted shape of a record. ID is a pointer so a missing
// key can be told apart from an empty identifier. Vector is read as float64
// so values float32 cannot hold are rejected instead of rounded to 0 or Inf.
type document struct {
	ID       *string        `json:"id"`
	Text     string         `json:"text"`
	Vector   []float64      `json:"vector"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Encode writes records as a JSON array of {id, text, vector, metadata}
// objects. Empty metadata is omitted and a nil sequence encodes as [].
func Encode(w io.Writer, records []vector.Record) error {
	if records == nil {
		records = []vector.Record{}
	}
	if err := gojson.NewEncoder(w).Encode(records); err != nil {
		return fmt.Errorf("snapshot: failed to encode records: %w", err)
	}
	return nil
}

// Decode parses a document written by Encode. The top level value must be an
// array, every element must carry an id, and nothing may follow the array.
// Records without metadata get a fresh empty map. Metadata integers decode
// as int64 and other numbers as float64. Vector components must be
// representable as float32: a non-zero value that would underflow to 0, or a
// value beyond the float32 range, fails the decode.
func Decode(r io.Reader) ([]vector.Record, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to read document: %w", err)
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("snapshot: document must be a JSON array, got %v", tok)
	}
	records := []vector.Record{}
	for dec.More() {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("snapshot: failed to decode record %d: %w", len(records), err)
		}
		if doc.ID == nil {
			return nil, fmt.Errorf("snapshot: record %d has no id", len(records))
		}
		vec, err := narrow(doc.Vector)
		if err != nil {
			return nil, fmt.Errorf("snapshot: record %q: %w", *doc.ID, err)
		}
		meta, _ := normalizeNumbers(doc.Metadata).(map[string]any)
		if meta == nil {
			meta = map[string]any{}
		}
		records = append(records, vector.Record{ID: *doc.ID, Text: doc.Text, Vector: vec, Metadata: meta})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("snapshot: unterminated document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("snapshot: unexpected data after document")
	}
	return records, nil
}

// narrow converts persisted components to float32, rejecting values that
// would lose their magnitude rather than precision.
func narrow(values []float64) ([]float32, error) {
	if values == nil {
		return nil, nil
	}
	out := make([]float32, len(values))
	for i, v := range values {
		f := float32(v)
		if math.IsInf(float64(f), 0) || (f == 0 && v != 0) {
			return nil, fmt.Errorf("vector component %d (%g) is outside the float32 range", i, v)
		}
		out[i] = f
	}
	return out, nil
}

// normalizeNumbers replaces gojson.Number values found in v with int64 when
// the literal is an integer that fits, and float64 otherwise.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case gojson.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return f
		}
		return string(t)
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeNumbers(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalizeNumbers(item)
		}
		return t
	}
	return v
}
