package vector

import (
	"maps"
	"slices"
)

// Record is the unit of storage: a caller supplied identifier, the source
// text, its embedding and optional metadata.
type Record struct {
	// ID identifies the record. It is not required to be unique; the store
	// keeps duplicates side by side unless configured otherwise.
	ID string `json:"id"`

	// Text is the content the vector was computed from.
	Text string `json:"text"`

	// Vector is the embedding. All records of a store are expected to share
	// one dimensionality agreed upon out of band.
	Vector []float32 `json:"vector"`

	// Metadata is an open key/value payload. It is omitted from the persisted
	// document when empty.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Clone returns a copy of r that shares no slice or map with it. A nil
// metadata map is replaced with a fresh empty one.
func (r Record) Clone() Record {
	out := Record{ID: r.ID, Text: r.Text, Vector: slices.Clone(r.Vector)}
	if r.Metadata == nil {
		out.Metadata = map[string]any{}
	} else {
		out.Metadata = maps.Clone(r.Metadata)
	}
	return out
}

// Dimension returns the length of the record vector.
func (r Record) Dimension() int { return len(r.Vector) }

// Match is a record returned by a similarity search together with its score.
type Match struct {
	Record
	Score float64 `json:"simScore"`
}

// CloneRecords deep-copies a record sequence, preserving order.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}
