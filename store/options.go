package store

import (
	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/vector"
)

type options struct {
	initial            []vector.Record
	createIfMissing    bool
	rejectDuplicateIDs bool
	dimension          int
	logger             *Logger
	index              index.Index
}

// Option configures a Store.
type Option func(*options)

// WithRecords seeds the store with records instead of loading the persisted
// document. An empty slice is ignored. Records are deep-copied and are not
// persisted until the first mutation or Flush.
func WithRecords(records []vector.Record) Option {
	return func(o *options) {
		o.initial = records
	}
}

// WithCreateIfMissing treats an absent document as an empty store. Unreadable
// or malformed documents still fail construction.
func WithCreateIfMissing() Option {
	return func(o *options) {
		o.createIfMissing = true
	}
}

// WithRejectDuplicateIDs makes Insert fail with vector.ErrDuplicateID when a
// record with the same id already exists.
func WithRejectDuplicateIDs() Option {
	return func(o *options) {
		o.rejectDuplicateIDs = true
	}
}

// WithDimension validates vector length at insert time. Zero disables the
// check and leaves mismatches to be reported by Search.
func WithDimension(d int) Option {
	return func(o *options) {
		o.dimension = d
	}
}

// WithLogger sets the logger. Defaults to NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithIndex sets the ranking index. The store rebuilds it on every change and
// owns it afterwards. Defaults to an exhaustive bruteforce index.
func WithIndex(ix index.Index) Option {
	return func(o *options) {
		o.index = ix
	}
}
