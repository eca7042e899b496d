package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vecstore/snapshot"
)

func TestLogger_Operations(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	s, err := New(ctx, snapshot.NewMemory(), WithCreateIfMissing(), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, "a", "", []float32{1, 0}, nil))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"store loaded"`)
	assert.Contains(t, out, `"msg":"insert completed"`)
	assert.Contains(t, out, `"msg":"delete completed"`)
	assert.Contains(t, out, `"removed":1`)
	assert.Contains(t, out, `"msg":"search completed"`)
	assert.Contains(t, out, `"msg":"flush completed"`)
}

func TestLogger_Failures(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	mem := snapshot.NewMemory()
	s, err := New(ctx, mem, WithCreateIfMissing(), WithLogger(logger))
	require.NoError(t, err)
	mem.FailSaves(errors.New("read-only"))
	require.Error(t, s.Insert(ctx, "a", "", []float32{1}, nil))

	out := buf.String()
	assert.Contains(t, out, "flush failed")
	assert.Contains(t, out, "insert failed")
	assert.NotContains(t, out, "store loaded")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	assert.NotNil(t, NewTextLogger(slog.LevelInfo))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewLogger(nil))
}
