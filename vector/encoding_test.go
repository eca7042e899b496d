package vector

import (
	"math"
	"testing"
)

func TestEncodeDecodeEmbedding_RoundTrip(t *testing.T) {
	orig := []float32{0.0, 1.5, -2.25, 3.75, math.MaxFloat32, math.SmallestNonzeroFloat32}

	b := EncodeEmbedding(orig)
	if len(b) != 4*len(orig) {
		t.Fatalf("encoded length = %d, want %d", len(b), 4*len(orig))
	}
	decoded, err := DecodeEmbedding(b)
	if err != nil {
		t.Fatalf("DecodeEmbedding failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if decoded[i] != orig[i] {
			t.Fatalf("decoded[%d] = %v, want %v", i, decoded[i], orig[i])
		}
	}
}

func TestEncodeDecodeEmbedding_Empty(t *testing.T) {
	if b := EncodeEmbedding(nil); len(b) != 0 {
		t.Fatalf("expected empty blob for nil slice, got len=%d", len(b))
	}
	vec, err := DecodeEmbedding(nil)
	if err != nil {
		t.Fatalf("DecodeEmbedding(nil) failed: %v", err)
	}
	if len(vec) != 0 {
		t.Fatalf("expected empty slice for nil blob, got len=%d", len(vec))
	}
}

func TestDecodeEmbedding_InvalidLength(t *testing.T) {
	if _, err := DecodeEmbedding([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for 3-byte blob")
	}
}
