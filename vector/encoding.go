package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbedding encodes a vector into the BLOB layout used by the SQLite
// snapshot and the vec_* SQL functions: little-endian IEEE 754 float32 values
// without a length prefix. An empty vector encodes to nil.
func EncodeEmbedding(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	return AppendEmbedding(make([]byte, 0, len(vec)*4), vec)
}

// AppendEmbedding appends the encoding of vec to dst.
func AppendEmbedding(dst []byte, vec []float32) []byte {
	for _, v := range vec {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// DecodeEmbedding decodes a BLOB produced by EncodeEmbedding. The dimension
// is derived from the BLOB size.
func DecodeEmbedding(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 4)", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
