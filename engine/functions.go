package engine

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/vecstore/vector"
	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once
var registerErr error

// RegisterVectorFunctions registers vec_cosine and vec_l2 with the driver so
// they are available on new connections opened after this call. Both take
// two embedding BLOBs in the vector.EncodeEmbedding layout. vec_cosine
// follows the same policy as vector.CosineSimilarity: a zero-magnitude
// operand scores 0 and a length mismatch is an error.
// Note: existing open connections will not see new functions.
func RegisterVectorFunctions(_ *sql.DB) error {
	registerOnce.Do(func() {
		for name, fn := range map[string]func(a, b []float32) (float64, error){
			"vec_cosine": vector.CosineSimilarity,
			"vec_l2":     vector.L2Distance,
		} {
			if err := sqlite.RegisterDeterministicScalarFunction(name, 2, binaryVectorFunc(name, fn)); err != nil {
				if !strings.Contains(err.Error(), "already") {
					registerErr = err
					return
				}
			}
		}
	})
	return registerErr
}

func binaryVectorFunc(name string, fn func(a, b []float32) (float64, error)) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		a, err := asEmbedding(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		b, err := asEmbedding(args[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if a == nil || b == nil {
			return nil, nil
		}
		v, err := fn(a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("unsupported argument type %T for embedding; want BLOB", arg)
	}
}
