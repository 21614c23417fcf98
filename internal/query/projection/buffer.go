package projection

import (
	"math"

	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
)

// Number is the set of element types a Buffer can hold, one per ValueType
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// Buffer is a flat, uniformly typed numeric buffer
type Buffer interface {
	// Type is the value type the buffer was materialized for
	Type() schema.ValueType
	Len() int
	// At returns element i widened to float64
	At(i int) float64
	// Float32s converts the buffer for float attribute upload
	Float32s() []float32
	// Uint32s converts the buffer for index upload
	Uint32s() []uint32
	// Data is the underlying typed slice ([]int8 ... []float64)
	Data() any
}

type typedBuffer[T Number] struct {
	typ  schema.ValueType
	data []T
}

func (b *typedBuffer[T]) Type() schema.ValueType { return b.typ }
func (b *typedBuffer[T]) Len() int               { return len(b.data) }
func (b *typedBuffer[T]) At(i int) float64       { return float64(b.data[i]) }
func (b *typedBuffer[T]) Data() any              { return b.data }

func (b *typedBuffer[T]) Float32s() []float32 {
	out := make([]float32, len(b.data))
	for i, v := range b.data {
		out[i] = float32(v)
	}
	return out
}

func (b *typedBuffer[T]) Uint32s() []uint32 {
	out := make([]uint32, len(b.data))
	for i, v := range b.data {
		out[i] = toIndex(float64(v))
	}
	return out
}

// Values returns the typed slice behind b when T matches its element type
func Values[T Number](b Buffer) ([]T, bool) {
	tb, ok := b.(*typedBuffer[T])
	if !ok {
		return nil, false
	}
	return tb.data, true
}

// materialize builds the buffer for t. Integer targets wrap like a C cast
// and store NaN as 0.
func materialize(t schema.ValueType, typeName string, values []float64) (Buffer, error) {
	switch t {
	case schema.TypeChar:
		return newTyped[int8](t, values), nil
	case schema.TypeUchar:
		return newTyped[uint8](t, values), nil
	case schema.TypeShort:
		return newTyped[int16](t, values), nil
	case schema.TypeUshort:
		return newTyped[uint16](t, values), nil
	case schema.TypeInt:
		return newTyped[int32](t, values), nil
	case schema.TypeUint:
		return newTyped[uint32](t, values), nil
	case schema.TypeFloat:
		return newTyped[float32](t, values), nil
	case schema.TypeDouble:
		return newTyped[float64](t, values), nil
	}
	return nil, &domainerrors.UnsupportedTypeError{TypeName: typeName}
}

func newTyped[T Number](t schema.ValueType, values []float64) Buffer {
	integer := t.IsInteger()
	data := make([]T, len(values))
	for i, v := range values {
		data[i] = convert[T](integer, v)
	}
	return &typedBuffer[T]{typ: t, data: data}
}

// toIndex truncates v to an index, wrapping negatives like a C cast.
// NaN and infinities become 0.
func toIndex(v float64) uint32 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return uint32(int64(v))
}

func convert[T Number](integer bool, v float64) T {
	if !integer {
		return T(v)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return T(int64(v))
}
