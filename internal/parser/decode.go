package parser

import (
	"math"
	"strconv"

	"github.com/leengari/ply-scene/internal/domain/schema"
)

// decodeValue parses one token with the column's value type. Text that does
// not parse yields NaN and false; this is a soft failure, not an error.
// Integer types accept a float token and truncate it.
func decodeValue(t schema.ValueType, token string) (float64, bool) {
	switch {
	case t.IsInteger():
		if i, err := strconv.ParseInt(token, 10, 64); err == nil {
			return float64(i), true
		}
		if f, err := strconv.ParseFloat(token, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return math.Trunc(f), true
		}
		return math.NaN(), false

	case t.IsFloat():
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return math.NaN(), false
		}
		if t == schema.TypeFloat {
			f = float64(float32(f))
		}
		return f, true
	}
	return math.NaN(), false
}
