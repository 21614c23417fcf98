package projection

import (
	"errors"

	"github.com/leengari/ply-scene/internal/domain/data"
	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
)

// Extract flattens the requested columns of every row into one buffer typed
// by the shared value type of the named columns. List cells contribute
// their decoded items; constants are appended verbatim.
func Extract(el *schema.Element, refs ...ColumnRef) (Buffer, error) {
	return ExtractProjection(el, NewProjection(refs...))
}

// ExtractProjection is Extract over a prepared projection
func ExtractProjection(el *schema.Element, proj *Projection) (Buffer, error) {
	positions, col, err := ValidateProjection(el, proj)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(el.Rows)*len(proj.Columns))
	for _, row := range el.Rows {
		values = ProjectRow(row, proj, positions, values)
	}

	typeName := col.TypeName
	return materialize(col.Type, typeName, values)
}

// ProjectRow appends one row's requested values to dst in request order.
// positions holds the column index of each named ref, as returned by
// ValidateProjection.
func ProjectRow(row data.Row, proj *Projection, positions []int, dst []float64) []float64 {
	named := 0
	for _, ref := range proj.Columns {
		if ref.IsConstant {
			dst = append(dst, ref.Constant)
			continue
		}
		dst = row[positions[named]].AppendTo(dst)
		named++
	}
	return dst
}

// Outcome tags a probe result
type Outcome int

const (
	NotFound Outcome = iota
	Found
)

func (o Outcome) String() string {
	if o == Found {
		return "found"
	}
	return "not_found"
}

// Result is the outcome of probing for an optional attribute
type Result struct {
	Outcome Outcome
	Buffer  Buffer // set when Found
	Missing string // first missing property when NotFound
}

// Probe extracts like Extract but reports an absent property as a NotFound
// result instead of an error. Any other failure is returned as an error.
func Probe(el *schema.Element, refs ...ColumnRef) (Result, error) {
	buf, err := Extract(el, refs...)
	if err != nil {
		var nf *domainerrors.PropertyNotFoundError
		if errors.As(err, &nf) {
			return Result{Outcome: NotFound, Missing: nf.Property}, nil
		}
		return Result{}, err
	}
	return Result{Outcome: Found, Buffer: buf}, nil
}
