package projection

import (
	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
)

// ValidateProjection checks that every named column exists on the element
// and that all of them share one value type. It returns the column
// positions in request order and the shared type (TypeInvalid when only
// constants were requested).
func ValidateProjection(el *schema.Element, proj *Projection) ([]int, schema.Column, error) {
	positions := make([]int, 0, len(proj.Columns))
	var found []schema.Column

	for _, ref := range proj.Columns {
		if ref.IsConstant {
			continue
		}
		pos := el.ColumnIndex(ref.Column)
		if pos < 0 {
			return nil, schema.Column{}, &domainerrors.PropertyNotFoundError{
				Element:  el.Name,
				Property: ref.Column,
			}
		}
		positions = append(positions, pos)
		found = append(found, el.Columns[pos])
	}

	if len(found) == 0 {
		return positions, schema.Column{}, nil
	}

	first := found[0]
	for _, col := range found[1:] {
		if !sameType(first, col) {
			return nil, schema.Column{}, mismatch(el.Name, found)
		}
	}

	return positions, first, nil
}

func mismatch(element string, cols []schema.Column) error {
	err := &domainerrors.TypeMismatchError{Element: element}
	for _, col := range cols {
		err.Properties = append(err.Properties, col.Name)
		err.Types = append(err.Types, col.TypeName)
	}
	return err
}

// sameType compares value types; aliases such as float/float32 are equal,
// unrecognized tokens only match themselves
func sameType(a, b schema.Column) bool {
	if a.Type == schema.TypeInvalid || b.Type == schema.TypeInvalid {
		return a.Type == b.Type && a.TypeName == b.TypeName
	}
	return a.Type == b.Type
}
