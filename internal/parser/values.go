package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/leengari/ply-scene/internal/domain/data"
	"github.com/leengari/ply-scene/internal/domain/schema"
)

// ReadValues consumes exactly Count data lines per element, in declaration
// order, starting right after end_header. Blank lines count toward an
// element's quota without producing a row.
func (p *Parser) ReadValues() error {
	if !p.headerRead {
		return fmt.Errorf("ReadValues called before ReadHeader")
	}
	if p.notPLY {
		return nil
	}
	defer p.flushSuppressed()

	lineNo := p.headerSize + 1
	for _, el := range p.table.Elements {
		missing := 0
		for n := 0; n < el.Count; n++ {
			if lineNo >= len(p.lines) {
				missing++
				lineNo++
				continue
			}
			fields := strings.Fields(p.lines[lineNo])
			lineNo++
			if len(fields) == 0 {
				continue
			}
			el.AppendRow(p.readRow(el, fields, lineNo-1))
		}
		if missing > 0 {
			p.warn("element '%s': input ended %d lines early", el.Name, missing)
		}

		p.logger.Debug("ply element read",
			"element", el.Name,
			"declared", el.Count,
			"rows", len(el.Rows),
		)
	}
	return nil
}

// readRow walks tokens against the element's columns in lockstep. A list
// column takes its count token plus that many item tokens.
func (p *Parser) readRow(el *schema.Element, fields []string, lineNo int) data.Row {
	row := data.NewRow(len(el.Columns))
	cursor := 0

	next := func(t schema.ValueType, col string) float64 {
		if cursor >= len(fields) {
			p.warn("line %d: row too short for property '%s'", lineNo, col)
			cursor++
			return math.NaN()
		}
		v, ok := decodeValue(t, fields[cursor])
		if !ok {
			p.warn("line %d: cannot decode %q as %s for property '%s'", lineNo, fields[cursor], t, col)
		}
		cursor++
		return v
	}

	for _, col := range el.Columns {
		if !col.IsList() {
			row = append(row, data.Scalar(next(col.Type, col.Name)))
			continue
		}

		count := next(col.CountType, col.Name)
		n := p.listLength(count, col, len(fields)-cursor, lineNo)
		items := make([]float64, n)
		for i := range items {
			items[i] = next(col.Type, col.Name)
		}
		row = append(row, data.List(items))
	}

	if cursor < len(fields) {
		p.warn("line %d: %d extra values ignored", lineNo, len(fields)-cursor)
	}
	return row
}

// listLength bounds a decoded list count by its count type and by the
// tokens left on the line. Counts outside the count type's range give an
// empty list.
func (p *Parser) listLength(count float64, col schema.Column, remaining, lineNo int) int {
	if math.IsNaN(count) {
		return 0
	}
	if count < 0 || count > maxCount(col.CountType) {
		p.warn("line %d: list count %v out of range for %s in property '%s'", lineNo, count, col.CountType, col.Name)
		return 0
	}
	n := int(count)
	if n > remaining {
		p.warn("line %d: list count %d for property '%s' but only %d values", lineNo, n, col.Name, remaining)
		return remaining
	}
	return n
}

// maxCount is the largest value an integer count type can hold
func maxCount(t schema.ValueType) float64 {
	bits := t.Bits()
	if t.Signed() {
		bits--
	}
	return math.Exp2(float64(bits)) - 1
}
