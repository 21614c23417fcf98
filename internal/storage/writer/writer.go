package writer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/leengari/ply-scene/internal/domain/data"
	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/mesh"
	"github.com/leengari/ply-scene/internal/storage"
)

// WritePLY serializes t as ASCII PLY. Elements are written in declaration
// order with the rows actually read, so the output always parses back to
// the same rows.
func WritePLY(w io.Writer, t *schema.Table) error {
	if t == nil {
		return fmt.Errorf("cannot write nil table")
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("ply\nformat ascii 1.0\n")
	for _, c := range t.Comments {
		fmt.Fprintf(bw, "comment %s\n", c)
	}
	for _, c := range t.ObjInfo {
		fmt.Fprintf(bw, "obj_info %s\n", c)
	}

	for _, el := range t.Elements {
		fmt.Fprintf(bw, "element %s %d\n", el.Name, len(el.Rows))
		for _, col := range el.Columns {
			if col.IsList() {
				fmt.Fprintf(bw, "property list %s %s %s\n", col.CountTypeName, col.TypeName, col.Name)
			} else {
				fmt.Fprintf(bw, "property %s %s\n", col.TypeName, col.Name)
			}
		}
	}
	bw.WriteString("end_header\n")

	var line []string
	for _, el := range t.Elements {
		for _, row := range el.Rows {
			line = line[:0]
			for i, v := range row {
				line = appendValue(line, el.Columns[i], v)
			}
			bw.WriteString(strings.Join(line, " "))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func appendValue(dst []string, col schema.Column, v data.Value) []string {
	if !v.IsList {
		return append(dst, formatValue(col.Type, v.Num))
	}
	dst = append(dst, strconv.Itoa(len(v.List)))
	for _, item := range v.List {
		dst = append(dst, formatValue(col.Type, item))
	}
	return dst
}

func formatValue(t schema.ValueType, v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case t.IsInteger() && v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10)
	case t == schema.TypeFloat:
		return strconv.FormatFloat(v, 'g', -1, 32)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SavePLY writes t to path atomically
func SavePLY(path string, t *schema.Table) error {
	var buf bytes.Buffer
	if err := WritePLY(&buf, t); err != nil {
		return err
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}

	slog.Info("table saved",
		slog.String("path", path),
		slog.Int("elements", len(t.Elements)),
	)
	return nil
}

// SaveMeshJSON exports the assembled buffers of m to path atomically
func SaveMeshJSON(path, name string, m *mesh.Mesh) error {
	if m == nil {
		return fmt.Errorf("cannot save nil mesh")
	}

	b, err := json.MarshalIndent(storage.DescribeMesh(name, m), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mesh %s: %w", name, err)
	}
	if err := writeAtomic(path, b); err != nil {
		return err
	}

	slog.Info("mesh saved",
		slog.String("mesh", name),
		slog.String("path", path),
		slog.Int("vertices", m.VertexCount()),
	)
	return nil
}

// writeAtomic writes to a temp file next to path, then renames it into place
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}
	return nil
}
