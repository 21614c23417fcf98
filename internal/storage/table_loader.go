package storage

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/parser"
)

// ReadFile returns the file contents as text
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}

// LoadTable reads and parses one PLY file
func LoadTable(path string, opts parser.Options, logger *slog.Logger) (*schema.Table, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = logger
	}
	table, err := parser.ParseWithOptions(text, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rows := 0
	for _, el := range table.Elements {
		rows += len(el.Rows)
	}
	logger.Info("table loaded",
		slog.String("path", path),
		slog.Int("elements", len(table.Elements)),
		slog.Int("rows", rows),
		slog.Int("warnings", len(table.Warnings)),
	)

	return table, nil
}
