package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/parser"
)

// LoadDirectory parses every .ply file directly under dir, keyed by file name.
// One bad file fails the whole load.
func LoadDirectory(dir string, opts parser.Options, logger *slog.Logger) (map[string]*schema.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	tables := make(map[string]*schema.Table)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".ply") {
			continue
		}

		table, err := LoadTable(filepath.Join(dir, entry.Name()), opts, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
		tables[entry.Name()] = table
	}

	logger.Info("directory loaded",
		slog.String("path", dir),
		slog.Int("table_count", len(tables)),
	)

	return tables, nil
}
