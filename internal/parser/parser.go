package parser

import (
	"fmt"
	"log/slog"
	"strings"

	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
)

const (
	magicLine  = "ply"
	formatLine = "format ascii 1.0"

	// maxWarnings bounds Table.Warnings for badly broken inputs
	maxWarnings = 64
)

// Options tune a parse
type Options struct {
	// Strict makes a wrong magic/format line an ErrNotPLY error instead of
	// an empty table.
	Strict bool

	// Logger receives debug and warning output; slog.Default() when nil.
	Logger *slog.Logger
}

// Parser reads one ASCII PLY text. ReadHeader must run before ReadValues.
type Parser struct {
	lines      []string
	opts       Options
	logger     *slog.Logger
	table      *schema.Table
	headerSize int  // index of the end_header line
	headerRead bool // ReadHeader finished successfully
	notPLY     bool // magic check failed in lenient mode
	suppressed int  // warnings dropped after maxWarnings
}

// New prepares a parser over the full input text
func New(text string, opts Options) *Parser {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Parser{
		lines:  lines,
		opts:   opts,
		logger: logger,
		table:  schema.NewTable(),
	}
}

// Parse reads text into a fully populated table using default options
func Parse(text string) (*schema.Table, error) {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions reads text into a fully populated table
func ParseWithOptions(text string, opts Options) (*schema.Table, error) {
	p := New(text, opts)
	if err := p.ReadHeader(); err != nil {
		return nil, err
	}
	if err := p.ReadValues(); err != nil {
		return nil, err
	}
	return p.Table(), nil
}

// Table returns the table built so far
func (p *Parser) Table() *schema.Table {
	return p.table
}

// HeaderSize is the index of the end_header line, valid after ReadHeader
func (p *Parser) HeaderSize() int {
	return p.headerSize
}

// IsPLY reports whether the first two lines are the magic and ascii format literals
func (p *Parser) IsPLY() bool {
	return len(p.lines) >= 2 && p.lines[0] == magicLine && p.lines[1] == formatLine
}

// checkMagic validates lines 0-1. In lenient mode a mismatch leaves the
// table empty and is only logged.
func (p *Parser) checkMagic() error {
	if p.IsPLY() {
		p.table.Format = strings.TrimPrefix(formatLine, "format ")
		return nil
	}

	first := ""
	if len(p.lines) > 0 {
		first = p.lines[0]
	}
	if p.opts.Strict {
		return fmt.Errorf("%w: first line %q", domainerrors.ErrNotPLY, first)
	}

	p.notPLY = true
	p.logger.Warn("input is not an ascii ply file, returning empty table", "first_line", first)
	return nil
}

// warn records a soft failure on the table
func (p *Parser) warn(format string, args ...interface{}) {
	if len(p.table.Warnings) >= maxWarnings {
		p.suppressed++
		return
	}
	msg := fmt.Sprintf(format, args...)
	p.table.Warn(msg)
	p.logger.Debug("ply soft failure", "warning", msg)
}

func (p *Parser) flushSuppressed() {
	if p.suppressed > 0 {
		p.table.Warn(fmt.Sprintf("%d more warnings suppressed", p.suppressed))
		p.suppressed = 0
	}
}
