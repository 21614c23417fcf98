package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/leengari/ply-scene/internal/engine"
	"github.com/leengari/ply-scene/internal/executor"
	"github.com/leengari/ply-scene/internal/storage"
)

const help = `Commands:
  load <path>                        parse a file and select it
  reload                             re-read the selected file
  elements                           list elements
  describe <element>                 list properties of an element
  rows <element> [limit]             show decoded rows (default 10)
  extract <element> <prop|number>... flatten properties into one buffer
  mesh                               assemble the mesh
  normals [flat|smooth]              synthesize normals
  ls                                 list .ply files
  exit, \q                           quit`

// Start runs the shell on stdin/stdout
func Start(eng *engine.Engine) {
	Run(eng, os.Stdin, os.Stdout)
}

// Run reads commands from in until EOF or exit
func Run(eng *engine.Engine, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to ply-scene")
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or '\\q' to quit.")

	x := executor.New(eng)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			break
		}

		if line == "help" || line == "?" {
			fmt.Fprintln(out, help)
			continue
		}

		if line == "ls" || line == "list" {
			files, err := eng.Registry().List()
			if err != nil {
				fmt.Fprintf(out, "Error listing files: %v\n", err)
			} else {
				fmt.Fprintln(out, "Available files:")
				for _, f := range files {
					fmt.Fprintf(out, "  - %s\n", f)
				}
			}
			continue
		}

		result, err := x.Execute(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		PrintResult(out, result)
	}
}

// maxInline bounds how many buffer values are printed
const maxInline = 24

func PrintResult(w io.Writer, res *executor.Result) {
	if res.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
		return
	}

	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}

	if len(res.Rows) > 0 || len(res.Columns) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		// Header - show type if metadata available
		for i, col := range res.Columns {
			if i < len(res.Metadata) && res.Metadata[i].Type != "" {
				fmt.Fprintf(tw, "%s (%s)", col, res.Metadata[i].Type)
			} else {
				fmt.Fprintf(tw, "%s", col)
			}
			if i < len(res.Columns)-1 {
				fmt.Fprintf(tw, "\t")
			}
		}
		fmt.Fprintln(tw)

		// Separator
		for i := range res.Columns {
			fmt.Fprintf(tw, "---")
			if i < len(res.Columns)-1 {
				fmt.Fprintf(tw, "\t")
			}
		}
		fmt.Fprintln(tw)

		// Rows
		for _, row := range res.Rows {
			for i, col := range res.Columns {
				fmt.Fprintf(tw, "%v", row[col])
				if i < len(res.Columns)-1 {
					fmt.Fprintf(tw, "\t")
				}
			}
			fmt.Fprintln(tw)
		}
		tw.Flush()
		return
	}

	printBuffer(w, res.Data)
}

// printBuffer prints the head of a numeric buffer
func printBuffer(w io.Writer, data interface{}) {
	var values []string
	switch buf := data.(type) {
	case storage.Float32s:
		values = format(buf)
	case storage.Float64s:
		values = format(buf)
	case []float32:
		values = format(buf)
	case []float64:
		values = format(buf)
	case []int8:
		values = format(buf)
	case []uint8:
		values = format(buf)
	case []int16:
		values = format(buf)
	case []uint16:
		values = format(buf)
	case []int32:
		values = format(buf)
	case []uint32:
		values = format(buf)
	default:
		return
	}
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "[%s]\n", strings.Join(values, " "))
}

func format[T any](buf []T) []string {
	n := len(buf)
	if n > maxInline {
		n = maxInline
	}
	out := make([]string, 0, n+1)
	for _, v := range buf[:n] {
		out = append(out, fmt.Sprint(v))
	}
	if len(buf) > n {
		out = append(out, fmt.Sprintf("... (%d more)", len(buf)-n))
	}
	return out
}
