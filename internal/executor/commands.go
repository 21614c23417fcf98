package executor

import (
	"fmt"
	"strings"
)

// Execute runs one command line:
//
//	load <path> | reload | elements | describe <element> | rows <element> [limit]
//	extract <element> <property|number>... | mesh | normals [flat|smooth]
func (x *Executor) Execute(line string) (*Result, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "load", "open":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: load <path>")
		}
		return x.Load(args[0])
	case "reload":
		return x.Reload()
	case "elements":
		return x.Elements()
	case "describe":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: describe <element>")
		}
		return x.Describe(args[0])
	case "rows":
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("usage: rows <element> [limit]")
		}
		limit := 10
		if len(args) == 2 {
			n, err := parseLimit(args[1])
			if err != nil {
				return nil, err
			}
			limit = n
		}
		return x.Rows(args[0], limit)
	case "extract":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: extract <element> <property|number>...")
		}
		return x.Extract(args[0], args[1:])
	case "mesh":
		return x.Mesh()
	case "normals":
		mode := ""
		if len(args) > 0 {
			mode = args[0]
		}
		return x.Normals(mode)
	}
	return nil, fmt.Errorf("unknown command: %s", cmd)
}
