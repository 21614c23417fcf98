package parser

import (
	"strconv"

	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/parser/lexer"
)

// ReadHeader reads declarations from line 2 up to end_header.
// An element carries either exactly one list property or any number of
// scalar properties, never both.
func (p *Parser) ReadHeader() error {
	if err := p.checkMagic(); err != nil {
		return err
	}
	if p.notPLY {
		p.headerRead = true
		return nil
	}

	lineNo := 2
	for {
		tokens, err := p.tokensAt(lineNo)
		if err != nil {
			return err
		}

		if len(tokens) == 0 {
			lineNo++
			continue
		}

		switch tokens[0].Type {
		case lexer.END_HEADER:
			if len(tokens) != 1 {
				return p.headerError(lineNo, "end_header must stand alone on its line")
			}
			p.headerSize = lineNo
			p.headerRead = true
			p.logger.Debug("ply header read",
				"elements", len(p.table.Elements),
				"header_size", p.headerSize,
			)
			return nil

		case lexer.COMMENT:
			if len(tokens) > 1 {
				p.table.Comments = append(p.table.Comments, tokens[1].Literal)
			}
			lineNo++

		case lexer.OBJ_INFO:
			if len(tokens) > 1 {
				p.table.ObjInfo = append(p.table.ObjInfo, tokens[1].Literal)
			}
			lineNo++

		case lexer.ELEMENT:
			next, err := p.parseElement(tokens, lineNo)
			if err != nil {
				return err
			}
			lineNo = next

		case lexer.PROPERTY:
			reason := "property declared before any element"
			if len(p.table.Elements) > 0 {
				reason = "property does not directly follow its element's declarations"
			}
			return p.headerError(lineNo, reason)

		default:
			return p.headerError(lineNo, "unexpected keyword '"+tokens[0].Literal+"'")
		}
	}
}

// parseElement reads an element line and the property lines that follow it.
// It returns the index of the first line after the declaration block.
func (p *Parser) parseElement(tokens []lexer.Token, lineNo int) (int, error) {
	if len(tokens) != 3 {
		return 0, p.headerError(lineNo, "expected 'element <name> <count>'")
	}
	count, err := strconv.Atoi(tokens[2].Literal)
	if err != nil || count < 0 {
		return 0, p.headerError(lineNo, "element count must be a non-negative integer")
	}

	el := schema.NewElement(tokens[1].Literal, count)
	lineNo++

	props, err := p.tokensAt(lineNo)
	if err != nil {
		return 0, err
	}

	if isListProperty(props) {
		col, err := p.parseListProperty(props, lineNo)
		if err != nil {
			return 0, err
		}
		el.Columns = append(el.Columns, col)
		lineNo++

		following, err := p.tokensAt(lineNo)
		if err != nil {
			return 0, err
		}
		if len(following) > 0 && following[0].Type == lexer.PROPERTY {
			return 0, p.headerError(lineNo, "list property cannot be combined with other properties")
		}
	} else {
		for len(props) > 0 && props[0].Type == lexer.PROPERTY {
			if isListProperty(props) {
				return 0, p.headerError(lineNo, "list property cannot be combined with other properties")
			}
			col, err := p.parseScalarProperty(props, lineNo)
			if err != nil {
				return 0, err
			}
			el.Columns = append(el.Columns, col)
			lineNo++

			props, err = p.tokensAt(lineNo)
			if err != nil {
				return 0, err
			}
		}
	}

	p.table.Elements = append(p.table.Elements, el)
	return lineNo, nil
}

func (p *Parser) parseScalarProperty(tokens []lexer.Token, lineNo int) (schema.Column, error) {
	if len(tokens) != 3 {
		return schema.Column{}, p.headerError(lineNo, "expected 'property <type> <name>'")
	}
	col := schema.NewScalarColumn(tokens[1].Literal, tokens[2].Literal)
	if col.Type == schema.TypeInvalid {
		p.warn("line %d: property '%s' has unrecognized type '%s'", lineNo, col.Name, col.TypeName)
	}
	return col, nil
}

func (p *Parser) parseListProperty(tokens []lexer.Token, lineNo int) (schema.Column, error) {
	if len(tokens) != 5 {
		return schema.Column{}, p.headerError(lineNo, "expected 'property list <countType> <valueType> <name>'")
	}
	col := schema.NewListColumn(tokens[2].Literal, tokens[3].Literal, tokens[4].Literal)
	if !col.CountType.IsInteger() {
		return schema.Column{}, p.headerError(lineNo, "list count type must be an integer type")
	}
	if col.Type == schema.TypeInvalid {
		p.warn("line %d: property '%s' has unrecognized type '%s'", lineNo, col.Name, col.TypeName)
	}
	return col, nil
}

// tokensAt lexes a header line. Running out of input before end_header is
// a structural failure.
func (p *Parser) tokensAt(lineNo int) ([]lexer.Token, error) {
	if lineNo >= len(p.lines) {
		return nil, &domainerrors.HeaderError{Line: lineNo, Reason: "input ended before end_header"}
	}
	tokens, err := lexer.Tokenize(p.lines[lineNo], lineNo)
	if err != nil {
		return nil, p.headerError(lineNo, err.Error())
	}
	return tokens, nil
}

func (p *Parser) headerError(lineNo int, reason string) error {
	text := ""
	if lineNo < len(p.lines) {
		text = p.lines[lineNo]
	}
	return &domainerrors.HeaderError{Line: lineNo, Text: text, Reason: reason}
}

func isListProperty(tokens []lexer.Token) bool {
	return len(tokens) > 1 && tokens[0].Type == lexer.PROPERTY && tokens[1].Type == lexer.LIST
}
