package lexer

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENTIFIER // element/property names, type tokens, format names
	NUMBER     // 8, 1.0
	TEXT       // free text after comment / obj_info

	// Keywords
	PLY
	FORMAT
	COMMENT
	OBJ_INFO
	ELEMENT
	PROPERTY
	LIST
	END_HEADER
)

var keywords = map[string]TokenType{
	"ply":        PLY,
	"format":     FORMAT,
	"comment":    COMMENT,
	"obj_info":   OBJ_INFO,
	"element":    ELEMENT,
	"property":   PROPERTY,
	"list":       LIST,
	"end_header": END_HEADER,
}

var tokenNames = map[TokenType]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	TEXT:       "TEXT",
	PLY:        "PLY",
	FORMAT:     "FORMAT",
	COMMENT:    "COMMENT",
	OBJ_INFO:   "OBJ_INFO",
	ELEMENT:    "ELEMENT",
	PROPERTY:   "PROPERTY",
	LIST:       "LIST",
	END_HEADER: "END_HEADER",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
}

// Lexer splits a single header line into tokens.
// Words are runs of non-blank characters; the keyword set is case sensitive.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
	freeText     bool // the rest of the line is one TEXT token
}

func New(input string, line int) *Lexer {
	l := &Lexer{input: input, line: line, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Line = l.line
	tok.Column = l.column

	if l.ch == 0 {
		tok.Type = EOF
		return tok
	}

	if l.freeText {
		tok.Type = TEXT
		tok.Literal = l.readRest()
		return tok
	}

	if !isPrintable(l.ch) {
		tok.Type = ILLEGAL
		tok.Literal = string(l.ch)
		l.readChar()
		return tok
	}

	tok.Literal = l.readWord()
	tok.Type = LookupWord(tok.Literal)
	if tok.Type == COMMENT || tok.Type == OBJ_INFO {
		l.freeText = true
	}
	return tok
}

func (l *Lexer) skipWhitespace() {
	for isBlank(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readWord() string {
	position := l.position
	for l.ch != 0 && !isBlank(l.ch) && isPrintable(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readRest() string {
	position := l.position
	for l.ch != 0 {
		l.readChar()
	}
	end := l.position
	for end > position && isBlank(l.input[end-1]) {
		end--
	}
	return l.input[position:end]
}

// LookupWord classifies a word as keyword, number or identifier
func LookupWord(word string) TokenType {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return NUMBER
	}
	return IDENTIFIER
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isPrintable(ch byte) bool {
	return ch >= 0x20 && ch < 0x7f || isBlank(ch)
}

// Tokenize lexes a whole header line at once
func Tokenize(input string, line int) ([]Token, error) {
	l := New(input, line)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL {
			return nil, fmt.Errorf("illegal character at line %d, col %d: %q", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
