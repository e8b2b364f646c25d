package toml

import (
	"fmt"
	"strings"
)

// Lexer splits a TOML document into tokens
// Only the subset the game files use is recognized: basic strings,
// decimal numbers, booleans, bare or quoted keys, tables and arrays
type Lexer struct {
	input []byte
	pos   int
	line  int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token; EOF repeats once input is exhausted
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		l.pos++
	}
	if l.pos >= len(l.input) {
		return l.token(TokenEOF, "")
	}

	c := l.input[l.pos]
	switch {
	case c == '\n':
		tok := l.token(TokenNewline, "\n")
		l.pos++
		l.line++
		return tok
	case c == '#':
		start := l.pos + 1
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
		return l.token(TokenComment, string(l.input[start:l.pos]))
	case c == '"':
		return l.readString()
	case isBareChar(c) || c == '+':
		return l.readBare()
	}

	if typ, ok := punctuation[c]; ok {
		l.pos++
		return l.token(typ, string(c))
	}
	l.pos++
	return l.token(TokenError, fmt.Sprintf("unexpected character %q", c))
}

func (l *Lexer) token(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: l.line}
}

func (l *Lexer) readString() Token {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case '\n':
			return l.token(TokenError, "newline in basic string")
		case '"':
			l.pos++
			return l.token(TokenString, sb.String())
		case '\\':
			if l.pos+1 >= len(l.input) {
				return l.token(TokenError, "unterminated escape")
			}
			l.pos++
			r, ok := escapes[l.input[l.pos]]
			if !ok {
				return l.token(TokenError, fmt.Sprintf("unknown escape \\%c", l.input[l.pos]))
			}
			sb.WriteByte(r)
		default:
			sb.WriteByte(c)
		}
		l.pos++
	}
	return l.token(TokenError, "unterminated string")
}

var escapes = map[byte]byte{
	'"': '"', '\\': '\\', 'n': '\n', 't': '\t', 'r': '\r', 'b': '\b', 'f': '\f',
}

// readBare consumes a bare key, boolean or number
// Dots belong to the token only when it started as a number
func (l *Lexer) readBare() Token {
	start := l.pos
	first := l.input[l.pos]
	numeric := isDigit(first) || first == '+' || first == '-'

	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isBareChar(c) || c == '+' || (c == '.' && numeric) {
			l.pos++
			continue
		}
		break
	}
	lit := string(l.input[start:l.pos])

	switch {
	case lit == "true" || lit == "false":
		return l.token(TokenBool, lit)
	case !numeric:
		return l.token(TokenIdent, lit)
	case strings.ContainsAny(lit, ".eE"):
		return l.token(TokenFloat, lit)
	default:
		return l.token(TokenInteger, lit)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBareChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) || c == '_' || c == '-'
}
