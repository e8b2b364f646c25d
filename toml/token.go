package toml

import (
	"fmt"
)

// TokenType is the lexical class of a token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenComment

	TokenIdent   // bare key
	TokenString  // "quoted"
	TokenInteger // 123
	TokenFloat   // 1.5
	TokenBool    // true/false

	TokenEqual    // =
	TokenDot      // .
	TokenComma    // ,
	TokenLBracket // [
	TokenRBracket // ]
	TokenNewline  // \n
)

// Token is one lexeme with its source line
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("Error(%s)", t.Literal)
	case TokenNewline:
		return "Newline"
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q...", t.Literal[:20])
	}
	return fmt.Sprintf("%q", t.Literal)
}

var punctuation = map[byte]TokenType{
	'=': TokenEqual,
	'.': TokenDot,
	',': TokenComma,
	'[': TokenLBracket,
	']': TokenRBracket,
}
