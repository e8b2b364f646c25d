package toml

import (
	"fmt"
	"strconv"
)

// Parser builds a generic document tree from tokens
// Tables are map[string]any, arrays of tables are []map[string]any,
// integers are int64 and floats are float64
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
	root  map[string]any
	scope map[string]any
}

func NewParser(input []byte) *Parser {
	p := &Parser{lexer: NewLexer(input), root: make(map[string]any)}
	p.scope = p.root
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
	for p.peek.Type == TokenComment {
		p.peek = p.lexer.NextToken()
	}
}

// Parse consumes the whole document
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		var err error
		switch p.cur.Type {
		case TokenNewline, TokenComment:
			p.next()
			continue
		case TokenLBracket:
			err = p.parseHeader()
		case TokenIdent, TokenString:
			err = p.parseKeyValue()
		case TokenError:
			err = fmt.Errorf("line %d: %s", p.cur.Line, p.cur.Literal)
		default:
			err = fmt.Errorf("line %d: unexpected %s", p.cur.Line, p.cur)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

// parseHeader handles [a.b] and [[a.b]]
func (p *Parser) parseHeader() error {
	line := p.cur.Line
	array := p.peek.Type == TokenLBracket
	p.next()
	if array {
		p.next()
	}

	keys, err := p.parseKey()
	if err != nil {
		return err
	}

	closers := 1
	if array {
		closers = 2
	}
	for i := 0; i < closers; i++ {
		if p.cur.Type != TokenRBracket {
			return fmt.Errorf("line %d: unclosed table header", line)
		}
		p.next()
	}

	return p.enter(keys, array, line)
}

// enter moves the scope to the table named by keys, creating it on the way
// Intermediate arrays of tables resolve to their last element
func (p *Parser) enter(keys []string, array bool, line int) error {
	table := p.root
	for i, key := range keys {
		last := i == len(keys)-1
		existing, ok := table[key]

		switch {
		case last && array:
			var list []map[string]any
			if ok {
				if list, ok = existing.([]map[string]any); !ok {
					return fmt.Errorf("line %d: %s is not an array of tables", line, key)
				}
			}
			next := make(map[string]any)
			table[key] = append(list, next)
			table = next

		case !ok:
			next := make(map[string]any)
			table[key] = next
			table = next

		default:
			switch v := existing.(type) {
			case map[string]any:
				table = v
			case []map[string]any:
				if last || len(v) == 0 {
					return fmt.Errorf("line %d: %s is an array of tables", line, key)
				}
				table = v[len(v)-1]
			default:
				return fmt.Errorf("line %d: %s is not a table", line, key)
			}
		}
	}
	p.scope = table
	return nil
}

func (p *Parser) parseKeyValue() error {
	line := p.cur.Line
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return fmt.Errorf("line %d: expected '=' after key, got %s", line, p.cur)
	}
	p.next()

	val, err := p.parseValue()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
		return fmt.Errorf("line %d: trailing %s after value", line, p.cur)
	}

	table := p.scope
	for _, key := range keys[:len(keys)-1] {
		existing, ok := table[key]
		if !ok {
			next := make(map[string]any)
			table[key] = next
			table = next
			continue
		}
		next, isTable := existing.(map[string]any)
		if !isTable {
			return fmt.Errorf("line %d: %s is not a table", line, key)
		}
		table = next
	}

	key := keys[len(keys)-1]
	if _, dup := table[key]; dup {
		return fmt.Errorf("line %d: duplicate key %s", line, key)
	}
	table[key] = val
	return nil
}

func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		if p.cur.Type != TokenIdent && p.cur.Type != TokenString {
			return nil, fmt.Errorf("line %d: expected key, got %s", p.cur.Line, p.cur)
		}
		keys = append(keys, p.cur.Literal)
		p.next()
		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.next()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.next()
		return tok.Literal, nil
	case TokenBool:
		p.next()
		return tok.Literal == "true", nil
	case TokenInteger:
		p.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %s", tok.Line, tok.Literal)
		}
		return v, nil
	case TokenFloat:
		p.next()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float %s", tok.Line, tok.Literal)
		}
		return v, nil
	case TokenLBracket:
		return p.parseArray()
	}
	return nil, fmt.Errorf("line %d: unexpected value %s", tok.Line, tok)
}

// parseArray reads an inline array; newlines and a trailing comma are allowed
func (p *Parser) parseArray() ([]any, error) {
	line := p.cur.Line
	p.next()
	arr := make([]any, 0)
	for {
		for p.cur.Type == TokenNewline {
			p.next()
		}
		if p.cur.Type == TokenRBracket {
			p.next()
			return arr, nil
		}
		if p.cur.Type == TokenEOF {
			return nil, fmt.Errorf("line %d: unclosed array", line)
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		for p.cur.Type == TokenNewline {
			p.next()
		}
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBracket:
		default:
			return nil, fmt.Errorf("line %d: expected ',' or ']' in array", p.cur.Line)
		}
	}
}
