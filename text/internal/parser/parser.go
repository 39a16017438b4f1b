package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/text/internal/token"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

// MaxDepth bounds the nesting of composite values and types.
const MaxDepth = 512

type Parser struct {
	tokens []token.Token
	pos    int
	depth  int
}

func New(input string) *Parser {
	return &Parser{tokens: token.Tokenize(input)}
}

// ParseValue parses a single, optionally ascribed, value covering the whole
// input.
func (p *Parser) ParseValue() (value.Value, error) {
	if err := p.lexError(); err != nil {
		return value.Value{}, err
	}
	v, _, err := p.parseAnnVal()
	if err != nil {
		return value.Value{}, err
	}
	if err := p.expectEOF(); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// ParseArgs parses a parenthesized argument list. A bare value is accepted
// as a list of one.
func (p *Parser) ParseArgs() (value.Args, error) {
	if err := p.lexError(); err != nil {
		return value.Args{}, err
	}

	if t := p.peek(); t == nil || t.Type != token.LParen {
		v, _, err := p.parseAnnVal()
		if err != nil {
			return value.Args{}, err
		}
		if err := p.expectEOF(); err != nil {
			return value.Args{}, err
		}
		return value.NewArgs(v), nil
	}

	p.next()
	var vals []value.Value
	for {
		if t := p.peek(); t != nil && t.Type == token.RParen {
			p.next()
			break
		}
		v, _, err := p.parseAnnVal()
		if err != nil {
			return value.Args{}, err
		}
		vals = append(vals, v)

		t := p.next()
		if t == nil {
			return value.Args{}, p.errorf(nil, "expected ',' or ')'")
		}
		if t.Type == token.RParen {
			break
		}
		if t.Type != token.Comma {
			return value.Args{}, p.errorf(t, "expected ',' or ')', got %q", t.Value)
		}
	}
	if err := p.expectEOF(); err != nil {
		return value.Args{}, err
	}
	return value.NewArgs(vals...), nil
}

// ParseType parses a single type covering the whole input.
func (p *Parser) ParseType() (*types.Type, error) {
	if err := p.lexError(); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTypes parses a parenthesized list of types, as written in a method
// signature.
func (p *Parser) ParseTypes() ([]*types.Type, error) {
	if err := p.lexError(); err != nil {
		return nil, err
	}
	ts, err := p.parseTypeTuple()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return ts, nil
}

func (p *Parser) peek() *token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, p.errorf(nil, "expected %v, got end of input", typ)
	}
	if t.Type != typ {
		return nil, p.errorf(t, "expected %v, got %q", typ, t.Value)
	}
	return t, nil
}

func (p *Parser) expectEOF() error {
	if t := p.peek(); t != nil {
		return p.errorf(t, "unexpected %q after end of input", t.Value)
	}
	return nil
}

// lexError reports the first illegal token, if any.
func (p *Parser) lexError() error {
	if n := len(p.tokens); n > 0 && p.tokens[n-1].Type == token.Illegal {
		t := &p.tokens[n-1]
		if len(t.Value) == 1 {
			return p.errorf(t, "unexpected character %q", t.Value)
		}
		return p.errorf(t, "%s", t.Value)
	}
	return nil
}

// errorf builds a syntax error at t, or at the end of input when t is nil.
func (p *Parser) errorf(t *token.Token, format string, args ...any) error {
	line, col := p.position(t)
	return errors.Syntax(line, col, fmt.Sprintf(format, args...))
}

// failf is errorf with an underlying cause.
func (p *Parser) failf(t *token.Token, cause error, format string, args ...any) error {
	line, col := p.position(t)
	return errors.New(errors.PhaseParse, errors.KindSyntax).
		Detail("line %d, column %d: %s", line, col, fmt.Sprintf(format, args...)).
		Cause(cause).
		Build()
}

func (p *Parser) position(t *token.Token) (int, int) {
	if t != nil {
		return t.Line, t.Col
	}
	if len(p.tokens) == 0 {
		return 1, 1
	}
	last := p.tokens[len(p.tokens)-1]
	width := utf8.RuneCountInString(last.Value)
	if last.Type == token.String {
		width += 2
	}
	return last.Line, last.Col + width
}

func (p *Parser) enter(t *token.Token) error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf(t, "nesting deeper than %d levels", MaxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// isLabel reports whether the next tokens are a label followed by sep.
func (p *Parser) isLabel(sep token.Type) bool {
	t, after := p.peek(), p.peekAt(1)
	if t == nil || after == nil || after.Type != sep {
		return false
	}
	switch t.Type {
	case token.Ident, token.Number, token.String:
		return true
	}
	return false
}

// parseLabel reads an identifier, numeric or quoted label.
func (p *Parser) parseLabel() (types.Label, error) {
	t := p.next()
	if t == nil {
		return types.Label{}, p.errorf(nil, "expected label, got end of input")
	}
	switch t.Type {
	case token.Ident:
		if types.IsKeyword(t.Value) {
			return types.Label{}, p.errorf(t, "keyword %q cannot be used as a label; quote it", t.Value)
		}
		return types.Named(t.Value), nil
	case token.Number:
		id, ok := parseFieldID(t.Value)
		if !ok {
			return types.Label{}, p.errorf(t, "invalid field id %s", t.Value)
		}
		return types.ID(id), nil
	case token.String:
		raw, err := decodeText(t.Value)
		if err != nil {
			return types.Label{}, p.failf(t, err, "invalid label")
		}
		if !utf8.Valid(raw) {
			return types.Label{}, p.errorf(t, "label is not valid UTF-8")
		}
		return types.Named(string(raw)), nil
	}
	return types.Label{}, p.errorf(t, "expected label, got %q", t.Value)
}

func (p *Parser) parseText() (string, *token.Token, error) {
	t, err := p.expect(token.String)
	if err != nil {
		return "", nil, err
	}
	raw, err := decodeText(t.Value)
	if err != nil {
		return "", t, p.failf(t, err, "invalid text literal")
	}
	if !utf8.Valid(raw) {
		return "", t, p.errorf(t, "text literal is not valid UTF-8")
	}
	return string(raw), t, nil
}
