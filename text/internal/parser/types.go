package parser

import (
	"github.com/wippyai/candid/text/internal/token"
	"github.com/wippyai/candid/types"
)

func (p *Parser) parseType() (*types.Type, error) {
	t := p.next()
	if t == nil {
		return nil, p.errorf(nil, "expected type, got end of input")
	}
	if t.Type != token.Ident {
		return nil, p.errorf(t, "expected type, got %q", t.Value)
	}

	if k, ok := types.LookupPrimitive(t.Value); ok {
		return types.Prim(k), nil
	}

	switch t.Value {
	case "opt", "vec":
		if err := p.enter(t); err != nil {
			return nil, err
		}
		defer p.leave()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if t.Value == "opt" {
			return types.Opt(elem), nil
		}
		return types.Vec(elem), nil

	case "blob":
		return types.Blob(), nil

	case "record", "variant":
		if err := p.enter(t); err != nil {
			return nil, err
		}
		defer p.leave()
		fields, err := p.parseTypeFields(t.Value == "variant")
		if err != nil {
			return nil, err
		}
		var typ *types.Type
		if t.Value == "variant" {
			typ, err = types.Variant(fields...)
		} else {
			typ, err = types.Record(fields...)
		}
		if err != nil {
			return nil, p.failf(t, err, "invalid %s type", t.Value)
		}
		return typ, nil

	case "func":
		if err := p.enter(t); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.parseFuncType()

	case "service":
		if err := p.enter(t); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.parseServiceType(t)
	}

	if types.IsKeyword(t.Value) {
		return nil, p.errorf(t, "expected type, got keyword %q", t.Value)
	}
	return types.Var(t.Value), nil
}

// parseTypeFields parses '{' fields '}'. In a variant a lone label is a
// case of type null.
func (p *Parser) parseTypeFields(variant bool) ([]types.Field, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var fields []types.Field
	next := uint32(0)
	for {
		t := p.peek()
		if t != nil && t.Type == token.RBrace {
			p.next()
			return fields, nil
		}

		var f types.Field
		switch {
		case p.isLabel(token.Colon):
			label, err := p.parseLabel()
			if err != nil {
				return nil, err
			}
			p.next()
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			f = types.Field{Label: label, Type: typ}

		case variant && t != nil && p.isBareLabel(t):
			label, err := p.parseLabel()
			if err != nil {
				return nil, err
			}
			f = types.Field{Label: label, Type: types.Prim(types.KindNull)}

		default:
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			f = types.Field{Label: types.Unnamed(next), Type: typ}
		}
		next = f.Label.ID() + 1
		fields = append(fields, f)

		if err := p.separator(); err != nil {
			return nil, err
		}
	}
}

// isBareLabel reports whether t can only be a label: a number, a quoted
// name or an identifier that is not a keyword.
func (p *Parser) isBareLabel(t *token.Token) bool {
	switch t.Type {
	case token.Number, token.String:
		return true
	case token.Ident:
		return !types.IsKeyword(t.Value)
	}
	return false
}

// parseFuncType parses (args) -> (results) modes.
func (p *Parser) parseFuncType() (*types.Type, error) {
	args, err := p.parseTypeTuple()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Arrow); err != nil {
		return nil, err
	}
	results, err := p.parseTypeTuple()
	if err != nil {
		return nil, err
	}

	var modes []types.FuncMode
	for {
		t := p.peek()
		if t == nil || t.Type != token.Ident {
			break
		}
		m, ok := types.LookupMode(t.Value)
		if !ok {
			break
		}
		p.next()
		modes = append(modes, m)
	}
	return types.Func(args, results, modes...), nil
}

// parseTypeTuple parses '(' [[name ':'] type (',' [name ':'] type)* [',']] ')'.
// Argument names are documentation only and are dropped.
func (p *Parser) parseTypeTuple() ([]*types.Type, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var ts []*types.Type
	for {
		t := p.peek()
		if t != nil && t.Type == token.RParen {
			p.next()
			return ts, nil
		}
		if p.isLabel(token.Colon) && t.Type != token.Number {
			p.next()
			p.next()
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ts = append(ts, typ)

		sep := p.next()
		switch {
		case sep == nil:
			return nil, p.errorf(nil, "expected ',' or ')', got end of input")
		case sep.Type == token.RParen:
			return ts, nil
		case sep.Type != token.Comma:
			return nil, p.errorf(sep, "expected ',' or ')', got %q", sep.Value)
		}
	}
}

func (p *Parser) parseServiceType(start *token.Token) (*types.Type, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var methods []types.Method
	for {
		t := p.next()
		if t == nil {
			return nil, p.errorf(nil, "expected method or '}', got end of input")
		}
		if t.Type == token.RBrace {
			break
		}

		var name string
		switch t.Type {
		case token.Ident:
			name = t.Value
		case token.String:
			p.pos--
			s, _, err := p.parseText()
			if err != nil {
				return nil, err
			}
			name = s
		default:
			return nil, p.errorf(t, "expected method name, got %q", t.Value)
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}

		var typ *types.Type
		if open := p.peek(); open != nil && open.Type == token.LParen {
			ft, err := p.parseFuncType()
			if err != nil {
				return nil, err
			}
			typ = ft
		} else {
			ref, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			if types.IsKeyword(ref.Value) {
				return nil, p.errorf(ref, "method %s must have a function type", name)
			}
			typ = types.Var(ref.Value)
		}
		methods = append(methods, types.Method{Name: name, Type: typ})

		if err := p.separator(); err != nil {
			return nil, err
		}
	}

	svc, err := types.Service(methods...)
	if err != nil {
		return nil, p.failf(start, err, "invalid service type")
	}
	return svc, nil
}
