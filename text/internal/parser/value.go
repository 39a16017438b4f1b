package parser

import (
	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/text/internal/token"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

// parseAnnVal parses value [':' type]. The literal text of a bare numeric
// value is returned alongside so an enclosing ascription can reinterpret it.
func (p *Parser) parseAnnVal() (value.Value, string, error) {
	v, lit, err := p.parseValue()
	if err != nil {
		return value.Value{}, "", err
	}

	colon := p.peek()
	if colon == nil || colon.Type != token.Colon {
		return v, lit, nil
	}
	p.next()

	typ, err := p.parseType()
	if err != nil {
		return value.Value{}, "", err
	}
	if lit != "" && typ.Kind.IsNumeric() {
		v, err = value.FromLiteral(lit, typ.Kind)
	} else {
		v, err = value.Annotate(v, typ)
	}
	if err != nil {
		return value.Value{}, "", err
	}
	return v, "", nil
}

func (p *Parser) parseValue() (value.Value, string, error) {
	t := p.next()
	if t == nil {
		return value.Value{}, "", p.errorf(nil, "expected value, got end of input")
	}

	switch t.Type {
	case token.LParen:
		if err := p.enter(t); err != nil {
			return value.Value{}, "", err
		}
		defer p.leave()
		v, lit, err := p.parseAnnVal()
		if err != nil {
			return value.Value{}, "", err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return value.Value{}, "", err
		}
		return v, lit, nil

	case token.Number:
		return p.parseNumber(t, t.Value)

	case token.String:
		p.pos--
		s, _, err := p.parseText()
		if err != nil {
			return value.Value{}, "", err
		}
		return value.Text(s), "", nil

	case token.Ident:
		if lit, ok := floatName(t.Value); ok {
			return p.parseNumber(t, lit)
		}
		v, err := p.parseKeywordValue(t)
		return v, "", err
	}

	return value.Value{}, "", p.errorf(t, "expected value, got %q", t.Value)
}

func (p *Parser) parseNumber(t *token.Token, lit string) (value.Value, string, error) {
	var (
		v   value.Value
		err error
	)
	if _, named := floatName(t.Value); named || isFloatLiteral(lit) {
		v, err = value.FromLiteral(lit, types.KindFloat64)
	} else {
		v, err = value.Number(lit)
	}
	if err != nil {
		if errors.IsKind(err, errors.KindOverflow) {
			return value.Value{}, "", err
		}
		return value.Value{}, "", p.failf(t, err, "invalid number %s", t.Value)
	}
	return v, lit, nil
}

func (p *Parser) parseKeywordValue(t *token.Token) (value.Value, error) {
	switch t.Value {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null":
		return value.Null(), nil

	case "opt":
		if err := p.enter(t); err != nil {
			return value.Value{}, err
		}
		defer p.leave()
		v, _, err := p.parseAnnVal()
		if err != nil {
			return value.Value{}, err
		}
		return value.Opt(v), nil

	case "vec":
		return p.parseVec(t)

	case "blob":
		st, err := p.expect(token.String)
		if err != nil {
			return value.Value{}, err
		}
		raw, err := decodeText(st.Value)
		if err != nil {
			return value.Value{}, p.failf(st, err, "invalid blob literal")
		}
		return value.Blob(raw), nil

	case "record":
		return p.parseRecord(t)

	case "variant":
		return p.parseVariant(t)

	case "principal", "service":
		id, err := p.parsePrincipal()
		if err != nil {
			return value.Value{}, err
		}
		if t.Value == "service" {
			return value.Service(id), nil
		}
		return value.Principal(id), nil

	case "func":
		id, err := p.parsePrincipal()
		if err != nil {
			return value.Value{}, err
		}
		if _, err := p.expect(token.Dot); err != nil {
			return value.Value{}, err
		}
		m := p.next()
		var method string
		switch {
		case m == nil:
			return value.Value{}, p.errorf(nil, "expected method name, got end of input")
		case m.Type == token.Ident:
			method = m.Value
		case m.Type == token.String:
			p.pos--
			if method, _, err = p.parseText(); err != nil {
				return value.Value{}, err
			}
		default:
			return value.Value{}, p.errorf(m, "expected method name, got %q", m.Value)
		}
		return value.Func(id, method)
	}

	return value.Value{}, p.errorf(t, "unexpected %q", t.Value)
}

func (p *Parser) parsePrincipal() (principal.Principal, error) {
	s, t, err := p.parseText()
	if err != nil {
		return principal.Principal{}, err
	}
	id, err := principal.FromText(s)
	if err != nil {
		return principal.Principal{}, p.failf(t, err, "invalid principal %q", s)
	}
	return id, nil
}

func (p *Parser) parseVec(t *token.Token) (value.Value, error) {
	if err := p.enter(t); err != nil {
		return value.Value{}, err
	}
	defer p.leave()

	if _, err := p.expect(token.LBrace); err != nil {
		return value.Value{}, err
	}
	var elems []value.Value
	for {
		if c := p.peek(); c != nil && c.Type == token.RBrace {
			p.next()
			return value.Vec(elems...), nil
		}
		v, _, err := p.parseAnnVal()
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, v)
		if err := p.separator(); err != nil {
			return value.Value{}, err
		}
	}
}

// separator consumes ';' or peeks at the closing brace.
func (p *Parser) separator() error {
	t := p.peek()
	switch {
	case t == nil:
		return p.errorf(nil, "expected ';' or '}', got end of input")
	case t.Type == token.Semi:
		p.next()
		return nil
	case t.Type == token.RBrace:
		return nil
	}
	return p.errorf(t, "expected ';' or '}', got %q", t.Value)
}

func (p *Parser) parseRecord(t *token.Token) (value.Value, error) {
	if err := p.enter(t); err != nil {
		return value.Value{}, err
	}
	defer p.leave()

	if _, err := p.expect(token.LBrace); err != nil {
		return value.Value{}, err
	}

	var fields []value.Field
	seen := make(map[uint32]bool)
	next := uint32(0)
	for {
		start := p.peek()
		if start != nil && start.Type == token.RBrace {
			p.next()
			return value.Record(fields...)
		}

		var label types.Label
		if p.isLabel(token.Equals) {
			l, err := p.parseLabel()
			if err != nil {
				return value.Value{}, err
			}
			p.next()
			label = l
		} else {
			label = types.Unnamed(next)
		}
		if seen[label.ID()] {
			return value.Value{}, p.errorf(start, "duplicate field %s", label)
		}
		seen[label.ID()] = true
		next = label.ID() + 1

		v, _, err := p.parseAnnVal()
		if err != nil {
			return value.Value{}, err
		}
		fields = append(fields, value.Field{Label: label, Value: v})
		if err := p.separator(); err != nil {
			return value.Value{}, err
		}
	}
}

func (p *Parser) parseVariant(t *token.Token) (value.Value, error) {
	if err := p.enter(t); err != nil {
		return value.Value{}, err
	}
	defer p.leave()

	if _, err := p.expect(token.LBrace); err != nil {
		return value.Value{}, err
	}
	label, err := p.parseLabel()
	if err != nil {
		return value.Value{}, err
	}
	payload := value.Null()
	if eq := p.peek(); eq != nil && eq.Type == token.Equals {
		p.next()
		if payload, _, err = p.parseAnnVal(); err != nil {
			return value.Value{}, err
		}
	}
	if semi := p.peek(); semi != nil && semi.Type == token.Semi {
		p.next()
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return value.Value{}, err
	}
	return value.VariantField(value.Field{Label: label, Value: payload}, 0)
}
