package schema

import (
	"strconv"
	"strings"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema/internal/token"
)

var primitives = map[string]codec.Kind{
	"bool":      codec.KindBool,
	"u8":        codec.KindU8,
	"u16":       codec.KindU16,
	"u32":       codec.KindU32,
	"u64":       codec.KindU64,
	"u128":      codec.KindU128,
	"u256":      codec.KindU256,
	"u512":      codec.KindU512,
	"i8":        codec.KindI8,
	"i16":       codec.KindI16,
	"i32":       codec.KindI32,
	"i64":       codec.KindI64,
	"i128":      codec.KindI128,
	"i256":      codec.KindI256,
	"i512":      codec.KindI512,
	"f32":       codec.KindF32,
	"f64":       codec.KindF64,
	"unit":      codec.KindUnit,
	"string":    codec.KindString,
	"bytes":     codec.KindBytes,
	"pubkey":    codec.KindPublicKey,
	"publicKey": codec.KindPublicKey,
}

// Parse reads a single type expression:
//
//	u8 .. u512, i8 .. i512, bool, f32, f64, string, bytes, pubkey
//	vec<T>  option<T>  [T; N]
//	struct { name: T, ... }
//	enum { A, B(T, U), C { x: T } }
//	Name                       (reference to a registered type)
func Parse(expr string) (*Type, error) {
	p := &parser{tokens: token.Tokenize(expr), end: len(expr)}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok != nil {
		return nil, errors.ParseFailed(tok.Pos, "unexpected %q after type", tok.Value)
	}
	return t, nil
}

// MustParse is Parse for expressions known to be valid.
func MustParse(expr string) *Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	tokens []token.Token
	pos    int
	end    int
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expectPunct(v string) error {
	t := p.next()
	if t == nil {
		return errors.ParseFailed(p.end, "expected %q, got end of input", v)
	}
	if !t.Is(v) {
		return errors.ParseFailed(t.Pos, "line %d: expected %q, got %q", t.Line, v, t.Value)
	}
	return nil
}

func (p *parser) expectIdent() (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.ParseFailed(p.end, "expected identifier, got end of input")
	}
	if t.Type != token.Ident {
		return nil, errors.ParseFailed(t.Pos, "line %d: expected identifier, got %q", t.Line, t.Value)
	}
	return t, nil
}

// accept consumes punctuation v if it is next.
func (p *parser) accept(v string) bool {
	if t := p.peek(); t != nil && t.Is(v) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseType() (*Type, error) {
	t := p.next()
	if t == nil {
		return nil, errors.ParseFailed(p.end, "expected type, got end of input")
	}
	if t.Is("[") {
		return p.parseArray()
	}
	if t.Type != token.Ident {
		return nil, errors.ParseFailed(t.Pos, "line %d: expected type, got %q", t.Line, t.Value)
	}

	if k, ok := primitives[t.Value]; ok {
		return Prim(k), nil
	}
	switch t.Value {
	case "vec", "Vec":
		elem, err := p.parseGeneric()
		if err != nil {
			return nil, err
		}
		return Vec(elem), nil
	case "option", "Option":
		elem, err := p.parseGeneric()
		if err != nil {
			return nil, err
		}
		return Option(elem), nil
	case "struct":
		fields, err := p.parseFields()
		if err != nil {
			return nil, err
		}
		return Struct(fields...), nil
	case "enum":
		return p.parseEnum()
	}
	return Ref(t.Value), nil
}

func (p *parser) parseGeneric() (*Type, error) {
	if err := p.expectPunct("<"); err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	return elem, nil
}

func (p *parser) parseArray() (*Type, error) {
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	t := p.next()
	if t == nil {
		return nil, errors.ParseFailed(p.end, "expected array length, got end of input")
	}
	if t.Type != token.Number {
		return nil, errors.ParseFailed(t.Pos, "line %d: expected array length, got %q", t.Line, t.Value)
	}
	n, err := strconv.ParseUint(strings.ReplaceAll(t.Value, "_", ""), 0, 31)
	if err != nil {
		return nil, errors.ParseFailed(t.Pos, "invalid array length %s", t.Value)
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return Array(elem, int(n)), nil
}

// parseFields reads "{ name: T, ... }" allowing a trailing comma.
func (p *parser) parseFields() ([]Field, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var fields []Field
	seen := make(map[string]bool)
	for !p.accept("}") {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if seen[name.Value] {
			return nil, errors.ParseFailed(name.Pos, "duplicate field %q", name.Value)
		}
		seen[name.Value] = true
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name.Value, Type: typ})
		if !p.accept(",") {
			if err := p.expectPunct("}"); err != nil {
				return nil, err
			}
			break
		}
	}
	return fields, nil
}

func (p *parser) parseEnum() (*Type, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var variants []Variant
	seen := make(map[string]bool)
	for !p.accept("}") {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if seen[name.Value] {
			return nil, errors.ParseFailed(name.Pos, "duplicate variant %q", name.Value)
		}
		seen[name.Value] = true

		v := Variant{Name: name.Value}
		if next := p.peek(); next != nil {
			switch {
			case next.Is("("):
				p.pos++
				var types []*Type
				for !p.accept(")") {
					typ, err := p.parseType()
					if err != nil {
						return nil, err
					}
					types = append(types, typ)
					if !p.accept(",") {
						if err := p.expectPunct(")"); err != nil {
							return nil, err
						}
						break
					}
				}
				v = TupleVariant(name.Value, types...)
			case next.Is("{"):
				fields, err := p.parseFields()
				if err != nil {
					return nil, err
				}
				v.Fields = fields
			}
		}
		variants = append(variants, v)
		if len(variants) > 256 {
			return nil, errors.ParseFailed(name.Pos, "enum has more than 256 variants")
		}

		if !p.accept(",") {
			if err := p.expectPunct("}"); err != nil {
				return nil, err
			}
			break
		}
	}
	return Enum(variants...), nil
}
