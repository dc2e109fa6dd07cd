package schema

import (
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// WITConverter maps WIT types onto schema types so component interfaces can
// describe Borsh payloads. Kebab-case names become snake_case.
//
//	WIT                 schema
//	──────────────────────────────────────────
//	u8..u64, s8..s64    u8..u64, i8..i64
//	f32, f64, bool      f32, f64, bool
//	char                u32
//	string              string
//	list<u8>            bytes
//	list<T>             vec<T>
//	option<T>           option<T>
//	record              struct
//	tuple<A, B>         struct { 0: A, 1: B }
//	variant             enum with tuple variants
//	enum                enum of unit variants
//	result<T, E>        enum { Err(E), Ok(T) }
//	flags               u8..u64 bitset
//	own<R>, borrow<R>   u32 handle
type WITConverter struct {
	cache map[*wit.TypeDef]*Type
}

func NewWITConverter() *WITConverter {
	return &WITConverter{cache: make(map[*wit.TypeDef]*Type)}
}

// FromWIT converts a single WIT type.
func FromWIT(t wit.Type) (*Type, error) {
	return NewWITConverter().Convert(t)
}

func (c *WITConverter) Convert(t wit.Type) (*Type, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return Prim(codec.KindBool), nil
	case wit.U8:
		return Prim(codec.KindU8), nil
	case wit.U16:
		return Prim(codec.KindU16), nil
	case wit.U32, wit.Char:
		return Prim(codec.KindU32), nil
	case wit.U64:
		return Prim(codec.KindU64), nil
	case wit.S8:
		return Prim(codec.KindI8), nil
	case wit.S16:
		return Prim(codec.KindI16), nil
	case wit.S32:
		return Prim(codec.KindI32), nil
	case wit.S64:
		return Prim(codec.KindI64), nil
	case wit.F32:
		return Prim(codec.KindF32), nil
	case wit.F64:
		return Prim(codec.KindF64), nil
	case wit.String:
		return Prim(codec.KindString), nil
	case *wit.TypeDef:
		return c.convertTypeDef(typ)
	case nil:
		return nil, errors.NilPointer(errors.PhaseSchema, nil, "wit.Type")
	}
	return nil, errors.New(errors.PhaseSchema, errors.KindUnsupported).
		Detail("unsupported WIT type: %T", t).
		Build()
}

func (c *WITConverter) convertTypeDef(t *wit.TypeDef) (*Type, error) {
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	var (
		out *Type
		err error
	)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		out, err = c.convertRecord(kind)
	case *wit.List:
		out, err = c.convertList(kind)
	case *wit.Option:
		var elem *Type
		if elem, err = c.Convert(kind.Type); err == nil {
			out = Option(elem)
		}
	case *wit.Tuple:
		out, err = c.convertTuple(kind)
	case *wit.Variant:
		out, err = c.convertVariant(kind)
	case *wit.Enum:
		variants := make([]Variant, len(kind.Cases))
		for i, cs := range kind.Cases {
			variants[i] = UnitVariant(snake(cs.Name))
		}
		out = Enum(variants...)
	case *wit.Result:
		out, err = c.convertResult(kind)
	case *wit.Flags:
		out, err = convertFlags(kind)
	case *wit.Own, *wit.Borrow:
		out = Prim(codec.KindU32)
	case wit.Type:
		out, err = c.Convert(kind)
	default:
		return nil, errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Detail("unsupported WIT TypeDef kind: %T", kind).
			Build()
	}
	if err != nil {
		return nil, err
	}

	c.cache[t] = out
	return out, nil
}

func (c *WITConverter) convertRecord(r *wit.Record) (*Type, error) {
	fields := make([]Field, len(r.Fields))
	for i, f := range r.Fields {
		name := snake(f.Name)
		ft, err := c.Convert(f.Type)
		if err != nil {
			return nil, errors.WithPath(err, name)
		}
		fields[i] = NamedField(name, ft)
	}
	return Struct(fields...), nil
}

func (c *WITConverter) convertList(l *wit.List) (*Type, error) {
	if _, ok := l.Type.(wit.U8); ok {
		return Prim(codec.KindBytes), nil
	}
	elem, err := c.Convert(l.Type)
	if err != nil {
		return nil, errors.WithPath(err, "[]")
	}
	return Vec(elem), nil
}

func (c *WITConverter) convertTuple(t *wit.Tuple) (*Type, error) {
	fields := make([]Field, len(t.Types))
	for i, typ := range t.Types {
		name := strconv.Itoa(i)
		ft, err := c.Convert(typ)
		if err != nil {
			return nil, errors.WithPath(err, name)
		}
		fields[i] = NamedField(name, ft)
	}
	return Struct(fields...), nil
}

func (c *WITConverter) convertVariant(v *wit.Variant) (*Type, error) {
	if len(v.Cases) > 256 {
		return nil, errors.LimitExceeded(errors.PhaseSchema, "variant", 0, len(v.Cases), 256)
	}
	variants := make([]Variant, len(v.Cases))
	for i, cs := range v.Cases {
		name := snake(cs.Name)
		if cs.Type == nil {
			variants[i] = UnitVariant(name)
			continue
		}
		payload, err := c.Convert(cs.Type)
		if err != nil {
			return nil, errors.WithPath(err, name)
		}
		variants[i] = TupleVariant(name, payload)
	}
	return Enum(variants...), nil
}

func (c *WITConverter) convertResult(r *wit.Result) (*Type, error) {
	arm := func(name string, t wit.Type) (Variant, error) {
		if t == nil {
			return UnitVariant(name), nil
		}
		payload, err := c.Convert(t)
		if err != nil {
			return Variant{}, errors.WithPath(err, name)
		}
		return TupleVariant(name, payload), nil
	}
	errArm, err := arm("Err", r.Err)
	if err != nil {
		return nil, err
	}
	okArm, err := arm("Ok", r.OK)
	if err != nil {
		return nil, err
	}
	return Enum(errArm, okArm), nil
}

func convertFlags(f *wit.Flags) (*Type, error) {
	switch n := len(f.Flags); {
	case n <= 8:
		return Prim(codec.KindU8), nil
	case n <= 16:
		return Prim(codec.KindU16), nil
	case n <= 32:
		return Prim(codec.KindU32), nil
	case n <= 64:
		return Prim(codec.KindU64), nil
	default:
		return nil, errors.LimitExceeded(errors.PhaseSchema, "flags", 0, n, 64)
	}
}

func snake(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
