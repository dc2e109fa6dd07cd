package schema

import (
	"fmt"
	"math/big"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Dynamic values produced and accepted by built codecs:
//
//	Type            Decoded as          Also accepted when encoding
//	────────────────────────────────────────────────────────────────
//	u8..u64         uint8..uint64       any integer, float64, numeric string
//	i8..i64         int8..int64         same
//	u128..i512      *big.Int            same
//	f32/f64         float32/float64     any number
//	bool            bool                "true"/"false"
//	string          string
//	bytes, vec<u8>  []byte              "0x" hex, []any of bytes
//	[u8; N]         []byte              same
//	pubkey          codec.PublicKey     base58 string, 32-byte slice
//	vec<T>, [T; N]  []any
//	option<T>       nil or T
//	struct          codec.Params        map[string]any, []any
//	enum            *EnumValue          variant name, {"Variant": fields}

type builder struct {
	reg    *Registry
	built  map[string]codec.Codec[any]
	active map[string]int
	cells  map[string]*lazyCell
	guards int
}

func newBuilder(reg *Registry) *builder {
	return &builder{
		reg:    reg,
		built:  make(map[string]codec.Codec[any]),
		active: make(map[string]int),
		cells:  make(map[string]*lazyCell),
	}
}

func (b *builder) ref(name string) (codec.Codec[any], error) {
	if c, ok := b.built[name]; ok {
		return c, nil
	}
	if depth, ok := b.active[name]; ok {
		if b.guards > depth {
			cell := b.cells[name]
			if cell == nil {
				cell = &lazyCell{}
				b.cells[name] = cell
			}
			return lazyCodec{cell: cell}, nil
		}
		return nil, errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Path(name).
			Detail("type %q contains itself without a vec, option or enum in between", name).
			Build()
	}
	t, ok := b.reg.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseSchema, "type", name)
	}

	b.active[name] = b.guards
	c, err := b.build(t)
	delete(b.active, name)
	if err != nil {
		return nil, err
	}
	b.built[name] = c
	if cell := b.cells[name]; cell != nil {
		cell.c = c
	}
	return c, nil
}

// guarded builds t inside a construct that can terminate recursion.
func (b *builder) guarded(t *Type) (codec.Codec[any], error) {
	b.guards++
	defer func() { b.guards-- }()
	return b.build(t)
}

func (b *builder) build(t *Type) (codec.Codec[any], error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseSchema, nil, "*schema.Type")
	}
	if t.IsRef() {
		return b.ref(t.Ref)
	}
	switch t.Kind {
	case codec.KindVec:
		if isByte(t.Elem) {
			return bytesCodec(codec.Bytes()), nil
		}
		elem, err := b.guarded(t.Elem)
		if err != nil {
			return nil, errors.WithPath(err, "[]")
		}
		return listCodec(codec.Vec(elem), codec.KindVec), nil
	case codec.KindArray:
		if isByte(t.Elem) {
			return bytesCodec(codec.FixedBytes(t.Len)), nil
		}
		elem, err := b.build(t.Elem)
		if err != nil {
			return nil, errors.WithPath(err, "[]")
		}
		return listCodec(codec.ArrayOf(elem, t.Len), codec.KindArray), nil
	case codec.KindOption:
		elem, err := b.guarded(t.Elem)
		if err != nil {
			return nil, err
		}
		return optionCodec(elem), nil
	case codec.KindStruct:
		return b.buildStruct(t)
	case codec.KindEnum:
		return b.buildEnum(t)
	default:
		return primitive(t.Kind)
	}
}

func isByte(t *Type) bool {
	return t != nil && !t.IsRef() && t.Kind == codec.KindU8
}

func (b *builder) fields(fields []Field) ([]codec.Field[codec.Params], error) {
	out := make([]codec.Field[codec.Params], len(fields))
	for i, f := range fields {
		c, err := b.build(f.Type)
		if err != nil {
			return nil, errors.WithPath(err, f.Name)
		}
		out[i] = codec.ParamField(f.Name, c)
	}
	return out, nil
}

func (b *builder) buildStruct(t *Type) (codec.Codec[any], error) {
	fields, err := b.fields(t.Fields)
	if err != nil {
		return nil, err
	}
	return codec.Map(codec.ParamsStruct(fields...), toAny[codec.Params], func(v any) (codec.Params, error) {
		p, ok := CoerceToParams(v, t.Fields)
		if !ok {
			return nil, mismatch(v, codec.KindStruct)
		}
		return p, nil
	}), nil
}

func (b *builder) buildEnum(t *Type) (codec.Codec[any], error) {
	b.guards++
	defer func() { b.guards-- }()

	defs := make([]codec.VariantDef, len(t.Variants))
	for i, v := range t.Variants {
		fields, err := b.fields(v.Fields)
		if err != nil {
			return nil, errors.WithPath(err, v.Name)
		}
		defs[i] = codec.NewVariant(v.Name, fields...)
	}
	variants := t.Variants
	enum := codec.DataEnum(func(disc uint8, p codec.Params) (*EnumValue, error) {
		return &EnumValue{Name: variants[disc].Name, Index: disc, Params: p}, nil
	}, defs...)
	return codec.Map(enum, toAny[*EnumValue], func(v any) (*EnumValue, error) {
		return coerceEnum(v, variants)
	}), nil
}

func coerceEnum(value any, variants []Variant) (*EnumValue, error) {
	index := func(name string) (uint8, *Variant, error) {
		for i := range variants {
			if variants[i].Name == name {
				return uint8(i), &variants[i], nil
			}
		}
		return 0, nil, errors.NotFound(errors.PhaseEncode, "variant", name)
	}

	switch v := value.(type) {
	case *EnumValue:
		if v == nil {
			return nil, errors.NilPointer(errors.PhaseEncode, nil, "*schema.EnumValue")
		}
		i, _, err := index(v.Name)
		if err != nil {
			return nil, err
		}
		return &EnumValue{Name: v.Name, Index: i, Params: v.Params}, nil
	case EnumValue:
		return coerceEnum(&v, variants)
	case string:
		i, _, err := index(v)
		if err != nil {
			return nil, err
		}
		return &EnumValue{Name: v, Index: i}, nil
	case map[string]any:
		if len(v) != 1 {
			return nil, errors.InvalidInput(errors.PhaseEncode, "enum value map must have exactly one key")
		}
		for name, payload := range v {
			i, variant, err := index(name)
			if err != nil {
				return nil, err
			}
			params, ok := CoerceToParams(payload, variant.Fields)
			if !ok && len(variant.Fields) == 1 {
				params, ok = codec.Params{{Name: variant.Fields[0].Name, Value: payload}}, true
			}
			if !ok {
				return nil, mismatch(payload, codec.KindStruct)
			}
			return &EnumValue{Name: name, Index: i, Params: params}, nil
		}
	}
	return nil, mismatch(value, codec.KindEnum)
}

func mismatch(v any, k codec.Kind) error {
	return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), k.String())
}

func toAny[T any](v T) (any, error) { return v, nil }

func listCodec(c codec.Codec[[]any], kind codec.Kind) codec.Codec[any] {
	return codec.Map(c, toAny[[]any], func(v any) ([]any, error) {
		l, ok := CoerceToList(v)
		if !ok {
			return nil, mismatch(v, kind)
		}
		return l, nil
	})
}

func bytesCodec(c codec.Codec[[]byte]) codec.Codec[any] {
	return codec.Map(c, toAny[[]byte], func(v any) ([]byte, error) {
		b, ok := CoerceToBytes(v)
		if !ok {
			return nil, mismatch(v, codec.KindBytes)
		}
		return b, nil
	})
}

func optionCodec(elem codec.Codec[any]) codec.Codec[any] {
	return codec.Map(codec.Option(elem),
		func(p *any) (any, error) {
			if p == nil {
				return nil, nil
			}
			return *p, nil
		},
		func(v any) (*any, error) {
			if v == nil {
				return nil, nil
			}
			return &v, nil
		})
}

func primitive(k codec.Kind) (codec.Codec[any], error) {
	switch k {
	case codec.KindBool:
		return codec.Map[bool, any](codec.Bool, toAny[bool], func(v any) (bool, error) {
			b, ok := CoerceToBool(v)
			if !ok {
				return false, mismatch(v, k)
			}
			return b, nil
		}), nil
	case codec.KindU8:
		return unsigned(codec.U8, 8), nil
	case codec.KindU16:
		return unsigned(codec.U16, 16), nil
	case codec.KindU32:
		return unsigned(codec.U32, 32), nil
	case codec.KindU64:
		return unsigned(codec.U64, 64), nil
	case codec.KindI8:
		return signed(codec.I8, 8), nil
	case codec.KindI16:
		return signed(codec.I16, 16), nil
	case codec.KindI32:
		return signed(codec.I32, 32), nil
	case codec.KindI64:
		return signed(codec.I64, 64), nil
	case codec.KindU128:
		return wide(codec.U128), nil
	case codec.KindU256:
		return wide(codec.U256), nil
	case codec.KindU512:
		return wide(codec.U512), nil
	case codec.KindI128:
		return wide(codec.I128), nil
	case codec.KindI256:
		return wide(codec.I256), nil
	case codec.KindI512:
		return wide(codec.I512), nil
	case codec.KindF32:
		return codec.Map[float32, any](codec.F32, toAny[float32], func(v any) (float32, error) {
			f, ok := CoerceToFloat64(v)
			if !ok {
				return 0, mismatch(v, k)
			}
			return float32(f), nil
		}), nil
	case codec.KindF64:
		return codec.Map[float64, any](codec.F64, toAny[float64], func(v any) (float64, error) {
			f, ok := CoerceToFloat64(v)
			if !ok {
				return 0, mismatch(v, k)
			}
			return f, nil
		}), nil
	case codec.KindUnit:
		return codec.Map[codec.Empty, any](codec.Unit,
			func(codec.Empty) (any, error) { return nil, nil },
			func(any) (codec.Empty, error) { return codec.Empty{}, nil }), nil
	case codec.KindString:
		return codec.Map(codec.String(), toAny[string], func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", mismatch(v, k)
			}
			return s, nil
		}), nil
	case codec.KindBytes:
		return bytesCodec(codec.Bytes()), nil
	case codec.KindPublicKey:
		return codec.Map[codec.PublicKey, any](codec.PublicKeyCodec(), toAny[codec.PublicKey], func(v any) (codec.PublicKey, error) {
			pk, ok := CoerceToPublicKey(v)
			if !ok {
				return pk, mismatch(v, k)
			}
			return pk, nil
		}), nil
	}
	return nil, errors.Unsupported(errors.PhaseSchema, "type kind "+k.String())
}

func unsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64](c codec.FixedCodec[T], bits int) codec.Codec[any] {
	return codec.Map[T, any](c, toAny[T], func(v any) (T, error) {
		if u, ok := CoerceUnsigned[T](v, bits); ok {
			return u, nil
		}
		if _, ok := CoerceToBig(v); ok {
			return 0, errors.Overflow(errors.PhaseEncode, v, c.Kind().String())
		}
		return 0, mismatch(v, c.Kind())
	})
}

func signed[T ~int8 | ~int16 | ~int32 | ~int64](c codec.FixedCodec[T], bits int) codec.Codec[any] {
	return codec.Map[T, any](c, toAny[T], func(v any) (T, error) {
		if i, ok := CoerceSigned[T](v, bits); ok {
			return i, nil
		}
		if _, ok := CoerceToBig(v); ok {
			return 0, errors.Overflow(errors.PhaseEncode, v, c.Kind().String())
		}
		return 0, mismatch(v, c.Kind())
	})
}

func wide(c codec.FixedCodec[*big.Int]) codec.Codec[any] {
	return codec.Map[*big.Int, any](c, toAny[*big.Int], func(v any) (*big.Int, error) {
		b, ok := CoerceToBig(v)
		if !ok {
			return nil, mismatch(v, c.Kind())
		}
		return b, nil
	})
}

type lazyCell struct {
	c codec.Codec[any]
}

// lazyCodec stands in for a recursive reference until its definition is
// built.
type lazyCodec struct {
	cell *lazyCell
}

func (l lazyCodec) Kind() codec.Kind { return l.cell.c.Kind() }

func (l lazyCodec) FixFromValue(v any) (codec.FixedCodec[any], error) {
	return l.cell.c.FixFromValue(v)
}

func (l lazyCodec) FixFromData(c *codec.Cursor) (codec.FixedCodec[any], error) {
	return l.cell.c.FixFromData(c)
}
