package codec

import (
	"reflect"

	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

// Variant is implemented by values of data-carrying enums. It reports the
// active variant and its named parameters in declaration order.
type Variant interface {
	VariantName() string
	VariantParams() Params
}

// VariantDef declares one variant of a data enum. A variant without fields
// has an empty payload.
type VariantDef struct {
	Name   string
	Fields []Field[Params]
}

func NewVariant(name string, fields ...Field[Params]) VariantDef {
	return VariantDef{Name: name, Fields: fields}
}

type variantCodec struct {
	name    string
	payload Codec[Params]
}

type dataEnum[E Variant] struct {
	variants []variantCodec
	index    map[string]int
	build    func(disc uint8, p Params) (E, error)
}

// DataEnum encodes E as a discriminant byte followed by the fields of the
// active variant. The discriminant is the variant's position in variants.
// Variants past MaxCases have no discriminant and fail to encode.
// build reconstructs a value from a discriminant and its decoded params.
func DataEnum[E Variant](build func(disc uint8, p Params) (E, error), variants ...VariantDef) Codec[E] {
	e := dataEnum[E]{
		variants: make([]variantCodec, len(variants)),
		index:    make(map[string]int, len(variants)),
		build:    build,
	}
	for i, v := range variants {
		e.variants[i] = variantCodec{name: v.Name, payload: ParamsStruct(v.Fields...)}
		e.index[v.Name] = i
	}
	return e
}

func (dataEnum[E]) Kind() Kind { return KindEnum }

func (c dataEnum[E]) FixFromValue(v E) (FixedCodec[E], error) {
	if isNilValue(v) {
		return nil, errors.NilPointer(errors.PhaseFix, nil, wire.TypeName(v))
	}
	name := v.VariantName()
	i, ok := c.index[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseFix, "variant", name)
	}
	if i >= MaxCases {
		return nil, errors.New(errors.PhaseFix, errors.KindLimitExceeded).
			Path(name).
			Codec(KindEnum.String()).
			Value(i).
			Detail("variant %d has no one-byte discriminant (max %d variants)", i, MaxCases).
			Build()
	}
	payload, err := c.variants[i].payload.FixFromValue(v.VariantParams())
	if err != nil {
		return nil, errors.WithPath(err, name)
	}
	return c.fixed(i, payload), nil
}

func (c dataEnum[E]) FixFromData(cur *Cursor) (FixedCodec[E], error) {
	at := cur.Offset()
	tag, err := cur.ReadTag(KindEnum)
	if err != nil {
		return nil, err
	}
	i := int(tag)
	if i >= len(c.variants) {
		return nil, errors.InvalidDiscriminant(errors.PhaseFix, KindEnum.String(), at, i, len(c.variants)-1)
	}
	payload, err := c.variants[i].payload.FixFromData(cur)
	if err != nil {
		return nil, errors.WithPath(err, c.variants[i].name)
	}
	return c.fixed(i, payload), nil
}

func (c dataEnum[E]) fixed(i int, payload FixedCodec[Params]) FixedCodec[E] {
	return fixedVariant[E]{
		disc:    uint8(i),
		name:    c.variants[i].name,
		payload: payload,
		build:   c.build,
	}
}

// fixedVariant is one resolved variant. It re-emits its own discriminant.
type fixedVariant[E Variant] struct {
	disc    uint8
	name    string
	payload FixedCodec[Params]
	build   func(uint8, Params) (E, error)
}

func (fixedVariant[E]) Kind() Kind      { return KindEnum }
func (c fixedVariant[E]) ByteSize() int { return 1 + c.payload.ByteSize() }

// Discriminant returns the tag byte of the resolved variant.
func (c fixedVariant[E]) Discriminant() uint8 { return c.disc }

func (c fixedVariant[E]) FixFromValue(E) (FixedCodec[E], error) { return c, nil }

func (c fixedVariant[E]) FixFromData(cur *Cursor) (FixedCodec[E], error) {
	if b, err := cur.Peek(1, KindEnum); err == nil && b[0] != c.disc {
		return nil, c.wrongVariant(errors.PhaseFix, cur.Offset(), int(b[0]))
	}
	return fixSelf[E](c, cur)
}

func (c fixedVariant[E]) Write(buf []byte, off int, v E) error {
	if isNilValue(v) {
		return errors.NilPointer(errors.PhaseEncode, nil, wire.TypeName(v))
	}
	if name := v.VariantName(); name != c.name {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Codec(KindEnum.String()).
			Offset(off).
			Detail("variant %q written through a codec resolved for %q", name, c.name).
			Build()
	}
	if err := checkBounds(errors.PhaseEncode, KindEnum, buf, off, c.ByteSize()); err != nil {
		return err
	}
	buf[off] = c.disc
	if err := c.payload.Write(buf, off+1, v.VariantParams()); err != nil {
		return errors.WithPath(err, c.name)
	}
	return nil
}

func (c fixedVariant[E]) Read(buf []byte, off int) (E, error) {
	var zero E
	if err := checkBounds(errors.PhaseDecode, KindEnum, buf, off, c.ByteSize()); err != nil {
		return zero, err
	}
	if buf[off] != c.disc {
		return zero, c.wrongVariant(errors.PhaseDecode, off, int(buf[off]))
	}
	p, err := c.payload.Read(buf, off+1)
	if err != nil {
		return zero, errors.WithPath(err, c.name)
	}
	v, err := c.build(c.disc, p)
	if err != nil {
		return zero, errors.WithPath(constructFailed(err, off), c.name)
	}
	return v, nil
}

func (c fixedVariant[E]) wrongVariant(phase errors.Phase, off, got int) error {
	return errors.New(phase, errors.KindInvalidDiscriminant).
		Codec(KindEnum.String()).
		Offset(off).
		Value(got).
		Detail("discriminant %d, codec resolved for %d (%s)", got, c.disc, c.name).
		Build()
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
