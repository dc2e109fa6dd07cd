package codec

import (
	"github.com/wippyai/borsh/errors"
)

// Field is one named, ordered member of a struct codec. It pairs a codec
// with a typed accessor that extracts the member from the struct value.
type Field[S any] interface {
	Name() string

	resolved() (FixedField[S], bool)
	fixFromValue(v S) (FixedField[S], error)
	fixFromData(c *Cursor) (FixedField[S], error)
}

// FixedField is a Field whose codec has been resolved.
type FixedField[S any] interface {
	Name() string
	ByteSize() int

	write(w *Writer, v S) error
	read(r *Reader) (any, error)
}

type field[S, F any] struct {
	name  string
	codec Codec[F]
	get   func(S) (F, error)
}

// NewField declares a struct member encoded by c. get extracts the member.
func NewField[S, F any](name string, c Codec[F], get func(S) F) Field[S] {
	return field[S, F]{
		name:  name,
		codec: c,
		get:   func(s S) (F, error) { return get(s), nil },
	}
}

// ParamField declares a member of a Params-valued struct. The value is
// looked up by name and must hold an F.
func ParamField[F any](name string, c Codec[F]) Field[Params] {
	return field[Params, F]{
		name:  name,
		codec: c,
		get:   func(p Params) (F, error) { return ParamAs[F](p, name) },
	}
}

func (f field[S, F]) Name() string { return f.name }

func (f field[S, F]) resolved() (FixedField[S], bool) {
	c, ok := AsFixed(f.codec)
	if !ok {
		return nil, false
	}
	return fixedField[S, F]{name: f.name, codec: c, get: f.get}, true
}

func (f field[S, F]) fixFromValue(s S) (FixedField[S], error) {
	v, err := f.get(s)
	if err != nil {
		return nil, err
	}
	c, err := f.codec.FixFromValue(v)
	if err != nil {
		return nil, err
	}
	return fixedField[S, F]{name: f.name, codec: c, get: f.get}, nil
}

func (f field[S, F]) fixFromData(cur *Cursor) (FixedField[S], error) {
	c, err := f.codec.FixFromData(cur)
	if err != nil {
		return nil, err
	}
	return fixedField[S, F]{name: f.name, codec: c, get: f.get}, nil
}

type fixedField[S, F any] struct {
	name  string
	codec FixedCodec[F]
	get   func(S) (F, error)
}

func (f fixedField[S, F]) Name() string  { return f.name }
func (f fixedField[S, F]) ByteSize() int { return f.codec.ByteSize() }

func (f fixedField[S, F]) write(w *Writer, s S) error {
	v, err := f.get(s)
	if err != nil {
		return err
	}
	return WriteValue(w, f.codec, v)
}

func (f fixedField[S, F]) read(r *Reader) (any, error) {
	v, err := ReadValue(r, f.codec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Struct composes fields in declaration order. construct rebuilds the value
// from the decoded Params. The codec is fixed when every field is fixed.
func Struct[S any](fields []Field[S], construct func(Params) (S, error)) Codec[S] {
	fixed := make([]FixedField[S], 0, len(fields))
	for _, f := range fields {
		ff, ok := f.resolved()
		if !ok {
			return fixableStruct[S]{fields: fields, construct: construct}
		}
		fixed = append(fixed, ff)
	}
	return NewFixedStruct(fixed, construct)
}

// ParamsStruct is a struct codec whose value is the Params itself.
func ParamsStruct(fields ...Field[Params]) Codec[Params] {
	return Struct(fields, identityParams)
}

func identityParams(p Params) (Params, error) { return p, nil }

type fixedStruct[S any] struct {
	fields    []FixedField[S]
	size      int
	construct func(Params) (S, error)
}

// NewFixedStruct builds a struct codec over already resolved fields.
func NewFixedStruct[S any](fields []FixedField[S], construct func(Params) (S, error)) FixedCodec[S] {
	size := 0
	for _, f := range fields {
		size += f.ByteSize()
	}
	return fixedStruct[S]{fields: fields, size: size, construct: construct}
}

func (fixedStruct[S]) Kind() Kind      { return KindStruct }
func (c fixedStruct[S]) ByteSize() int { return c.size }

// Fields returns the resolved fields in wire order.
func (c fixedStruct[S]) Fields() []FixedField[S] { return c.fields }

func (c fixedStruct[S]) FixFromValue(S) (FixedCodec[S], error) { return c, nil }

func (c fixedStruct[S]) FixFromData(cur *Cursor) (FixedCodec[S], error) {
	return fixSelf[S](c, cur)
}

func (c fixedStruct[S]) Write(buf []byte, off int, v S) error {
	if err := checkBounds(errors.PhaseEncode, KindStruct, buf, off, c.size); err != nil {
		return err
	}
	w := newRegionWriter(buf, off, c.size)
	for _, f := range c.fields {
		if err := f.write(w, v); err != nil {
			return errors.WithPath(err, f.Name())
		}
	}
	return nil
}

func (c fixedStruct[S]) Read(buf []byte, off int) (S, error) {
	var zero S
	if err := checkBounds(errors.PhaseDecode, KindStruct, buf, off, c.size); err != nil {
		return zero, err
	}
	r := NewReader(buf, off)
	params := make(Params, 0, len(c.fields))
	for _, f := range c.fields {
		v, err := f.read(r)
		if err != nil {
			return zero, errors.WithPath(err, f.Name())
		}
		params = append(params, Param{Name: f.Name(), Value: v})
	}
	s, err := c.construct(params)
	if err != nil {
		return zero, constructFailed(err, off)
	}
	return s, nil
}

func constructFailed(err error, off int) error {
	kind := errors.KindInvalidInput
	if e, ok := err.(*errors.Error); ok {
		kind = e.Kind
	}
	return errors.New(errors.PhaseDecode, kind).
		Codec(KindStruct.String()).
		Offset(off).
		Cause(err).
		Detail("constructor rejected decoded fields").
		Build()
}

type fixableStruct[S any] struct {
	fields    []Field[S]
	construct func(Params) (S, error)
}

func (fixableStruct[S]) Kind() Kind { return KindStruct }

func (c fixableStruct[S]) FixFromValue(v S) (FixedCodec[S], error) {
	fixed := make([]FixedField[S], len(c.fields))
	for i, f := range c.fields {
		ff, err := f.fixFromValue(v)
		if err != nil {
			return nil, errors.WithPath(err, f.Name())
		}
		fixed[i] = ff
	}
	return NewFixedStruct(fixed, c.construct), nil
}

func (c fixableStruct[S]) FixFromData(cur *Cursor) (FixedCodec[S], error) {
	fixed := make([]FixedField[S], len(c.fields))
	for i, f := range c.fields {
		ff, err := f.fixFromData(cur)
		if err != nil {
			return nil, errors.WithPath(err, f.Name())
		}
		fixed[i] = ff
	}
	return NewFixedStruct(fixed, c.construct), nil
}
