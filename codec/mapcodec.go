package codec

import (
	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

type mapped[A, B any] struct {
	inner Codec[A]
	to    func(A) (B, error)
	from  func(B) (A, error)
}

type fixedMapped[A, B any] struct {
	inner FixedCodec[A]
	to    func(A) (B, error)
	from  func(B) (A, error)
}

// Map presents a Codec[A] as a Codec[B] with the same wire shape. to
// converts decoded values, from converts values before encoding. The result
// is fixed when c is.
func Map[A, B any](c Codec[A], to func(A) (B, error), from func(B) (A, error)) Codec[B] {
	if f, ok := AsFixed(c); ok {
		return fixedMapped[A, B]{inner: f, to: to, from: from}
	}
	return mapped[A, B]{inner: c, to: to, from: from}
}

// MapFixed is Map for a fixed codec.
func MapFixed[A, B any](c FixedCodec[A], to func(A) (B, error), from func(B) (A, error)) FixedCodec[B] {
	return fixedMapped[A, B]{inner: c, to: to, from: from}
}

func (c mapped[A, B]) Kind() Kind { return c.inner.Kind() }

func (c mapped[A, B]) FixFromValue(v B) (FixedCodec[B], error) {
	a, err := c.from(v)
	if err != nil {
		return nil, err
	}
	f, err := c.inner.FixFromValue(a)
	if err != nil {
		return nil, err
	}
	return fixedMapped[A, B]{inner: f, to: c.to, from: c.from}, nil
}

func (c mapped[A, B]) FixFromData(cur *Cursor) (FixedCodec[B], error) {
	f, err := c.inner.FixFromData(cur)
	if err != nil {
		return nil, err
	}
	return fixedMapped[A, B]{inner: f, to: c.to, from: c.from}, nil
}

func (c fixedMapped[A, B]) Kind() Kind    { return c.inner.Kind() }
func (c fixedMapped[A, B]) ByteSize() int { return c.inner.ByteSize() }

func (c fixedMapped[A, B]) FixFromValue(B) (FixedCodec[B], error) { return c, nil }

func (c fixedMapped[A, B]) FixFromData(cur *Cursor) (FixedCodec[B], error) {
	if _, err := c.inner.FixFromData(cur); err != nil {
		return nil, err
	}
	return c, nil
}

func (c fixedMapped[A, B]) Write(buf []byte, off int, v B) error {
	a, err := c.from(v)
	if err != nil {
		return err
	}
	return c.inner.Write(buf, off, a)
}

func (c fixedMapped[A, B]) Read(buf []byte, off int) (B, error) {
	var zero B
	a, err := c.inner.Read(buf, off)
	if err != nil {
		return zero, err
	}
	return c.to(a)
}

// Erase converts a typed codec into one over any. Values that are not a T
// fail with a type mismatch.
func Erase[T any](c Codec[T]) Codec[any] {
	return Map(c, eraseTo[T], eraseFrom[T](c.Kind()))
}

func eraseTo[T any](v T) (any, error) { return v, nil }

func eraseFrom[T any](kind Kind) func(any) (T, error) {
	return func(v any) (T, error) {
		if v == nil && nilable[T]() {
			var zero T
			return zero, nil
		}
		t, ok := v.(T)
		if !ok {
			var zero T
			return zero, errors.TypeMismatch(errors.PhaseEncode, nil, wire.TypeName(v), kind.String())
		}
		return t, nil
	}
}
