package codec

import (
	"github.com/wippyai/borsh/errors"
)

const (
	optionNone byte = 0
	optionSome byte = 1
)

type noneCodec[T any] struct{}

func (noneCodec[T]) Kind() Kind    { return KindOption }
func (noneCodec[T]) ByteSize() int { return 1 }

func (c noneCodec[T]) FixFromValue(*T) (FixedCodec[*T], error) { return c, nil }

func (c noneCodec[T]) FixFromData(cur *Cursor) (FixedCodec[*T], error) {
	return fixSelf[*T](c, cur)
}

func (noneCodec[T]) Write(buf []byte, off int, v *T) error {
	if v != nil {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Codec(KindOption.String()).
			Offset(off).
			Detail("present value written through a codec fixed for an absent one").
			Build()
	}
	if err := checkBounds(errors.PhaseEncode, KindOption, buf, off, 1); err != nil {
		return err
	}
	buf[off] = optionNone
	return nil
}

func (noneCodec[T]) Read(buf []byte, off int) (*T, error) {
	if err := checkBounds(errors.PhaseDecode, KindOption, buf, off, 1); err != nil {
		return nil, err
	}
	if buf[off] != optionNone {
		return nil, errors.InvalidOptionTag(errors.PhaseDecode, off, buf[off])
	}
	return nil, nil
}

type someCodec[T any] struct {
	inner FixedCodec[T]
}

func (someCodec[T]) Kind() Kind      { return KindOption }
func (c someCodec[T]) ByteSize() int { return 1 + c.inner.ByteSize() }

func (c someCodec[T]) FixFromValue(*T) (FixedCodec[*T], error) { return c, nil }

func (c someCodec[T]) FixFromData(cur *Cursor) (FixedCodec[*T], error) {
	return fixSelf[*T](c, cur)
}

func (c someCodec[T]) Write(buf []byte, off int, v *T) error {
	if v == nil {
		return errors.New(errors.PhaseEncode, errors.KindNilPointer).
			Codec(KindOption.String()).
			Offset(off).
			Detail("absent value written through a codec fixed for a present one").
			Build()
	}
	if err := checkBounds(errors.PhaseEncode, KindOption, buf, off, c.ByteSize()); err != nil {
		return err
	}
	buf[off] = optionSome
	return c.inner.Write(buf, off+1, *v)
}

func (c someCodec[T]) Read(buf []byte, off int) (*T, error) {
	if err := checkBounds(errors.PhaseDecode, KindOption, buf, off, c.ByteSize()); err != nil {
		return nil, err
	}
	if buf[off] != optionSome {
		return nil, errors.InvalidOptionTag(errors.PhaseDecode, off, buf[off])
	}
	v, err := c.inner.Read(buf, off+1)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type optionCodec[T any] struct {
	inner Codec[T]
}

// Option encodes *T behind a one-byte presence tag: nil is the single byte
// 0, a present value is 1 followed by the inner encoding.
func Option[T any](inner Codec[T]) Codec[*T] {
	return optionCodec[T]{inner: inner}
}

// None returns the one-byte codec for an absent value.
func None[T any]() FixedCodec[*T] {
	return noneCodec[T]{}
}

// Some returns the codec for a present value encoded by inner.
func Some[T any](inner FixedCodec[T]) FixedCodec[*T] {
	return someCodec[T]{inner: inner}
}

func (optionCodec[T]) Kind() Kind { return KindOption }

func (c optionCodec[T]) FixFromValue(v *T) (FixedCodec[*T], error) {
	if v == nil {
		return None[T](), nil
	}
	inner, err := c.inner.FixFromValue(*v)
	if err != nil {
		return nil, err
	}
	return Some(inner), nil
}

func (c optionCodec[T]) FixFromData(cur *Cursor) (FixedCodec[*T], error) {
	at := cur.Offset()
	tag, err := cur.ReadTag(KindOption)
	if err != nil {
		return nil, err
	}
	switch tag {
	case optionNone:
		return None[T](), nil
	case optionSome:
		inner, err := c.inner.FixFromData(cur)
		if err != nil {
			return nil, err
		}
		return Some(inner), nil
	default:
		return nil, errors.InvalidOptionTag(errors.PhaseFix, at, tag)
	}
}
