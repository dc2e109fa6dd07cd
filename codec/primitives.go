package codec

import (
	"math"
	"math/big"

	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

type integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// Integer codecs up to 64 bits map to the Go integer of the same width.
var (
	U8  FixedCodec[uint8]  = intCodec[uint8]{kind: KindU8}
	U16 FixedCodec[uint16] = intCodec[uint16]{kind: KindU16}
	U32 FixedCodec[uint32] = intCodec[uint32]{kind: KindU32}
	U64 FixedCodec[uint64] = intCodec[uint64]{kind: KindU64}
	I8  FixedCodec[int8]   = intCodec[int8]{kind: KindI8}
	I16 FixedCodec[int16]  = intCodec[int16]{kind: KindI16}
	I32 FixedCodec[int32]  = intCodec[int32]{kind: KindI32}
	I64 FixedCodec[int64]  = intCodec[int64]{kind: KindI64}
)

// Wide integer codecs use *big.Int values.
var (
	U128 FixedCodec[*big.Int] = bigCodec{kind: KindU128}
	U256 FixedCodec[*big.Int] = bigCodec{kind: KindU256}
	U512 FixedCodec[*big.Int] = bigCodec{kind: KindU512}
	I128 FixedCodec[*big.Int] = bigCodec{kind: KindI128}
	I256 FixedCodec[*big.Int] = bigCodec{kind: KindI256}
	I512 FixedCodec[*big.Int] = bigCodec{kind: KindI512}
)

var (
	Bool FixedCodec[bool]    = boolCodec{}
	F32  FixedCodec[float32] = f32Codec{}
	F64  FixedCodec[float64] = f64Codec{}
	Unit FixedCodec[Empty]   = unitCodec{}
)

// Empty is the value of a zero-byte payload.
type Empty struct{}

type intCodec[T integer] struct {
	kind Kind
}

func (c intCodec[T]) Kind() Kind    { return c.kind }
func (c intCodec[T]) ByteSize() int { return c.kind.Width() }

func (c intCodec[T]) FixFromValue(T) (FixedCodec[T], error) { return c, nil }

func (c intCodec[T]) FixFromData(cur *Cursor) (FixedCodec[T], error) {
	return fixSelf[T](c, cur)
}

func (c intCodec[T]) Write(buf []byte, off int, v T) error {
	size := c.kind.Width()
	if err := checkBounds(errors.PhaseEncode, c.kind, buf, off, size); err != nil {
		return err
	}
	wire.PutUint(buf, off, size, uint64(v))
	return nil
}

func (c intCodec[T]) Read(buf []byte, off int) (T, error) {
	size := c.kind.Width()
	if err := checkBounds(errors.PhaseDecode, c.kind, buf, off, size); err != nil {
		return 0, err
	}
	return T(wire.Uint(buf, off, size)), nil
}

type bigCodec struct {
	kind Kind
}

func (c bigCodec) Kind() Kind    { return c.kind }
func (c bigCodec) ByteSize() int { return c.kind.Width() }

func (c bigCodec) FixFromValue(*big.Int) (FixedCodec[*big.Int], error) { return c, nil }

func (c bigCodec) FixFromData(cur *Cursor) (FixedCodec[*big.Int], error) {
	return fixSelf[*big.Int](c, cur)
}

func (c bigCodec) Write(buf []byte, off int, v *big.Int) error {
	if v == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, "*big.Int")
	}
	size := c.kind.Width()
	if !wire.BigFits(v, size, c.kind.IsSigned()) {
		return errors.Overflow(errors.PhaseEncode, v.String(), c.kind.String())
	}
	if err := checkBounds(errors.PhaseEncode, c.kind, buf, off, size); err != nil {
		return err
	}
	wire.PutBig(buf, off, size, v)
	return nil
}

func (c bigCodec) Read(buf []byte, off int) (*big.Int, error) {
	size := c.kind.Width()
	if err := checkBounds(errors.PhaseDecode, c.kind, buf, off, size); err != nil {
		return nil, err
	}
	return wire.Big(buf, off, size, c.kind.IsSigned()), nil
}

type boolCodec struct{}

func (boolCodec) Kind() Kind    { return KindBool }
func (boolCodec) ByteSize() int { return 1 }

func (c boolCodec) FixFromValue(bool) (FixedCodec[bool], error) { return c, nil }

func (c boolCodec) FixFromData(cur *Cursor) (FixedCodec[bool], error) {
	return fixSelf[bool](c, cur)
}

func (boolCodec) Write(buf []byte, off int, v bool) error {
	if err := checkBounds(errors.PhaseEncode, KindBool, buf, off, 1); err != nil {
		return err
	}
	if v {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
	return nil
}

// Read treats any non-zero byte as true.
func (boolCodec) Read(buf []byte, off int) (bool, error) {
	if err := checkBounds(errors.PhaseDecode, KindBool, buf, off, 1); err != nil {
		return false, err
	}
	return buf[off] != 0, nil
}

type f32Codec struct{}

func (f32Codec) Kind() Kind    { return KindF32 }
func (f32Codec) ByteSize() int { return 4 }

func (c f32Codec) FixFromValue(float32) (FixedCodec[float32], error) { return c, nil }

func (c f32Codec) FixFromData(cur *Cursor) (FixedCodec[float32], error) {
	return fixSelf[float32](c, cur)
}

func (f32Codec) Write(buf []byte, off int, v float32) error {
	if err := checkBounds(errors.PhaseEncode, KindF32, buf, off, 4); err != nil {
		return err
	}
	wire.PutUint(buf, off, 4, uint64(math.Float32bits(v)))
	return nil
}

func (f32Codec) Read(buf []byte, off int) (float32, error) {
	if err := checkBounds(errors.PhaseDecode, KindF32, buf, off, 4); err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(wire.Uint(buf, off, 4))), nil
}

type f64Codec struct{}

func (f64Codec) Kind() Kind    { return KindF64 }
func (f64Codec) ByteSize() int { return 8 }

func (c f64Codec) FixFromValue(float64) (FixedCodec[float64], error) { return c, nil }

func (c f64Codec) FixFromData(cur *Cursor) (FixedCodec[float64], error) {
	return fixSelf[float64](c, cur)
}

func (f64Codec) Write(buf []byte, off int, v float64) error {
	if err := checkBounds(errors.PhaseEncode, KindF64, buf, off, 8); err != nil {
		return err
	}
	wire.PutUint(buf, off, 8, math.Float64bits(v))
	return nil
}

func (f64Codec) Read(buf []byte, off int) (float64, error) {
	if err := checkBounds(errors.PhaseDecode, KindF64, buf, off, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(wire.Uint(buf, off, 8)), nil
}

// unitCodec occupies zero bytes; it is the payload of fieldless variants.
type unitCodec struct{}

func (unitCodec) Kind() Kind    { return KindUnit }
func (unitCodec) ByteSize() int { return 0 }

func (c unitCodec) FixFromValue(Empty) (FixedCodec[Empty], error) { return c, nil }

func (c unitCodec) FixFromData(*Cursor) (FixedCodec[Empty], error) { return c, nil }

func (unitCodec) Write([]byte, int, Empty) error { return nil }

func (unitCodec) Read([]byte, int) (Empty, error) { return Empty{}, nil }
