package codec

import (
	"math"

	"github.com/wippyai/borsh/errors"
)

// MaxCases is the number of distinct one-byte discriminants.
const MaxCases = math.MaxUint8 + 1

func clampCases(n int) int {
	return min(max(n, 0), MaxCases)
}

// Tagged is a value of a uniform-payload union: a case ordinal plus the
// payload every case shares.
type Tagged[K ~uint8, P any] struct {
	Tag     K
	Payload P
}

type fixedUnion[K ~uint8, P any] struct {
	payload FixedCodec[P]
	cases   int
}

type unionCodec[K ~uint8, P any] struct {
	payload Codec[P]
	cases   int
}

// UniformUnion encodes Tagged values as the tag byte followed by payload.
// Tags at or above cases are rejected in both directions; cases is capped
// at MaxCases. The result is fixed whenever payload is.
func UniformUnion[K ~uint8, P any](payload Codec[P], cases int) Codec[Tagged[K, P]] {
	cases = clampCases(cases)
	if f, ok := AsFixed(payload); ok {
		return fixedUnion[K, P]{payload: f, cases: cases}
	}
	return unionCodec[K, P]{payload: payload, cases: cases}
}

func (fixedUnion[K, P]) Kind() Kind      { return KindUnion }
func (c fixedUnion[K, P]) ByteSize() int { return 1 + c.payload.ByteSize() }

func (c fixedUnion[K, P]) FixFromValue(Tagged[K, P]) (FixedCodec[Tagged[K, P]], error) {
	return c, nil
}

func (c fixedUnion[K, P]) FixFromData(cur *Cursor) (FixedCodec[Tagged[K, P]], error) {
	if b, err := cur.Peek(1, KindUnion); err == nil && int(b[0]) >= c.cases {
		return nil, errors.InvalidDiscriminant(errors.PhaseFix, KindUnion.String(), cur.Offset(), int(b[0]), c.cases-1)
	}
	return fixSelf[Tagged[K, P]](c, cur)
}

func (c fixedUnion[K, P]) Write(buf []byte, off int, v Tagged[K, P]) error {
	if int(v.Tag) >= c.cases {
		return errors.InvalidDiscriminant(errors.PhaseEncode, KindUnion.String(), off, int(v.Tag), c.cases-1)
	}
	if err := checkBounds(errors.PhaseEncode, KindUnion, buf, off, c.ByteSize()); err != nil {
		return err
	}
	buf[off] = byte(v.Tag)
	return c.payload.Write(buf, off+1, v.Payload)
}

func (c fixedUnion[K, P]) Read(buf []byte, off int) (Tagged[K, P], error) {
	var out Tagged[K, P]
	if err := checkBounds(errors.PhaseDecode, KindUnion, buf, off, c.ByteSize()); err != nil {
		return out, err
	}
	tag := buf[off]
	if int(tag) >= c.cases {
		return out, errors.InvalidDiscriminant(errors.PhaseDecode, KindUnion.String(), off, int(tag), c.cases-1)
	}
	p, err := c.payload.Read(buf, off+1)
	if err != nil {
		return out, err
	}
	out.Tag = K(tag)
	out.Payload = p
	return out, nil
}

func (unionCodec[K, P]) Kind() Kind { return KindUnion }

func (c unionCodec[K, P]) FixFromValue(v Tagged[K, P]) (FixedCodec[Tagged[K, P]], error) {
	if int(v.Tag) >= c.cases {
		return nil, errors.InvalidDiscriminant(errors.PhaseFix, KindUnion.String(), errors.NoOffset, int(v.Tag), c.cases-1)
	}
	p, err := c.payload.FixFromValue(v.Payload)
	if err != nil {
		return nil, err
	}
	return fixedUnion[K, P]{payload: p, cases: c.cases}, nil
}

func (c unionCodec[K, P]) FixFromData(cur *Cursor) (FixedCodec[Tagged[K, P]], error) {
	at := cur.Offset()
	tag, err := cur.ReadTag(KindUnion)
	if err != nil {
		return nil, err
	}
	if int(tag) >= c.cases {
		return nil, errors.InvalidDiscriminant(errors.PhaseFix, KindUnion.String(), at, int(tag), c.cases-1)
	}
	p, err := c.payload.FixFromData(cur)
	if err != nil {
		return nil, err
	}
	return fixedUnion[K, P]{payload: p, cases: c.cases}, nil
}

type enumCodec[K ~uint8] struct {
	cases int
}

// Enum is the one-byte codec of a fieldless enum with the given number of
// cases, capped at MaxCases.
func Enum[K ~uint8](cases int) FixedCodec[K] {
	return enumCodec[K]{cases: clampCases(cases)}
}

func (enumCodec[K]) Kind() Kind    { return KindEnum }
func (enumCodec[K]) ByteSize() int { return 1 }

func (c enumCodec[K]) FixFromValue(K) (FixedCodec[K], error) { return c, nil }

func (c enumCodec[K]) FixFromData(cur *Cursor) (FixedCodec[K], error) {
	if b, err := cur.Peek(1, KindEnum); err == nil && int(b[0]) >= c.cases {
		return nil, errors.InvalidDiscriminant(errors.PhaseFix, KindEnum.String(), cur.Offset(), int(b[0]), c.cases-1)
	}
	return fixSelf[K](c, cur)
}

func (c enumCodec[K]) Write(buf []byte, off int, v K) error {
	if int(v) >= c.cases {
		return errors.InvalidDiscriminant(errors.PhaseEncode, KindEnum.String(), off, int(v), c.cases-1)
	}
	if err := checkBounds(errors.PhaseEncode, KindEnum, buf, off, 1); err != nil {
		return err
	}
	buf[off] = byte(v)
	return nil
}

func (c enumCodec[K]) Read(buf []byte, off int) (K, error) {
	if err := checkBounds(errors.PhaseDecode, KindEnum, buf, off, 1); err != nil {
		return 0, err
	}
	if int(buf[off]) >= c.cases {
		return 0, errors.InvalidDiscriminant(errors.PhaseDecode, KindEnum.String(), off, int(buf[off]), c.cases-1)
	}
	return K(buf[off]), nil
}
