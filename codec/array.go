package codec

import (
	"strconv"

	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

type uniformArray[T any] struct {
	elem   FixedCodec[T]
	n      int
	prefix bool
}

// Array encodes exactly n elements of one fixed element codec back to back,
// optionally behind a u32 count prefix.
func Array[T any](elem FixedCodec[T], n int, lenPrefix bool) FixedCodec[[]T] {
	return uniformArray[T]{elem: elem, n: n, prefix: lenPrefix}
}

func (c uniformArray[T]) Kind() Kind {
	if c.prefix {
		return KindVec
	}
	return KindArray
}

func (c uniformArray[T]) ByteSize() int {
	return c.LengthPrefixByteSize() + c.n*c.elem.ByteSize()
}

func (c uniformArray[T]) ElementByteSize() int { return c.elem.ByteSize() }

func (c uniformArray[T]) ElementCount() int { return c.n }

func (c uniformArray[T]) LengthPrefixByteSize() int {
	if c.prefix {
		return wire.LengthPrefixSize
	}
	return 0
}

func (c uniformArray[T]) FixFromValue([]T) (FixedCodec[[]T], error) { return c, nil }

func (c uniformArray[T]) FixFromData(cur *Cursor) (FixedCodec[[]T], error) {
	return fixSelf[[]T](c, cur)
}

func (c uniformArray[T]) Write(buf []byte, off int, v []T) error {
	if len(v) != c.n {
		return errors.ArityMismatch(errors.PhaseEncode, c.Kind().String(), len(v), c.n)
	}
	if err := checkBounds(errors.PhaseEncode, c.Kind(), buf, off, c.ByteSize()); err != nil {
		return err
	}
	if c.prefix {
		putLength(buf, off, c.n)
	}
	pos := off + c.LengthPrefixByteSize()
	size := c.elem.ByteSize()
	for i := range v {
		if err := c.elem.Write(buf, pos, v[i]); err != nil {
			return errors.WithPath(err, indexSegment(i))
		}
		pos += size
	}
	return nil
}

func (c uniformArray[T]) Read(buf []byte, off int) ([]T, error) {
	if err := checkBounds(errors.PhaseDecode, c.Kind(), buf, off, c.ByteSize()); err != nil {
		return nil, err
	}
	if c.prefix {
		if n := getLength(buf, off); n != c.n {
			return nil, errors.LengthMismatch(errors.PhaseDecode, c.Kind().String(), off, n, c.n)
		}
	}
	out := make([]T, c.n)
	pos := off + c.LengthPrefixByteSize()
	size := c.elem.ByteSize()
	for i := range out {
		v, err := c.elem.Read(buf, pos)
		if err != nil {
			return nil, errors.WithPath(err, indexSegment(i))
		}
		out[i] = v
		pos += size
	}
	return out, nil
}

type heteroArray[T any] struct {
	elems  []FixedCodec[T]
	size   int
	prefix bool
}

// HeterogeneousArray holds one resolved codec per element position. It is
// the result of fixing a vector whose elements differ in size.
func HeterogeneousArray[T any](elems []FixedCodec[T], lenPrefix bool) FixedCodec[[]T] {
	size := 0
	if lenPrefix {
		size = wire.LengthPrefixSize
	}
	for _, e := range elems {
		size += e.ByteSize()
	}
	return heteroArray[T]{elems: elems, size: size, prefix: lenPrefix}
}

func (c heteroArray[T]) Kind() Kind {
	if c.prefix {
		return KindVec
	}
	return KindArray
}

func (c heteroArray[T]) ByteSize() int { return c.size }

func (c heteroArray[T]) FixFromValue([]T) (FixedCodec[[]T], error) { return c, nil }

func (c heteroArray[T]) FixFromData(cur *Cursor) (FixedCodec[[]T], error) {
	return fixSelf[[]T](c, cur)
}

func (c heteroArray[T]) prefixSize() int {
	if c.prefix {
		return wire.LengthPrefixSize
	}
	return 0
}

func (c heteroArray[T]) Write(buf []byte, off int, v []T) error {
	if len(v) != len(c.elems) {
		return errors.ArityMismatch(errors.PhaseEncode, c.Kind().String(), len(v), len(c.elems))
	}
	if err := checkBounds(errors.PhaseEncode, c.Kind(), buf, off, c.size); err != nil {
		return err
	}
	if c.prefix {
		putLength(buf, off, len(c.elems))
	}
	pos := off + c.prefixSize()
	for i, e := range c.elems {
		if err := e.Write(buf, pos, v[i]); err != nil {
			return errors.WithPath(err, indexSegment(i))
		}
		pos += e.ByteSize()
	}
	return nil
}

func (c heteroArray[T]) Read(buf []byte, off int) ([]T, error) {
	if err := checkBounds(errors.PhaseDecode, c.Kind(), buf, off, c.size); err != nil {
		return nil, err
	}
	if c.prefix {
		if n := getLength(buf, off); n != len(c.elems) {
			return nil, errors.LengthMismatch(errors.PhaseDecode, c.Kind().String(), off, n, len(c.elems))
		}
	}
	out := make([]T, len(c.elems))
	pos := off + c.prefixSize()
	for i, e := range c.elems {
		v, err := e.Read(buf, pos)
		if err != nil {
			return nil, errors.WithPath(err, indexSegment(i))
		}
		out[i] = v
		pos += e.ByteSize()
	}
	return out, nil
}

type vecCodec[T any] struct {
	elem Codec[T]
}

// Vec is the u32-count-prefixed vector of elem. When elem is fixed the
// resolved codec is a uniform Array; otherwise each element is resolved on
// its own.
func Vec[T any](elem Codec[T]) Codec[[]T] {
	return vecCodec[T]{elem: elem}
}

func (vecCodec[T]) Kind() Kind { return KindVec }

func (c vecCodec[T]) FixFromValue(v []T) (FixedCodec[[]T], error) {
	if f, ok := AsFixed(c.elem); ok {
		return Array(f, len(v), true), nil
	}
	return fixElementsFromValue(c.elem, v, true)
}

func (c vecCodec[T]) FixFromData(cur *Cursor) (FixedCodec[[]T], error) {
	at := cur.Offset()
	n, err := cur.ReadLength(KindVec)
	if err != nil {
		return nil, err
	}
	if err := cur.checkVectorLength(n, at, KindVec); err != nil {
		return nil, err
	}
	if f, ok := AsFixed(c.elem); ok {
		if f.ByteSize() == 0 {
			if err := cur.checkZeroSized(n, at, KindVec); err != nil {
				return nil, err
			}
		}
		total, ok := wire.SafeMul(n, f.ByteSize())
		if !ok {
			return nil, errors.LimitExceeded(errors.PhaseFix, KindVec.String(), at, n, cur.Limits().MaxVectorLength)
		}
		if err := cur.Skip(total, KindVec); err != nil {
			return nil, err
		}
		return Array(f, n, true), nil
	}
	return fixElementsFromData(c.elem, cur, n, true)
}

type arrayOf[T any] struct {
	elem Codec[T]
	n    int
}

// ArrayOf is the unprefixed [T; n] array. It is fixed when elem is fixed.
func ArrayOf[T any](elem Codec[T], n int) Codec[[]T] {
	if f, ok := AsFixed(elem); ok {
		return Array(f, n, false)
	}
	return arrayOf[T]{elem: elem, n: n}
}

func (arrayOf[T]) Kind() Kind { return KindArray }

func (c arrayOf[T]) FixFromValue(v []T) (FixedCodec[[]T], error) {
	if len(v) != c.n {
		return nil, errors.ArityMismatch(errors.PhaseFix, KindArray.String(), len(v), c.n)
	}
	return fixElementsFromValue(c.elem, v, false)
}

func (c arrayOf[T]) FixFromData(cur *Cursor) (FixedCodec[[]T], error) {
	return fixElementsFromData(c.elem, cur, c.n, false)
}

func fixElementsFromValue[T any](elem Codec[T], v []T, prefix bool) (FixedCodec[[]T], error) {
	elems := make([]FixedCodec[T], len(v))
	for i := range v {
		f, err := elem.FixFromValue(v[i])
		if err != nil {
			return nil, errors.WithPath(err, indexSegment(i))
		}
		elems[i] = f
	}
	return HeterogeneousArray(elems, prefix), nil
}

func fixElementsFromData[T any](elem Codec[T], cur *Cursor, n int, prefix bool) (FixedCodec[[]T], error) {
	// n comes from the data; size the slice by what the buffer can hold.
	capHint := n
	if r := cur.Remaining(); capHint > r {
		capHint = r
	}
	elems := make([]FixedCodec[T], 0, capHint)
	for i := 0; i < n; i++ {
		at := cur.Offset()
		f, err := elem.FixFromData(cur)
		if err != nil {
			return nil, errors.WithPath(err, indexSegment(i))
		}
		if cur.Offset() == at {
			kind := KindArray
			if prefix {
				kind = KindVec
			}
			if err := cur.checkZeroSized(n-i, at, kind); err != nil {
				return nil, err
			}
		}
		elems = append(elems, f)
	}
	return HeterogeneousArray(elems, prefix), nil
}
