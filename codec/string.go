package codec

import (
	"unicode/utf8"

	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

type fixedString struct {
	n int
}

// FixedString encodes a UTF-8 string of exactly n bytes behind a u32 length
// prefix.
func FixedString(n int) FixedCodec[string] {
	return fixedString{n: n}
}

func (fixedString) Kind() Kind      { return KindString }
func (c fixedString) ByteSize() int { return wire.LengthPrefixSize + c.n }

func (c fixedString) FixFromValue(string) (FixedCodec[string], error) { return c, nil }

func (c fixedString) FixFromData(cur *Cursor) (FixedCodec[string], error) {
	return fixSelf[string](c, cur)
}

func (c fixedString) Write(buf []byte, off int, v string) error {
	if len(v) != c.n {
		return errors.ArityMismatch(errors.PhaseEncode, KindString.String(), len(v), c.n)
	}
	if err := checkBounds(errors.PhaseEncode, KindString, buf, off, c.ByteSize()); err != nil {
		return err
	}
	putLength(buf, off, c.n)
	copy(buf[off+wire.LengthPrefixSize:], v)
	return nil
}

func (c fixedString) Read(buf []byte, off int) (string, error) {
	if err := checkBounds(errors.PhaseDecode, KindString, buf, off, c.ByteSize()); err != nil {
		return "", err
	}
	if n := getLength(buf, off); n != c.n {
		return "", errors.LengthMismatch(errors.PhaseDecode, KindString.String(), off, n, c.n)
	}
	data := buf[off+wire.LengthPrefixSize : off+c.ByteSize()]
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, off+wire.LengthPrefixSize, data)
	}
	return string(data), nil
}

type stringCodec struct{}

// String is the length-prefixed UTF-8 string codec. It resolves to a
// FixedString of the value's (or the prefix's) byte length.
func String() Codec[string] {
	return stringCodec{}
}

func (stringCodec) Kind() Kind { return KindString }

func (stringCodec) FixFromValue(v string) (FixedCodec[string], error) {
	if !utf8.ValidString(v) {
		return nil, errors.InvalidUTF8(errors.PhaseFix, errors.NoOffset, []byte(v))
	}
	return FixedString(len(v)), nil
}

func (stringCodec) FixFromData(cur *Cursor) (FixedCodec[string], error) {
	at := cur.Offset()
	n, err := cur.ReadLength(KindString)
	if err != nil {
		return nil, err
	}
	if err := cur.checkByteLength(n, at, KindString); err != nil {
		return nil, err
	}
	if err := cur.Skip(n, KindString); err != nil {
		return nil, err
	}
	return FixedString(n), nil
}
