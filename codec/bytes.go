package codec

import (
	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

type byteArray struct {
	n      int
	prefix bool
}

// FixedBytes copies exactly n raw bytes with no prefix.
func FixedBytes(n int) FixedCodec[[]byte] {
	return byteArray{n: n}
}

// ByteArray encodes n raw bytes, optionally behind a u32 length prefix that
// is checked on read.
func ByteArray(n int, lenPrefix bool) FixedCodec[[]byte] {
	return byteArray{n: n, prefix: lenPrefix}
}

func (byteArray) Kind() Kind { return KindBytes }

func (c byteArray) ByteSize() int { return c.LengthPrefixByteSize() + c.n }

func (byteArray) ElementByteSize() int { return 1 }

func (c byteArray) ElementCount() int { return c.n }

func (c byteArray) LengthPrefixByteSize() int {
	if c.prefix {
		return wire.LengthPrefixSize
	}
	return 0
}

func (c byteArray) FixFromValue([]byte) (FixedCodec[[]byte], error) { return c, nil }

func (c byteArray) FixFromData(cur *Cursor) (FixedCodec[[]byte], error) {
	return fixSelf[[]byte](c, cur)
}

func (c byteArray) Write(buf []byte, off int, v []byte) error {
	if len(v) != c.n {
		return errors.ArityMismatch(errors.PhaseEncode, KindBytes.String(), len(v), c.n)
	}
	if err := checkBounds(errors.PhaseEncode, KindBytes, buf, off, c.ByteSize()); err != nil {
		return err
	}
	if c.prefix {
		putLength(buf, off, c.n)
	}
	copy(buf[off+c.LengthPrefixByteSize():], v)
	return nil
}

func (c byteArray) Read(buf []byte, off int) ([]byte, error) {
	if err := checkBounds(errors.PhaseDecode, KindBytes, buf, off, c.ByteSize()); err != nil {
		return nil, err
	}
	if c.prefix {
		if n := getLength(buf, off); n != c.n {
			return nil, errors.LengthMismatch(errors.PhaseDecode, KindBytes.String(), off, n, c.n)
		}
	}
	start := off + c.LengthPrefixByteSize()
	out := make([]byte, c.n)
	copy(out, buf[start:start+c.n])
	return out, nil
}

type bytesCodec struct{}

// Bytes is vec<u8> over a plain byte slice.
func Bytes() Codec[[]byte] {
	return bytesCodec{}
}

func (bytesCodec) Kind() Kind { return KindBytes }

func (bytesCodec) FixFromValue(v []byte) (FixedCodec[[]byte], error) {
	return ByteArray(len(v), true), nil
}

func (bytesCodec) FixFromData(cur *Cursor) (FixedCodec[[]byte], error) {
	at := cur.Offset()
	n, err := cur.ReadLength(KindBytes)
	if err != nil {
		return nil, err
	}
	if err := cur.checkByteLength(n, at, KindBytes); err != nil {
		return nil, err
	}
	if err := cur.Skip(n, KindBytes); err != nil {
		return nil, err
	}
	return ByteArray(n, true), nil
}
