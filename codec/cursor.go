package codec

import (
	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

// Safety limits applied while resolving codecs from untrusted bytes.
const (
	MaxVectorLength = wire.MaxVectorLength
	MaxByteLength   = wire.MaxByteLength
)

// Limits bounds the lengths accepted from length prefixes.
type Limits struct {
	// MaxVectorLength caps the element count of vectors.
	MaxVectorLength int
	// MaxByteLength caps the byte length of strings and byte vectors.
	MaxByteLength int
}

// DefaultLimits is used by NewCursor.
var DefaultLimits = Limits{
	MaxVectorLength: MaxVectorLength,
	MaxByteLength:   MaxByteLength,
}

// Cursor is a read position within a buffer. It is threaded through every
// FixFromData call; all bounds checks on the resolution path go through it.
type Cursor struct {
	buf    []byte
	off    int
	limits Limits
}

func NewCursor(buf []byte, off int) *Cursor {
	return &Cursor{buf: buf, off: off, limits: DefaultLimits}
}

func NewCursorWithLimits(buf []byte, off int, limits Limits) *Cursor {
	if limits.MaxVectorLength <= 0 {
		limits.MaxVectorLength = MaxVectorLength
	}
	if limits.MaxByteLength <= 0 {
		limits.MaxByteLength = MaxByteLength
	}
	return &Cursor{buf: buf, off: off, limits: limits}
}

func (c *Cursor) Buffer() []byte { return c.buf }

func (c *Cursor) Offset() int { return c.off }

func (c *Cursor) Limits() Limits { return c.limits }

// Remaining returns the number of bytes after the cursor.
func (c *Cursor) Remaining() int {
	if c.off < 0 || c.off > len(c.buf) {
		return 0
	}
	return len(c.buf) - c.off
}

func (c *Cursor) need(n int, kind Kind) error {
	if !wire.InBounds(len(c.buf), c.off, n) {
		return errors.OutOfBounds(errors.PhaseFix, kind.String(), c.off, n, len(c.buf))
	}
	return nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int, kind Kind) error {
	if err := c.need(n, kind); err != nil {
		return err
	}
	c.off += n
	return nil
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int, kind Kind) ([]byte, error) {
	if err := c.need(n, kind); err != nil {
		return nil, err
	}
	return c.buf[c.off : c.off+n], nil
}

// ReadTag reads a one-byte tag or discriminant.
func (c *Cursor) ReadTag(kind Kind) (byte, error) {
	if err := c.need(1, kind); err != nil {
		return 0, err
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// ReadLength reads a u32 length prefix.
func (c *Cursor) ReadLength(kind Kind) (int, error) {
	if err := c.need(wire.LengthPrefixSize, kind); err != nil {
		return 0, err
	}
	n := int(wire.Uint(c.buf, c.off, wire.LengthPrefixSize))
	c.off += wire.LengthPrefixSize
	return n, nil
}

func (c *Cursor) checkVectorLength(n, at int, kind Kind) error {
	if n > c.limits.MaxVectorLength {
		return errors.LimitExceeded(errors.PhaseFix, kind.String(), at, n, c.limits.MaxVectorLength)
	}
	return nil
}

// checkZeroSized caps the count of elements that occupy no bytes at the
// bytes left, so a length prefix alone cannot drive an unbounded loop.
func (c *Cursor) checkZeroSized(n, at int, kind Kind) error {
	if r := c.Remaining(); n > r {
		return errors.New(errors.PhaseFix, errors.KindLimitExceeded).
			Codec(kind.String()).
			Offset(at).
			Value(n).
			Detail("%d zero-sized elements exceed the %d bytes left", n, r).
			Build()
	}
	return nil
}

func (c *Cursor) checkByteLength(n, at int, kind Kind) error {
	if n > c.limits.MaxByteLength {
		return errors.LimitExceeded(errors.PhaseFix, kind.String(), at, n, c.limits.MaxByteLength)
	}
	return nil
}

// checkBounds guards Read and Write on fixed codecs.
func checkBounds(phase errors.Phase, kind Kind, buf []byte, off, size int) error {
	if !wire.InBounds(len(buf), off, size) {
		return errors.OutOfBounds(phase, kind.String(), off, size, len(buf))
	}
	return nil
}

func putLength(buf []byte, off, n int) {
	wire.PutUint(buf, off, wire.LengthPrefixSize, uint64(n))
}

func getLength(buf []byte, off int) int {
	return int(wire.Uint(buf, off, wire.LengthPrefixSize))
}
