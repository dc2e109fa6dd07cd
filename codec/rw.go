package codec

import (
	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

// Writer writes values sequentially into a preallocated region. It never
// grows the buffer.
type Writer struct {
	buf []byte
	off int
	end int
}

// NewWriter writes into buf starting at 0.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf, end: len(buf)}
}

// newRegionWriter limits writes to buf[off:off+size].
func newRegionWriter(buf []byte, off, size int) *Writer {
	return &Writer{buf: buf, off: off, end: off + size}
}

// Offset returns the position of the next write.
func (w *Writer) Offset() int { return w.off }

// Bytes returns the written prefix of the region.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

// WriteValue writes v with c at the writer's offset and advances by
// c.ByteSize().
func WriteValue[T any](w *Writer, c FixedCodec[T], v T) error {
	size := c.ByteSize()
	if !wire.InBounds(w.end, w.off, size) {
		return errors.OutOfBounds(errors.PhaseEncode, c.Kind().String(), w.off, size, w.end)
	}
	if err := c.Write(w.buf, w.off, v); err != nil {
		return err
	}
	w.off += size
	return nil
}

// Reader reads values sequentially from a buffer.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte, off int) *Reader {
	return &Reader{buf: buf, off: off}
}

func (r *Reader) Offset() int { return r.off }

// ReadValue reads a value with c at the reader's offset and advances by
// c.ByteSize().
func ReadValue[T any](r *Reader, c FixedCodec[T]) (T, error) {
	v, err := c.Read(r.buf, r.off)
	if err != nil {
		return v, err
	}
	r.off += c.ByteSize()
	return v, nil
}
