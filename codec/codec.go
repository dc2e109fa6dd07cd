package codec

// Codec is either a FixedCodec or a codec whose byte size depends on the
// value being encoded or the bytes being decoded. Every codec can be resolved
// ("fixed") against a value or against raw bytes; fixing a FixedCodec
// returns the codec itself.
type Codec[T any] interface {
	Kind() Kind

	// FixFromValue resolves the codec for encoding v. The returned codec's
	// ByteSize is exactly the number of bytes v occupies on the wire.
	FixFromValue(v T) (FixedCodec[T], error)

	// FixFromData resolves the codec against the bytes at the cursor and
	// advances the cursor past the value.
	FixFromData(c *Cursor) (FixedCodec[T], error)
}

// FixedCodec is a codec whose encoded size is a constant.
type FixedCodec[T any] interface {
	Codec[T]

	ByteSize() int
	Write(buf []byte, off int, v T) error
	Read(buf []byte, off int) (T, error)
}

// ElementCodec is implemented by array-like fixed codecs.
type ElementCodec interface {
	ElementByteSize() int
	ElementCount() int
	LengthPrefixByteSize() int
}

// AsFixed returns c as a FixedCodec when its size does not depend on the value.
func AsFixed[T any](c Codec[T]) (FixedCodec[T], bool) {
	f, ok := c.(FixedCodec[T])
	return f, ok
}

// IsFixed reports whether c has a constant byte size.
func IsFixed[T any](c Codec[T]) bool {
	_, ok := c.(FixedCodec[T])
	return ok
}

// fixSelf implements FixFromData for fixed codecs: the value occupies
// ByteSize bytes regardless of content.
func fixSelf[T any](f FixedCodec[T], c *Cursor) (FixedCodec[T], error) {
	if err := c.Skip(f.ByteSize(), f.Kind()); err != nil {
		return nil, err
	}
	return f, nil
}
