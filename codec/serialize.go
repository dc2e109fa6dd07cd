package codec

import (
	"go.uber.org/zap"
)

// FixFromValue resolves c for encoding v.
func FixFromValue[T any](c Codec[T], v T) (FixedCodec[T], error) {
	return c.FixFromValue(v)
}

// FixFromData resolves c against the value encoded at buf[off:].
func FixFromData[T any](c Codec[T], buf []byte, off int) (FixedCodec[T], error) {
	return c.FixFromData(NewCursor(buf, off))
}

// ByteSize returns the number of bytes v occupies when encoded with c.
func ByteSize[T any](c Codec[T], v T) (int, error) {
	f, err := c.FixFromValue(v)
	if err != nil {
		return 0, err
	}
	return f.ByteSize(), nil
}

// Serialize encodes v into a new buffer of exactly the resolved size.
// On failure no buffer is returned.
func Serialize[T any](c Codec[T], v T) ([]byte, int, error) {
	f, err := c.FixFromValue(v)
	if err != nil {
		Logger().Debug("serialize: fix from value failed",
			zap.String("codec", c.Kind().String()),
			zap.Error(err))
		return nil, 0, err
	}
	buf := make([]byte, f.ByteSize())
	if err := f.Write(buf, 0, v); err != nil {
		Logger().Debug("serialize: write failed",
			zap.String("codec", f.Kind().String()),
			zap.Int("size", f.ByteSize()),
			zap.Error(err))
		return nil, 0, err
	}
	return buf, len(buf), nil
}

// SerializeInto encodes v into buf at off and returns the offset after it.
// buf must already have room for the value.
func SerializeInto[T any](c Codec[T], buf []byte, off int, v T) (int, error) {
	f, err := c.FixFromValue(v)
	if err != nil {
		return off, err
	}
	if err := f.Write(buf, off, v); err != nil {
		Logger().Debug("serialize: write failed",
			zap.String("codec", f.Kind().String()),
			zap.Int("offset", off),
			zap.Int("size", f.ByteSize()),
			zap.Error(err))
		return off, err
	}
	return off + f.ByteSize(), nil
}

// Deserialize decodes one value at buf[off:] and returns it with the offset
// after it.
func Deserialize[T any](c Codec[T], buf []byte, off int) (T, int, error) {
	return DeserializeWithLimits(c, buf, off, DefaultLimits)
}

// DeserializeWithLimits is Deserialize with explicit length limits for
// untrusted input.
func DeserializeWithLimits[T any](c Codec[T], buf []byte, off int, limits Limits) (T, int, error) {
	var zero T
	f, err := c.FixFromData(NewCursorWithLimits(buf, off, limits))
	if err != nil {
		Logger().Debug("deserialize: fix from data failed",
			zap.String("codec", c.Kind().String()),
			zap.Int("offset", off),
			zap.Error(err))
		return zero, off, err
	}
	v, err := f.Read(buf, off)
	if err != nil {
		Logger().Debug("deserialize: read failed",
			zap.String("codec", f.Kind().String()),
			zap.Int("offset", off),
			zap.Error(err))
		return zero, off, err
	}
	return v, off + f.ByteSize(), nil
}
