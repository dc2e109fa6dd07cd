package guestmem

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Memory is a view of guest linear memory. wazero's api.Memory satisfies it.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	Size() uint32
}

// Allocator reserves regions of guest memory.
type Allocator interface {
	Alloc(ctx context.Context, size, align uint32) (uint32, error)
	Free(ctx context.Context, ptr, size, align uint32)
}

// Encode writes v at off and returns the number of bytes written.
func Encode[T any](mem Memory, off uint32, c codec.Codec[T], v T) (uint32, error) {
	data, size, err := codec.Serialize(c, v)
	if err != nil {
		return 0, err
	}
	if uint64(size) > math.MaxUint32 {
		return 0, errors.LimitExceeded(errors.PhaseEncode, c.Kind().String(), int(off), size, math.MaxUint32)
	}
	if !mem.Write(off, data) {
		return 0, errors.OutOfBounds(errors.PhaseEncode, c.Kind().String(), int(off), size, int(mem.Size()))
	}
	return uint32(size), nil
}

// Decode reads a value starting at off. The value may extend to the end of
// memory; the number of bytes it occupied is returned.
func Decode[T any](mem Memory, off uint32, c codec.Codec[T]) (T, uint32, error) {
	var zero T
	size := mem.Size()
	if off > size {
		return zero, 0, errors.OutOfBounds(errors.PhaseDecode, c.Kind().String(), int(off), 0, int(size))
	}
	view, ok := mem.Read(off, size-off)
	if !ok {
		return zero, 0, errors.OutOfBounds(errors.PhaseDecode, c.Kind().String(), int(off), int(size-off), int(size))
	}
	v, n, err := codec.Deserialize(c, view, 0)
	if err != nil {
		return zero, 0, err
	}
	return v, uint32(n), nil
}

// Lift reads a value that must occupy exactly [ptr, ptr+length).
func Lift[T any](mem Memory, ptr, length uint32, c codec.Codec[T]) (T, error) {
	var zero T
	view, ok := mem.Read(ptr, length)
	if !ok {
		return zero, errors.OutOfBounds(errors.PhaseDecode, c.Kind().String(), int(ptr), int(length), int(mem.Size()))
	}
	v, n, err := codec.Deserialize(c, view, 0)
	if err != nil {
		return zero, err
	}
	if uint32(n) != length {
		return zero, errors.LengthMismatch(errors.PhaseDecode, c.Kind().String(), int(ptr), n, int(length))
	}
	return v, nil
}

// Lower allocates exactly the resolved size of v in guest memory and encodes
// v there. The caller owns the returned region.
func Lower[T any](ctx context.Context, mem Memory, alloc Allocator, c codec.Codec[T], v T) (ptr, size uint32, err error) {
	data, n, err := codec.Serialize(c, v)
	if err != nil {
		return 0, 0, err
	}
	if uint64(n) > math.MaxUint32 {
		return 0, 0, errors.LimitExceeded(errors.PhaseEncode, c.Kind().String(), 0, n, math.MaxUint32)
	}
	size = uint32(n)

	ptr, err = alloc.Alloc(ctx, size, 1)
	if err != nil {
		return 0, 0, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Codec(c.Kind().String()).
			Detail("guest allocation of %d bytes failed", size).
			Cause(err).
			Build()
	}
	if !mem.Write(ptr, data) {
		alloc.Free(ctx, ptr, size, 1)
		return 0, 0, errors.OutOfBounds(errors.PhaseEncode, c.Kind().String(), int(ptr), n, int(mem.Size()))
	}

	Logger().Debug("lowered value",
		zap.String("codec", c.Kind().String()),
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", size))
	return ptr, size, nil
}
