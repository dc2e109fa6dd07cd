package wire

import (
	"encoding/binary"
	"math"
	"math/big"
	"reflect"
)

// LengthPrefixSize is the width of the u32 count in front of strings and vectors.
const LengthPrefixSize = 4

const (
	MaxVectorLength = 1 << 24 // 16M elements
	MaxByteLength   = 1 << 30 // 1 GB strings and byte vectors
)

func SafeMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// InBounds reports whether size bytes starting at off fit in a buffer of length n.
func InBounds(n, off, size int) bool {
	return off >= 0 && size >= 0 && off <= n && size <= n-off
}

// PutUint stores the low size bytes of u little-endian. size is 1, 2, 4 or 8.
func PutUint(buf []byte, off, size int, u uint64) {
	switch size {
	case 1:
		buf[off] = byte(u)
	case 2:
		binary.LittleEndian.PutUint16(buf[off:], uint16(u))
	case 4:
		binary.LittleEndian.PutUint32(buf[off:], uint32(u))
	default:
		binary.LittleEndian.PutUint64(buf[off:], u)
	}
}

// Uint loads size bytes little-endian. size is 1, 2, 4 or 8.
func Uint(buf []byte, off, size int) uint64 {
	switch size {
	case 1:
		return uint64(buf[off])
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[off:]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[off:]))
	default:
		return binary.LittleEndian.Uint64(buf[off:])
	}
}

// BigFits reports whether v is representable in size bytes.
func BigFits(v *big.Int, size int, signed bool) bool {
	bits := size * 8
	if !signed {
		return v.Sign() >= 0 && v.BitLen() <= bits
	}
	if v.Sign() >= 0 {
		return v.BitLen() < bits
	}
	// -2^(bits-1) is the only negative value whose magnitude needs bits bits.
	abs := new(big.Int).Neg(v)
	if abs.BitLen() < bits {
		return true
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	return abs.Cmp(limit) == 0
}

// PutBig stores v as size bytes of little-endian two's complement.
// The caller checks BigFits first.
func PutBig(buf []byte, off, size int, v *big.Int) {
	x := v
	if v.Sign() < 0 {
		x = new(big.Int).Lsh(big.NewInt(1), uint(size*8))
		x.Add(x, v)
	}
	be := make([]byte, size)
	x.FillBytes(be)
	for i := 0; i < size; i++ {
		buf[off+i] = be[size-1-i]
	}
}

// Big loads size bytes of little-endian two's complement.
func Big(buf []byte, off, size int, signed bool) *big.Int {
	be := make([]byte, size)
	for i := 0; i < size; i++ {
		be[i] = buf[off+size-1-i]
	}
	x := new(big.Int).SetBytes(be)
	if signed && size > 0 && be[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(size*8)))
	}
	return x
}
