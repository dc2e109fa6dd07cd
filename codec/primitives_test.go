package codec

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/borsh/errors"
)

var bigComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

// roundTrip fixes c against v, writes it at several offsets, fixes again from
// the written bytes and reads it back.
func roundTrip[T any](t *testing.T, c Codec[T], v T) {
	t.Helper()
	f, err := c.FixFromValue(v)
	if err != nil {
		t.Fatalf("FixFromValue: %v", err)
	}
	cases := []struct {
		name  string
		off   int
		slack int
	}{
		{"offset_0", 0, 0},
		{"small_offset", 3, 0},
		{"offset_with_slack", 5, 7},
	}
	for _, tc := range cases {
		buf := make([]byte, tc.off+f.ByteSize()+tc.slack)
		for i := range buf {
			buf[i] = 0xEE
		}
		if err := f.Write(buf, tc.off, v); err != nil {
			t.Fatalf("%s: Write: %v", tc.name, err)
		}
		cur := NewCursor(buf, tc.off)
		fd, err := c.FixFromData(cur)
		if err != nil {
			t.Fatalf("%s: FixFromData: %v", tc.name, err)
		}
		if fd.ByteSize() != f.ByteSize() {
			t.Errorf("%s: ByteSize from data = %d, from value = %d", tc.name, fd.ByteSize(), f.ByteSize())
		}
		if cur.Offset() != tc.off+f.ByteSize() {
			t.Errorf("%s: cursor at %d, want %d", tc.name, cur.Offset(), tc.off+f.ByteSize())
		}
		got, err := fd.Read(buf, tc.off)
		if err != nil {
			t.Fatalf("%s: Read: %v", tc.name, err)
		}
		if diff := cmp.Diff(v, got, bigComparer); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", tc.name, diff)
		}
		for i := tc.off + f.ByteSize(); i < len(buf); i++ {
			if buf[i] != 0xEE {
				t.Errorf("%s: byte %d past the value was overwritten", tc.name, i)
				break
			}
		}
	}
}

// encode serializes v and compares against want.
func encode[T any](t *testing.T, c Codec[T], v T, want []byte) {
	t.Helper()
	got, n, err := Serialize(c, v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if n != len(want) {
		t.Errorf("Serialize wrote %d bytes, want %d", n, len(want))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Serialize = %x, want %x", got, want)
	}
}

func wantKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Errorf("error kind = %s, want %s (%v)", e.Kind, kind, err)
	}
}

func TestU32MaxValue(t *testing.T) {
	encode[uint32](t, U32, 4294967295, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	roundTrip[uint32](t, U32, 4294967295)
}

func TestIntegers(t *testing.T) {
	t.Run("u8", func(t *testing.T) { roundTrip[uint8](t, U8, 0xAB) })
	t.Run("u16", func(t *testing.T) { roundTrip[uint16](t, U16, 0xBEEF) })
	t.Run("u64", func(t *testing.T) { roundTrip[uint64](t, U64, math.MaxUint64) })
	t.Run("i8", func(t *testing.T) { roundTrip[int8](t, I8, math.MinInt8) })
	t.Run("i16", func(t *testing.T) { roundTrip[int16](t, I16, -2) })
	t.Run("i32", func(t *testing.T) { roundTrip[int32](t, I32, math.MinInt32) })
	t.Run("i64", func(t *testing.T) { roundTrip[int64](t, I64, math.MaxInt64) })
}

func TestIntegerEncoding(t *testing.T) {
	tests := []struct {
		name string
		got  func() ([]byte, int, error)
		want []byte
	}{
		{"u16_le", func() ([]byte, int, error) { return Serialize[uint16](U16, 0x0102) }, []byte{0x02, 0x01}},
		{"i16_minus_one", func() ([]byte, int, error) { return Serialize[int16](I16, -1) }, []byte{0xFF, 0xFF}},
		{"i32_minus_two", func() ([]byte, int, error) { return Serialize[int32](I32, -2) }, []byte{0xFE, 0xFF, 0xFF, 0xFF}},
		{"u64_one", func() ([]byte, int, error) { return Serialize[uint64](U64, 1) }, []byte{1, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _, err := tc.got()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("got %x, want %x", got, tc.want)
			}
		})
	}
}

func TestWideIntegers(t *testing.T) {
	pow := func(n uint) *big.Int { return new(big.Int).Lsh(big.NewInt(1), n) }
	maxU := func(bits uint) *big.Int { return new(big.Int).Sub(pow(bits), big.NewInt(1)) }
	minI := func(bits uint) *big.Int { return new(big.Int).Neg(pow(bits - 1)) }

	tests := []struct {
		name  string
		codec FixedCodec[*big.Int]
		value *big.Int
	}{
		{"u128_zero", U128, big.NewInt(0)},
		{"u128_max", U128, maxU(128)},
		{"u256_max", U256, maxU(256)},
		{"u512_mid", U512, pow(300)},
		{"i128_min", I128, minI(128)},
		{"i128_minus_one", I128, big.NewInt(-1)},
		{"i256_max", I256, maxU(255)},
		{"i512_min", I512, minI(512)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roundTrip[*big.Int](t, tc.codec, tc.value)
		})
	}

	t.Run("i128_minus_one_bytes", func(t *testing.T) {
		want := bytes.Repeat([]byte{0xFF}, 16)
		encode[*big.Int](t, I128, big.NewInt(-1), want)
	})

	t.Run("overflow", func(t *testing.T) {
		overflows := []struct {
			name  string
			codec FixedCodec[*big.Int]
			value *big.Int
		}{
			{"u128_negative", U128, big.NewInt(-1)},
			{"u128_too_wide", U128, pow(128)},
			{"i128_too_wide", I128, pow(127)},
			{"i128_too_small", I128, new(big.Int).Sub(minI(128), big.NewInt(1))},
		}
		for _, tc := range overflows {
			buf := make([]byte, tc.codec.ByteSize())
			wantKind(t, tc.codec.Write(buf, 0, tc.value), errors.KindOverflow)
		}
	})

	t.Run("nil", func(t *testing.T) {
		buf := make([]byte, 16)
		wantKind(t, U128.Write(buf, 0, nil), errors.KindNilPointer)
	})
}

func TestBool(t *testing.T) {
	encode[bool](t, Bool, true, []byte{1})
	encode[bool](t, Bool, false, []byte{0})
	roundTrip[bool](t, Bool, true)

	v, err := Bool.Read([]byte{7}, 0)
	if err != nil || !v {
		t.Errorf("Read(7) = %v, %v; want true", v, err)
	}
}

func TestFloats(t *testing.T) {
	roundTrip[float32](t, F32, 1.5)
	roundTrip[float64](t, F64, -math.Pi)
	encode[float32](t, F32, 1.0, []byte{0x00, 0x00, 0x80, 0x3F})
}

func TestUnit(t *testing.T) {
	if Unit.ByteSize() != 0 {
		t.Errorf("Unit.ByteSize() = %d", Unit.ByteSize())
	}
	roundTrip[Empty](t, Unit, Empty{})
}

func TestPrimitiveBounds(t *testing.T) {
	buf := make([]byte, 3)
	wantKind(t, U32.Write(buf, 0, 1), errors.KindOutOfBounds)
	_, err := U32.Read(buf, 0)
	wantKind(t, err, errors.KindOutOfBounds)
	_, err = U8.Read(buf, -1)
	wantKind(t, err, errors.KindOutOfBounds)
	_, err = U64.FixFromData(NewCursor(buf, 0))
	wantKind(t, err, errors.KindOutOfBounds)

	e := U32.Write(buf, 0, 1).(*errors.Error)
	if e.Kind.Class() != errors.ClassCapacity {
		t.Errorf("class = %s, want capacity", e.Kind.Class())
	}
	if e.Phase != errors.PhaseEncode {
		t.Errorf("phase = %s, want encode", e.Phase)
	}
}

func TestFixingFixedIsIdentity(t *testing.T) {
	f, err := U16.FixFromValue(7)
	if err != nil {
		t.Fatal(err)
	}
	if f != U16 {
		t.Error("FixFromValue on a fixed codec should return the codec itself")
	}
	if !IsFixed[uint16](U16) {
		t.Error("U16 should be fixed")
	}
	if IsFixed[string](String()) {
		t.Error("String() should not be fixed")
	}
}
