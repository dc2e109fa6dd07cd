package codec

import (
	"bytes"
	"testing"

	"github.com/wippyai/borsh/errors"
)

func TestFixedString(t *testing.T) {
	c := FixedString(4)
	encode[string](t, c, "abcd", []byte{0x04, 0x00, 0x00, 0x00, 'a', 'b', 'c', 'd'})
	roundTrip[string](t, c, "abcd")

	if c.ByteSize() != 8 {
		t.Errorf("ByteSize = %d, want 8", c.ByteSize())
	}

	t.Run("wrong_length", func(t *testing.T) {
		buf := make([]byte, 8)
		wantKind(t, c.Write(buf, 0, "abc"), errors.KindArityMismatch)
	})

	t.Run("prefix_mismatch", func(t *testing.T) {
		buf := []byte{0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c', 'd'}
		_, err := c.Read(buf, 0)
		wantKind(t, err, errors.KindLengthMismatch)
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		buf := []byte{0x04, 0x00, 0x00, 0x00, 0xFF, 0xFE, 'c', 'd'}
		_, err := c.Read(buf, 0)
		wantKind(t, err, errors.KindInvalidUTF8)
	})
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"ascii", "hello"},
		{"multibyte", "héllo, 世界"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roundTrip(t, String(), tc.value)
			n, err := ByteSize(String(), tc.value)
			if err != nil {
				t.Fatal(err)
			}
			if n != 4+len(tc.value) {
				t.Errorf("ByteSize = %d, want %d", n, 4+len(tc.value))
			}
		})
	}

	t.Run("empty_is_prefix_only", func(t *testing.T) {
		encode(t, String(), "", []byte{0, 0, 0, 0})
	})

	t.Run("invalid_utf8_value", func(t *testing.T) {
		_, err := String().FixFromValue(string([]byte{0xC3}))
		wantKind(t, err, errors.KindInvalidUTF8)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := String().FixFromData(NewCursor([]byte{0x05, 0, 0, 0, 'a'}, 0))
		wantKind(t, err, errors.KindOutOfBounds)
	})

	t.Run("limit", func(t *testing.T) {
		buf := []byte{0x05, 0, 0, 0, 'a', 'b', 'c', 'd', 'e'}
		cur := NewCursorWithLimits(buf, 0, Limits{MaxByteLength: 4})
		_, err := String().FixFromData(cur)
		wantKind(t, err, errors.KindLimitExceeded)
	})
}

func TestByteCodecs(t *testing.T) {
	t.Run("fixed_bytes", func(t *testing.T) {
		c := FixedBytes(3)
		encode[[]byte](t, c, []byte{1, 2, 3}, []byte{1, 2, 3})
		roundTrip[[]byte](t, c, []byte{9, 8, 7})
		wantKind(t, c.Write(make([]byte, 3), 0, []byte{1}), errors.KindArityMismatch)
	})

	t.Run("byte_array_prefixed", func(t *testing.T) {
		c := ByteArray(2, true)
		encode[[]byte](t, c, []byte{0xAA, 0xBB}, []byte{2, 0, 0, 0, 0xAA, 0xBB})
		_, err := c.Read([]byte{3, 0, 0, 0, 0xAA, 0xBB}, 0)
		wantKind(t, err, errors.KindLengthMismatch)

		ec, ok := c.(ElementCodec)
		if !ok {
			t.Fatal("ByteArray should implement ElementCodec")
		}
		if ec.ElementByteSize() != 1 || ec.ElementCount() != 2 || ec.LengthPrefixByteSize() != 4 {
			t.Errorf("element info = %d/%d/%d", ec.ElementByteSize(), ec.ElementCount(), ec.LengthPrefixByteSize())
		}
	})

	t.Run("bytes", func(t *testing.T) {
		encode(t, Bytes(), []byte{1, 2, 3}, []byte{3, 0, 0, 0, 1, 2, 3})
		roundTrip(t, Bytes(), []byte{})
		roundTrip(t, Bytes(), bytes.Repeat([]byte{0x5A}, 300))
	})

	t.Run("read_copies", func(t *testing.T) {
		buf := []byte{1, 2, 3}
		got, err := FixedBytes(3).Read(buf, 0)
		if err != nil {
			t.Fatal(err)
		}
		buf[0] = 0xFF
		if got[0] != 1 {
			t.Error("Read should not alias the input buffer")
		}
	})
}

func TestVecOfU8(t *testing.T) {
	c := Vec[uint8](U8)
	encode(t, c, []uint8{1, 2, 3}, []byte{0x03, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03})
	roundTrip(t, c, []uint8{1, 2, 3})

	t.Run("empty_is_prefix_only", func(t *testing.T) {
		encode(t, c, []uint8{}, []byte{0, 0, 0, 0})
		roundTrip(t, c, []uint8{})
	})

	t.Run("resolves_to_uniform_array", func(t *testing.T) {
		f, err := c.FixFromValue([]uint8{1, 2, 3, 4})
		if err != nil {
			t.Fatal(err)
		}
		ec, ok := f.(ElementCodec)
		if !ok {
			t.Fatalf("fixed vec of u8 is %T, want an ElementCodec", f)
		}
		if ec.ElementCount() != 4 || ec.ElementByteSize() != 1 || ec.LengthPrefixByteSize() != 4 {
			t.Errorf("element info = %d/%d/%d", ec.ElementCount(), ec.ElementByteSize(), ec.LengthPrefixByteSize())
		}
	})
}

func TestVecOfStrings(t *testing.T) {
	c := Vec(String())
	v := []string{"a", "", "abc"}
	want := []byte{
		3, 0, 0, 0,
		1, 0, 0, 0, 'a',
		0, 0, 0, 0,
		3, 0, 0, 0, 'a', 'b', 'c',
	}
	encode(t, c, v, want)
	roundTrip(t, c, v)

	f, err := c.FixFromValue(v)
	if err != nil {
		t.Fatal(err)
	}
	if f.ByteSize() != len(want) {
		t.Errorf("ByteSize = %d, want %d", f.ByteSize(), len(want))
	}

	t.Run("nested", func(t *testing.T) {
		nested := Vec(Vec(String()))
		roundTrip(t, nested, [][]string{{"x"}, {}, {"yy", "zzz"}})
	})

	t.Run("element_error_path", func(t *testing.T) {
		_, err := c.FixFromValue([]string{"ok", string([]byte{0xFF})})
		wantKind(t, err, errors.KindInvalidUTF8)
		if e := err.(*errors.Error); len(e.Path) != 1 || e.Path[0] != "[1]" {
			t.Errorf("path = %v, want [[1]]", e.Path)
		}
	})
}

func TestVecLimits(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0x7F}
	_, err := Vec[uint64](U64).FixFromData(NewCursor(buf, 0))
	wantKind(t, err, errors.KindLimitExceeded)

	small := NewCursorWithLimits([]byte{3, 0, 0, 0, 1, 2, 3}, 0, Limits{MaxVectorLength: 2})
	_, err = Vec[uint8](U8).FixFromData(small)
	wantKind(t, err, errors.KindLimitExceeded)

	// count claims more elements than the buffer holds
	_, err = Vec(String()).FixFromData(NewCursor([]byte{10, 0, 0, 0, 0, 0, 0, 0}, 0))
	wantKind(t, err, errors.KindOutOfBounds)
}

func TestVecZeroSizedElements(t *testing.T) {
	empty := Vec(ArrayOf(String(), 0))

	_, _, err := Deserialize(empty, []byte{0xFF, 0xFF, 0xFF, 0x00}, 0)
	wantKind(t, err, errors.KindLimitExceeded)

	_, _, err = Deserialize[[]Empty](Vec[Empty](Unit), []byte{0xFF, 0xFF, 0xFF, 0x00}, 0)
	wantKind(t, err, errors.KindLimitExceeded)

	// counts up to the bytes left still decode
	got, n, err := Deserialize(empty, []byte{2, 0, 0, 0, 9, 9}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || n != 4 {
		t.Errorf("got %d elements over %d bytes, want 2 over 4", len(got), n)
	}
}

func TestArray(t *testing.T) {
	t.Run("unprefixed", func(t *testing.T) {
		c := Array[uint16](U16, 2, false)
		encode[[]uint16](t, c, []uint16{1, 2}, []byte{1, 0, 2, 0})
		if c.Kind() != KindArray {
			t.Errorf("Kind = %s", c.Kind())
		}
		wantKind(t, c.Write(make([]byte, 4), 0, []uint16{1}), errors.KindArityMismatch)
	})

	t.Run("prefixed", func(t *testing.T) {
		c := Array[uint16](U16, 2, true)
		encode[[]uint16](t, c, []uint16{1, 2}, []byte{2, 0, 0, 0, 1, 0, 2, 0})
		if c.ByteSize() != 8 {
			t.Errorf("ByteSize = %d", c.ByteSize())
		}
		_, err := c.Read([]byte{1, 0, 0, 0, 1, 0, 2, 0}, 0)
		wantKind(t, err, errors.KindLengthMismatch)
	})

	t.Run("array_of_fixed", func(t *testing.T) {
		c := ArrayOf[uint32](U32, 3)
		if !IsFixed(c) {
			t.Error("ArrayOf a fixed element should be fixed")
		}
		roundTrip(t, c, []uint32{1, 2, 3})
	})

	t.Run("array_of_strings", func(t *testing.T) {
		c := ArrayOf(String(), 2)
		encode(t, c, []string{"a", "bc"}, []byte{1, 0, 0, 0, 'a', 2, 0, 0, 0, 'b', 'c'})
		roundTrip(t, c, []string{"a", "bc"})
		_, err := c.FixFromValue([]string{"a"})
		wantKind(t, err, errors.KindArityMismatch)
	})
}

func TestHeterogeneousArray(t *testing.T) {
	c := HeterogeneousArray([]FixedCodec[string]{FixedString(1), FixedString(3)}, true)
	want := []byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 3, 0, 0, 0, 'b', 'c', 'd'}
	encode[[]string](t, c, []string{"a", "bcd"}, want)
	roundTrip[[]string](t, c, []string{"a", "bcd"})

	wantKind(t, c.Write(make([]byte, len(want)), 0, []string{"a"}), errors.KindArityMismatch)

	bad := append([]byte(nil), want...)
	bad[0] = 3
	_, err := c.Read(bad, 0)
	wantKind(t, err, errors.KindLengthMismatch)
}
