package schema

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/borsh/codec"
)

func TestCoerceToUint64(t *testing.T) {
	tests := []struct {
		in   any
		want uint64
		ok   bool
	}{
		{uint8(5), 5, true},
		{int(-1), 0, false},
		{float64(3), 3, true},
		{float64(3.5), 0, false},
		{json.Number("18446744073709551615"), 1<<64 - 1, true},
		{"1_000", 1000, true},
		{"0xff", 255, true},
		{big.NewInt(42), 42, true},
		{new(big.Int).Lsh(big.NewInt(1), 64), 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := CoerceToUint64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CoerceToUint64(%#v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCoerceNarrowing(t *testing.T) {
	if v, ok := CoerceUnsigned[uint8](255, 8); !ok || v != 255 {
		t.Errorf("CoerceUnsigned(255, 8) = %d, %v", v, ok)
	}
	if _, ok := CoerceUnsigned[uint8](256, 8); ok {
		t.Error("256 should not fit in u8")
	}
	if v, ok := CoerceSigned[int8](-128, 8); !ok || v != -128 {
		t.Errorf("CoerceSigned(-128, 8) = %d, %v", v, ok)
	}
	if _, ok := CoerceSigned[int8](128, 8); ok {
		t.Error("128 should not fit in i8")
	}
	if v, ok := CoerceSigned[int64](uint64(1<<63-1), 64); !ok || v != 1<<63-1 {
		t.Errorf("CoerceSigned(max int64) = %d, %v", v, ok)
	}
	if _, ok := CoerceSigned[int64](uint64(1<<63), 64); ok {
		t.Error("1<<63 should not fit in i64")
	}
}

func TestCoerceToBig(t *testing.T) {
	b, ok := CoerceToBig("-0x10")
	if !ok || b.Int64() != -16 {
		t.Errorf("CoerceToBig(-0x10) = %v, %v", b, ok)
	}
	src := big.NewInt(7)
	b, _ = CoerceToBig(src)
	b.SetInt64(8)
	if src.Int64() != 7 {
		t.Error("CoerceToBig should copy its input")
	}
	if _, ok := CoerceToBig(1.5); ok {
		t.Error("1.5 is not an integer")
	}
}

func TestCoerceToBytes(t *testing.T) {
	tests := []struct {
		in   any
		want []byte
		ok   bool
	}{
		{[]byte{1}, []byte{1}, true},
		{"0x0102", []byte{1, 2}, true},
		{"0x0", nil, false},
		{"0102", nil, false},
		{[]any{1.0, 255}, []byte{1, 255}, true},
		{[]any{256}, nil, false},
	}
	for _, tt := range tests {
		got, ok := CoerceToBytes(tt.in)
		if ok != tt.ok {
			t.Errorf("CoerceToBytes(%#v) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok {
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CoerceToBytes(%#v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		}
	}
}

func TestCoerceToParams(t *testing.T) {
	fields := []Field{NamedField("a", Prim(codec.KindU8)), NamedField("b", Prim(codec.KindU8))}

	got, ok := CoerceToParams(map[string]any{"b": 2, "a": 1, "extra": 3}, fields)
	if !ok {
		t.Fatal("map should coerce")
	}
	want := codec.Params{{Name: "a", Value: 1}, {Name: "b", Value: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("map order mismatch (-want +got):\n%s", diff)
	}

	got, ok = CoerceToParams([]any{1}, fields)
	if !ok {
		t.Fatal("list should coerce")
	}
	if diff := cmp.Diff(codec.Params{{Name: "a", Value: 1}}, got); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}

	if _, ok := CoerceToParams("x", fields); ok {
		t.Error("string should not coerce to params")
	}
}

func TestCoerceToPublicKey(t *testing.T) {
	var raw [32]byte
	raw[31] = 1
	k, ok := CoerceToPublicKey(raw[:])
	if !ok || k[31] != 1 {
		t.Errorf("CoerceToPublicKey(bytes) = %v, %v", k, ok)
	}
	back, ok := CoerceToPublicKey(k.String())
	if !ok || back != k {
		t.Errorf("base58 round trip = %v, %v", back, ok)
	}
	if _, ok := CoerceToPublicKey(raw[:31]); ok {
		t.Error("31 bytes should not coerce")
	}
}
