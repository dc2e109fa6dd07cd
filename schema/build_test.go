package schema

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

var bigComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func mustBuild(t *testing.T, expr string) codec.Codec[any] {
	t.Helper()
	c, err := Build(MustParse(expr))
	if err != nil {
		t.Fatalf("Build(%q): %v", expr, err)
	}
	return c
}

// encodeDecode serializes v, checks the bytes and returns the decoded value.
func encodeDecode(t *testing.T, c codec.Codec[any], v any, want []byte) any {
	t.Helper()
	got, n, err := codec.Serialize(c, v)
	if err != nil {
		t.Fatalf("Serialize(%v): %v", v, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Serialize(%v) = %v, want %v", v, got, want)
	}
	if n != len(want) {
		t.Errorf("Serialize size = %d, want %d", n, len(want))
	}
	out, m, err := codec.Deserialize(c, got, 0)
	if err != nil {
		t.Fatalf("Deserialize(%v): %v", got, err)
	}
	if m != len(want) {
		t.Errorf("Deserialize consumed %d bytes, want %d", m, len(want))
	}
	return out
}

func TestBuildPrimitives(t *testing.T) {
	tests := []struct {
		expr string
		in   any
		want []byte
		out  any
	}{
		{"u8", 7, []byte{7}, uint8(7)},
		{"u16", "0x0102", []byte{2, 1}, uint16(0x0102)},
		{"u32", 4294967295.0, []byte{0xff, 0xff, 0xff, 0xff}, uint32(4294967295)},
		{"i8", -1, []byte{0xff}, int8(-1)},
		{"i64", json.Number("-2"), []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, int64(-2)},
		{"bool", "true", []byte{1}, true},
		{"f32", 1.5, []byte{0, 0, 0xc0, 0x3f}, float32(1.5)},
		{"string", "hi", []byte{2, 0, 0, 0, 'h', 'i'}, "hi"},
		{"bytes", "0x0a0b", []byte{2, 0, 0, 0, 0x0a, 0x0b}, []byte{0x0a, 0x0b}},
		{"vec<u8>", []any{1, 2}, []byte{2, 0, 0, 0, 1, 2}, []byte{1, 2}},
		{"[u8; 3]", []byte{1, 2, 3}, []byte{1, 2, 3}, []byte{1, 2, 3}},
		{"unit", nil, []byte{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := encodeDecode(t, mustBuild(t, tt.expr), tt.in, tt.want)
			if diff := cmp.Diff(tt.out, got); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildWideIntegers(t *testing.T) {
	c := mustBuild(t, "u128")
	want := bytes.Repeat([]byte{0xff}, 16)
	got := encodeDecode(t, c, "340282366920938463463374607431768211455", want)
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	if diff := cmp.Diff(any(max), got, bigComparer); diff != "" {
		t.Errorf("u128 mismatch (-want +got):\n%s", diff)
	}

	got = encodeDecode(t, mustBuild(t, "i256"), -1, bytes.Repeat([]byte{0xff}, 32))
	if diff := cmp.Diff(any(big.NewInt(-1)), got, bigComparer); diff != "" {
		t.Errorf("i256 mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPublicKey(t *testing.T) {
	const token = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	key, err := codec.ParsePublicKey(token)
	if err != nil {
		t.Fatal(err)
	}
	got := encodeDecode(t, mustBuild(t, "pubkey"), token, key[:])
	if got.(codec.PublicKey).String() != token {
		t.Errorf("decoded key = %v, want %s", got, token)
	}
}

func TestBuildStruct(t *testing.T) {
	c := mustBuild(t, "struct { x: i32, y: i32 }")
	if !codec.IsFixed(c) {
		t.Error("struct of integers should be fixed")
	}
	want := []byte{1, 0, 0, 0, 0xfe, 0xff, 0xff, 0xff}

	for _, in := range []any{
		map[string]any{"y": -2, "x": 1},
		[]any{1, -2},
		codec.Params{{Name: "x", Value: int32(1)}, {Name: "y", Value: int32(-2)}},
	} {
		got := encodeDecode(t, c, in, want)
		wantParams := codec.Params{{Name: "x", Value: int32(1)}, {Name: "y", Value: int32(-2)}}
		if diff := cmp.Diff(any(wantParams), got); diff != "" {
			t.Errorf("decoded mismatch for %v (-want +got):\n%s", in, diff)
		}
	}

	if codec.IsFixed(mustBuild(t, "struct { name: string }")) {
		t.Error("struct with a string should be fixable")
	}
}

func TestBuildOption(t *testing.T) {
	c := mustBuild(t, "option<u16>")
	if got := encodeDecode(t, c, nil, []byte{0}); got != nil {
		t.Errorf("None decoded as %v", got)
	}
	if got := encodeDecode(t, c, 258, []byte{1, 2, 1}); got != uint16(258) {
		t.Errorf("Some decoded as %v", got)
	}
}

func TestBuildVecAndArray(t *testing.T) {
	got := encodeDecode(t, mustBuild(t, "vec<string>"), []string{"a", "bc"},
		[]byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 2, 0, 0, 0, 'b', 'c'})
	if diff := cmp.Diff(any([]any{"a", "bc"}), got); diff != "" {
		t.Errorf("vec mismatch (-want +got):\n%s", diff)
	}

	c := mustBuild(t, "[u16; 2]")
	if !codec.IsFixed(c) {
		t.Error("array of u16 should be fixed")
	}
	got = encodeDecode(t, c, []any{1, 2}, []byte{1, 0, 2, 0})
	if diff := cmp.Diff(any([]any{uint16(1), uint16(2)}), got); diff != "" {
		t.Errorf("array mismatch (-want +got):\n%s", diff)
	}

	_, _, err := codec.Serialize[any](c, []any{1})
	wantKind(t, err, errors.KindArityMismatch)
}

func TestBuildEnum(t *testing.T) {
	c := mustBuild(t, "enum { Idle, Move { x: i32 }, Say(string) }")
	opts := cmpopts.EquateEmpty()

	tests := []struct {
		name string
		in   any
		want []byte
		out  *EnumValue
	}{
		{"unit name", "Idle", []byte{0}, &EnumValue{Name: "Idle"}},
		{"struct variant", map[string]any{"Move": map[string]any{"x": 5}},
			[]byte{1, 5, 0, 0, 0},
			&EnumValue{Name: "Move", Index: 1, Params: codec.Params{{Name: "x", Value: int32(5)}}}},
		{"single tuple field", map[string]any{"Say": "hi"},
			[]byte{2, 2, 0, 0, 0, 'h', 'i'},
			&EnumValue{Name: "Say", Index: 2, Params: codec.Params{{Name: "0", Value: "hi"}}}},
		{"enum value", &EnumValue{Name: "Say", Params: codec.Params{{Name: "0", Value: "yo"}}},
			[]byte{2, 2, 0, 0, 0, 'y', 'o'},
			&EnumValue{Name: "Say", Index: 2, Params: codec.Params{{Name: "0", Value: "yo"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeDecode(t, c, tt.in, tt.want)
			if diff := cmp.Diff(any(tt.out), got, opts); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, _, err := codec.Serialize(c, "Jump")
	wantKind(t, err, errors.KindNotFound)

	_, _, err = codec.Deserialize(c, []byte{3}, 0)
	wantKind(t, err, errors.KindInvalidDiscriminant)
}

func TestBuildEnumJSON(t *testing.T) {
	c := mustBuild(t, "struct { state: enum { Off, On { level: u8 } }, tags: vec<string> }")
	v, _, err := codec.Deserialize(c, []byte{1, 3, 1, 0, 0, 0, 1, 0, 0, 0, 'z'}, 0)
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"state":{"On":{"level":3}},"tags":["z"]}`
	if string(out) != want {
		t.Errorf("json = %s, want %s", out, want)
	}
}

func TestBuildCoercionErrors(t *testing.T) {
	tests := []struct {
		expr string
		in   any
		kind errors.Kind
	}{
		{"u8", 256, errors.KindOverflow},
		{"i8", "-129", errors.KindOverflow},
		{"u32", "abc", errors.KindTypeMismatch},
		{"u128", -1, errors.KindOverflow},
		{"string", 5, errors.KindTypeMismatch},
		{"bytes", "not hex", errors.KindTypeMismatch},
		{"pubkey", "short", errors.KindTypeMismatch},
		{"vec<u8>", true, errors.KindTypeMismatch},
		{"vec<u16>", 12, errors.KindTypeMismatch},
		{"struct { a: u8 }", map[string]any{}, errors.KindFieldMissing},
		{"struct { a: u8 }", 1, errors.KindTypeMismatch},
		{"enum { A }", map[string]any{"A": nil, "B": nil}, errors.KindInvalidInput},
		{"enum { A }", 3, errors.KindTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, _, err := codec.Serialize(mustBuild(t, tt.expr), tt.in)
			wantKind(t, err, tt.kind)
		})
	}
}

func TestBuildFieldPath(t *testing.T) {
	c := mustBuild(t, "struct { outer: struct { inner: u8 } }")
	_, _, err := codec.Serialize[any](c, map[string]any{"outer": map[string]any{"inner": "x"}})
	e := wantKind(t, err, errors.KindTypeMismatch)
	if diff := cmp.Diff([]string{"outer", "inner"}, e.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildUnknownReference(t *testing.T) {
	_, err := Build(MustParse("vec<Missing>"))
	wantKind(t, err, errors.KindNotFound)
}
