package guestmem

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// guestModule exports one page of memory and a bump cabi_realloc that
// ignores alignment:
//
//	(module
//	  (memory (export "memory") 1)
//	  (global $next (mut i32) (i32.const 1024))
//	  (func (export "cabi_realloc") (param i32 i32 i32 i32) (result i32)
//	    (global.set $next (i32.add (global.get $next) (local.get 3)))
//	    (i32.sub (global.get $next) (local.get 3))))
var guestModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i32 i32 i32 i32) -> i32
	0x01, 0x09, 0x01, 0x60, 0x04, 0x7f, 0x7f, 0x7f, 0x7f, 0x01, 0x7f,
	// function
	0x03, 0x02, 0x01, 0x00,
	// memory: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// global: mut i32 = 1024
	0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b,
	// export: memory, cabi_realloc
	0x07, 0x19, 0x02,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x0c, 'c', 'a', 'b', 'i', '_', 'r', 'e', 'a', 'l', 'l', 'o', 'c', 0x00, 0x00,
	// code
	0x0a, 0x10, 0x01, 0x0e, 0x00,
	0x23, 0x00, 0x20, 0x03, 0x6a, 0x24, 0x00,
	0x23, 0x00, 0x20, 0x03, 0x6b, 0x0b,
}

// memoryOnlyModule exports a single page of memory and nothing else.
var memoryOnlyModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func instantiate(t *testing.T, bin []byte) api.Module {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })
	mod, err := r.Instantiate(ctx, bin)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	return mod
}

type account struct {
	Name    string
	Balance uint64
}

var accountCodec = codec.Struct([]codec.Field[account]{
	codec.NewField("name", codec.String(), func(a account) string { return a.Name }),
	codec.NewField[account, uint64]("balance", codec.U64, func(a account) uint64 { return a.Balance }),
}, func(p codec.Params) (account, error) {
	name, err := codec.ParamAs[string](p, "name")
	if err != nil {
		return account{}, err
	}
	balance, err := codec.ParamAs[uint64](p, "balance")
	if err != nil {
		return account{}, err
	}
	return account{Name: name, Balance: balance}, nil
})

func TestEncodeDecode(t *testing.T) {
	mem := instantiate(t, memoryOnlyModule).Memory()
	in := account{Name: "alice", Balance: 42}

	n, err := Encode(mem, 100, accountCodec, in)
	if err != nil {
		t.Fatal(err)
	}
	if n != 17 {
		t.Errorf("Encode wrote %d bytes, want 17", n)
	}
	raw, _ := mem.Read(100, n)
	want := []byte{5, 0, 0, 0, 'a', 'l', 'i', 'c', 'e', 42, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(raw, want) {
		t.Errorf("memory = %v, want %v", raw, want)
	}

	out, m, err := Decode(mem, 100, accountCodec)
	if err != nil {
		t.Fatal(err)
	}
	if m != n {
		t.Errorf("Decode consumed %d bytes, want %d", m, n)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}

	got, err := Lift(mem, 100, n, accountCodec)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("lifted mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeOutOfBounds(t *testing.T) {
	mem := instantiate(t, memoryOnlyModule).Memory()
	_, err := Encode[uint64](mem, mem.Size()-4, codec.U64, 1)
	wantKind(t, err, errors.KindOutOfBounds)

	_, _, err = Decode[uint8](mem, mem.Size()+1, codec.U8)
	wantKind(t, err, errors.KindOutOfBounds)

	_, _, err = Decode[uint32](mem, mem.Size()-2, codec.U32)
	wantKind(t, err, errors.KindOutOfBounds)
}

func TestLiftLengthMismatch(t *testing.T) {
	mem := instantiate(t, memoryOnlyModule).Memory()
	if _, err := Encode(mem, 0, codec.String(), "abc"); err != nil {
		t.Fatal(err)
	}
	_, err := Lift(mem, 0, 9, codec.String())
	wantKind(t, err, errors.KindLengthMismatch)

	_, err = Lift(mem, 0, 5, codec.String())
	wantKind(t, err, errors.KindOutOfBounds)
}

func TestLower(t *testing.T) {
	SetLogger(zaptest.NewLogger(t))
	defer SetLogger(zap.NewNop())

	ctx := context.Background()
	mod := instantiate(t, guestModule)
	alloc, err := NewAllocator(mod)
	if err != nil {
		t.Fatal(err)
	}

	ptr, size, err := Lower(ctx, mod.Memory(), alloc, accountCodec, account{Name: "bob", Balance: 7})
	if err != nil {
		t.Fatal(err)
	}
	if ptr != 1024 || size != 15 {
		t.Errorf("Lower = (%d, %d), want (1024, 15)", ptr, size)
	}

	ptr2, _, err := Lower(ctx, mod.Memory(), alloc, codec.Vec[uint16](codec.U16), []uint16{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if ptr2 != ptr+size {
		t.Errorf("second region at %d, want %d", ptr2, ptr+size)
	}

	got, err := Lift(mod.Memory(), ptr, size, accountCodec)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "bob" || got.Balance != 7 {
		t.Errorf("lifted %+v", got)
	}
	alloc.Free(ctx, ptr, size, 1)
}

func TestLowerEncodeError(t *testing.T) {
	ctx := context.Background()
	mod := instantiate(t, guestModule)
	alloc, err := NewAllocator(mod)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Lower[*uint8](ctx, mod.Memory(), alloc, codec.Some[uint8](codec.U8), nil)
	wantKind(t, err, errors.KindNilPointer)
}

func TestNewAllocatorMissingExport(t *testing.T) {
	_, err := NewAllocator(instantiate(t, memoryOnlyModule))
	wantKind(t, err, errors.KindNotFound)
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(zap.NewNop())
	if Logger() == nil {
		t.Fatal("Logger() is nil after SetLogger(nil)")
	}
	Logger().Debug("still usable")
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
