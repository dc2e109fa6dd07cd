// Package guestmem moves Borsh values in and out of WebAssembly linear
// memory.
//
// Memory matches wazero's api.Memory, so a module's memory is used directly:
//
//	mod, _ := runtime.Instantiate(ctx, wasmBytes)
//	alloc, err := guestmem.NewAllocator(mod)
//
//	ptr, size, err := guestmem.Lower(ctx, mod.Memory(), alloc, c, v)
//	// pass ptr and size to a guest export
//	out, err := guestmem.Lift(mod.Memory(), ptr, size, c)
//
// Lower sizes the allocation from the resolved codec, so the guest receives
// exactly the encoded bytes. Lift rejects regions with trailing bytes.
package guestmem
