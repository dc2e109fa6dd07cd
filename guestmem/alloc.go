package guestmem

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/borsh/errors"
)

const (
	CabiRealloc = "cabi_realloc"
	CabiFree    = "cabi_free"

	simpleAlloc = "alloc"
	simpleFree  = "free"
)

// FuncAllocator allocates through functions exported by a wazero module.
// It prefers cabi_realloc(old_ptr, old_size, align, new_size) and falls back
// to alloc(size).
type FuncAllocator struct {
	allocFn  api.Function
	freeFn   api.Function
	stack    []uint64
	mu       sync.Mutex
	realloc  bool
	freeArgs int
}

// NewAllocator looks up the allocation exports of mod.
func NewAllocator(mod api.Module) (*FuncAllocator, error) {
	a := &FuncAllocator{stack: make([]uint64, 4)}

	defs := mod.ExportedFunctionDefinitions()
	switch {
	case defs[CabiRealloc] != nil && len(defs[CabiRealloc].ParamTypes()) == 4:
		a.allocFn = mod.ExportedFunction(CabiRealloc)
		a.realloc = true
	case defs[simpleAlloc] != nil:
		a.allocFn = mod.ExportedFunction(simpleAlloc)
	default:
		return nil, errors.NotFound(errors.PhaseLoad, "export", CabiRealloc)
	}

	for _, name := range []string{CabiFree, simpleFree} {
		if def := defs[name]; def != nil {
			a.freeFn = mod.ExportedFunction(name)
			a.freeArgs = min(len(def.ParamTypes()), 3)
			break
		}
	}
	return a, nil
}

func (a *FuncAllocator) Alloc(ctx context.Context, size, align uint32) (uint32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.realloc {
		a.stack[0] = uint64(size)
		if err := a.allocFn.CallWithStack(ctx, a.stack[:1]); err != nil {
			return 0, err
		}
		return api.DecodeU32(a.stack[0]), nil
	}
	a.stack[0] = 0
	a.stack[1] = 0
	a.stack[2] = uint64(align)
	a.stack[3] = uint64(size)
	if err := a.allocFn.CallWithStack(ctx, a.stack[:4]); err != nil {
		return 0, err
	}
	return api.DecodeU32(a.stack[0]), nil
}

// Free releases a region. Without a free export a realloc allocator shrinks
// the region to zero; a bare alloc export leaks it.
func (a *FuncAllocator) Free(ctx context.Context, ptr, size, align uint32) {
	if ptr == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	switch {
	case a.freeFn != nil:
		a.stack[0] = uint64(ptr)
		a.stack[1] = uint64(size)
		a.stack[2] = uint64(align)
		err = a.freeFn.CallWithStack(ctx, a.stack[:max(a.freeArgs, 1)])
	case a.realloc:
		a.stack[0] = uint64(ptr)
		a.stack[1] = uint64(size)
		a.stack[2] = uint64(align)
		a.stack[3] = 0
		err = a.allocFn.CallWithStack(ctx, a.stack[:4])
	}
	if err != nil {
		Logger().Warn("Free: guest deallocation failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}
