package schema

import (
	"sort"
	"sync"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Registry holds named type definitions. It is safe for concurrent use.
type Registry struct {
	types map[string]*Type
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Define registers t under name. Names are unique.
func (r *Registry) Define(name string, t *Type) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseSchema, "type name is empty")
	}
	if t == nil {
		return errors.NilPointer(errors.PhaseSchema, []string{name}, "*schema.Type")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Path(name).
			Detail("type %q already defined", name).
			Build()
	}
	r.types[name] = t
	return nil
}

// DefineExpr parses expr and registers it under name.
func (r *Registry) DefineExpr(name, expr string) error {
	t, err := Parse(expr)
	if err != nil {
		return errors.WithPath(err, name)
	}
	return r.Define(name, t)
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns the dynamic codec for t, resolving references against r.
func (r *Registry) Build(t *Type) (codec.Codec[any], error) {
	return newBuilder(r).build(t)
}

// BuildNamed returns the dynamic codec for the type registered under name.
func (r *Registry) BuildNamed(name string) (codec.Codec[any], error) {
	return newBuilder(r).ref(name)
}

// Validate builds every definition, reporting unknown references and
// recursion that never passes through a vec, option or enum.
func (r *Registry) Validate() error {
	for _, name := range r.Names() {
		if _, err := r.BuildNamed(name); err != nil {
			return err
		}
	}
	return nil
}

// Build returns the dynamic codec for a self-contained type.
func Build(t *Type) (codec.Codec[any], error) {
	return newBuilder(nil).build(t)
}
