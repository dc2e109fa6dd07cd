package schema

import (
	"math"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Unbounded is the Max of types containing strings, bytes or vectors.
const Unbounded = -1

// Info describes the encoded size of a type.
type Info struct {
	// FieldOffs holds the offsets of struct fields that only follow
	// fixed-size fields.
	FieldOffs map[string]int
	Min       int
	Max       int
}

// Static reports whether every value of the type encodes to the same size.
func (i Info) Static() bool { return i.Min == i.Max }

type Calculator struct {
	reg    *Registry
	cache  map[*Type]Info
	active map[string]bool
}

func NewCalculator(reg *Registry) *Calculator {
	return &Calculator{
		reg:    reg,
		cache:  make(map[*Type]Info),
		active: make(map[string]bool),
	}
}

// StaticSize returns the encoded size of t when it does not depend on the
// value.
func StaticSize(reg *Registry, t *Type) (int, bool, error) {
	info, err := NewCalculator(reg).Calculate(t)
	if err != nil {
		return 0, false, err
	}
	return info.Min, info.Static(), nil
}

func (c *Calculator) Calculate(t *Type) (Info, error) {
	if t == nil {
		return Info{}, errors.NilPointer(errors.PhaseSchema, nil, "*schema.Type")
	}
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	var (
		info Info
		err  error
	)
	switch {
	case t.IsRef():
		info, err = c.calculateRef(t.Ref)
	case t.Kind == codec.KindVec, t.Kind == codec.KindString, t.Kind == codec.KindBytes:
		info = Info{Min: 4, Max: Unbounded}
	case t.Kind == codec.KindOption:
		info, err = c.calculateOption(t)
	case t.Kind == codec.KindArray:
		info, err = c.calculateArray(t)
	case t.Kind == codec.KindStruct:
		info, err = c.calculateStruct(t.Fields)
	case t.Kind == codec.KindEnum:
		info, err = c.calculateEnum(t)
	default:
		size := primitiveSize(t.Kind)
		info = Info{Min: size, Max: size}
	}
	if err != nil {
		return Info{}, err
	}

	c.cache[t] = info
	return info, nil
}

func primitiveSize(k codec.Kind) int {
	if k == codec.KindPublicKey {
		return codec.PublicKeySize
	}
	return k.Width()
}

// calculateRef treats a recursive reference as an empty lower bound.
func (c *Calculator) calculateRef(name string) (Info, error) {
	if c.active[name] {
		return Info{Min: 0, Max: Unbounded}, nil
	}
	t, ok := c.reg.Lookup(name)
	if !ok {
		return Info{}, errors.NotFound(errors.PhaseSchema, "type", name)
	}
	c.active[name] = true
	defer delete(c.active, name)
	return c.Calculate(t)
}

func (c *Calculator) calculateOption(t *Type) (Info, error) {
	inner, err := c.Calculate(t.Elem)
	if err != nil {
		return Info{}, err
	}
	return Info{Min: 1, Max: addSize(1, inner.Max)}, nil
}

func (c *Calculator) calculateArray(t *Type) (Info, error) {
	elem, err := c.Calculate(t.Elem)
	if err != nil {
		return Info{}, err
	}
	return Info{Min: mulSize(elem.Min, t.Len), Max: mulSize(elem.Max, t.Len)}, nil
}

func (c *Calculator) calculateStruct(fields []Field) (Info, error) {
	fieldOffs := make(map[string]int)
	info := Info{FieldOffs: fieldOffs}
	offset := 0
	for _, f := range fields {
		if offset >= 0 {
			fieldOffs[f.Name] = offset
		}
		fi, err := c.Calculate(f.Type)
		if err != nil {
			return Info{}, errors.WithPath(err, f.Name)
		}
		if offset >= 0 && fi.Static() {
			offset += fi.Min
		} else {
			offset = -1
		}
		info.Min = addSize(info.Min, fi.Min)
		info.Max = addSize(info.Max, fi.Max)
	}
	return info, nil
}

func (c *Calculator) calculateEnum(t *Type) (Info, error) {
	if len(t.Variants) == 0 {
		return Info{Min: 1, Max: 1}, nil
	}
	info := Info{Min: math.MaxInt}
	for _, v := range t.Variants {
		vi, err := c.calculateStruct(v.Fields)
		if err != nil {
			return Info{}, errors.WithPath(err, v.Name)
		}
		info.Min = min(info.Min, vi.Min)
		switch {
		case info.Max == Unbounded || vi.Max == Unbounded:
			info.Max = Unbounded
		default:
			info.Max = max(info.Max, vi.Max)
		}
	}
	info.Min = addSize(1, info.Min)
	info.Max = addSize(1, info.Max)
	return info, nil
}

func addSize(a, b int) int {
	if a == Unbounded || b == Unbounded || a > math.MaxInt-b {
		return Unbounded
	}
	return a + b
}

func mulSize(size, n int) int {
	if size == Unbounded {
		if n == 0 {
			return 0
		}
		return Unbounded
	}
	if n != 0 && size > math.MaxInt/n {
		return Unbounded
	}
	return size * n
}
