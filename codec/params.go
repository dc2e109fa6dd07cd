package codec

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/wippyai/borsh/codec/internal/wire"
	"github.com/wippyai/borsh/errors"
)

// Param is one named value of a struct or enum variant.
type Param struct {
	Name  string
	Value any
}

// Params is the ordered name to value mapping produced by reading a struct.
// Order is wire order.
type Params []Param

// Get returns the value stored under name.
func (p Params) Get(name string) (any, bool) {
	for i := range p {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

func (p Params) Names() []string {
	names := make([]string, len(p))
	for i := range p {
		names[i] = p[i].Name
	}
	return names
}

// Set replaces the value under name or appends a new entry.
func (p *Params) Set(name string, v any) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = v
			return
		}
	}
	*p = append(*p, Param{Name: name, Value: v})
}

// MarshalJSON renders the params as an object keeping field order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParamAs fetches name from p as a T. A nil value is accepted for pointer,
// slice, map and interface types.
func ParamAs[T any](p Params, name string) (T, error) {
	var zero T
	v, ok := p.Get(name)
	if !ok {
		return zero, errors.FieldMissing(errors.PhaseEncode, nil, name)
	}
	if v == nil && nilable[T]() {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseEncode, nil, wire.TypeName(v), reflect.TypeFor[T]().String())
	}
	return t, nil
}

func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
