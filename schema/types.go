package schema

import (
	"strconv"
	"strings"

	"github.com/wippyai/borsh/codec"
)

// Type is a node of a parsed type expression. Exactly one of the shapes is
// populated, selected by Kind; a named reference has Ref set instead.
type Type struct {
	Kind     codec.Kind
	Ref      string
	Elem     *Type
	Len      int
	Fields   []Field
	Variants []Variant
}

// Field is a named struct member.
type Field struct {
	Name string
	Type *Type
}

// Variant is one enum case. Tuple variants name their fields "0", "1", ...
type Variant struct {
	Name   string
	Fields []Field
	Tuple  bool
}

func Prim(k codec.Kind) *Type            { return &Type{Kind: k} }
func Ref(name string) *Type              { return &Type{Ref: name} }
func Vec(elem *Type) *Type               { return &Type{Kind: codec.KindVec, Elem: elem} }
func Option(elem *Type) *Type            { return &Type{Kind: codec.KindOption, Elem: elem} }
func Array(elem *Type, n int) *Type      { return &Type{Kind: codec.KindArray, Elem: elem, Len: n} }
func Struct(fields ...Field) *Type       { return &Type{Kind: codec.KindStruct, Fields: fields} }
func Enum(variants ...Variant) *Type     { return &Type{Kind: codec.KindEnum, Variants: variants} }
func UnitVariant(name string) Variant    { return Variant{Name: name} }
func NamedField(n string, t *Type) Field { return Field{Name: n, Type: t} }

// TupleVariant declares a variant with positional fields.
func TupleVariant(name string, types ...*Type) Variant {
	fields := make([]Field, len(types))
	for i, t := range types {
		fields[i] = Field{Name: strconv.Itoa(i), Type: t}
	}
	return Variant{Name: name, Fields: fields, Tuple: true}
}

// StructVariant declares a variant with named fields.
func StructVariant(name string, fields ...Field) Variant {
	return Variant{Name: name, Fields: fields}
}

// IsRef reports whether t names another type.
func (t *Type) IsRef() bool { return t.Ref != "" }

// String renders t in the expression syntax accepted by Parse.
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	if t.IsRef() {
		b.WriteString(t.Ref)
		return
	}
	switch t.Kind {
	case codec.KindVec:
		b.WriteString("vec<")
		t.Elem.write(b)
		b.WriteByte('>')
	case codec.KindOption:
		b.WriteString("option<")
		t.Elem.write(b)
		b.WriteByte('>')
	case codec.KindArray:
		b.WriteByte('[')
		t.Elem.write(b)
		b.WriteString("; ")
		b.WriteString(strconv.Itoa(t.Len))
		b.WriteByte(']')
	case codec.KindStruct:
		b.WriteString("struct ")
		writeFields(b, t.Fields)
	case codec.KindEnum:
		if len(t.Variants) == 0 {
			b.WriteString("enum {}")
			return
		}
		b.WriteString("enum { ")
		for i, v := range t.Variants {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.Name)
			switch {
			case v.Tuple:
				b.WriteByte('(')
				for j, f := range v.Fields {
					if j > 0 {
						b.WriteString(", ")
					}
					f.Type.write(b)
				}
				b.WriteByte(')')
			case len(v.Fields) > 0:
				b.WriteByte(' ')
				writeFields(b, v.Fields)
			}
		}
		b.WriteString(" }")
	default:
		b.WriteString(t.Kind.String())
	}
}

func writeFields(b *strings.Builder, fields []Field) {
	if len(fields) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{ ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		f.Type.write(b)
	}
	b.WriteString(" }")
}
