package schema

import (
	"bytes"
	"encoding/json"

	"github.com/wippyai/borsh/codec"
)

// EnumValue is the dynamic value of an enum type.
type EnumValue struct {
	Name   string
	Index  uint8
	Params codec.Params
}

func (v *EnumValue) VariantName() string         { return v.Name }
func (v *EnumValue) VariantParams() codec.Params { return v.Params }

// MarshalJSON renders a unit variant as its name and any other variant as
// {"Name": {fields}}.
func (v *EnumValue) MarshalJSON() ([]byte, error) {
	if len(v.Params) == 0 {
		return json.Marshal(v.Name)
	}
	var buf bytes.Buffer
	name, err := json.Marshal(v.Name)
	if err != nil {
		return nil, err
	}
	fields, err := v.Params.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.WriteByte('{')
	buf.Write(name)
	buf.WriteByte(':')
	buf.Write(fields)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
