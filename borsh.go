package borsh

import (
	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema"
)

// Marshal encodes v with the layout described by the type expression expr.
func Marshal(expr string, v any) ([]byte, error) {
	c, err := compile(expr)
	if err != nil {
		return nil, err
	}
	data, _, err := codec.Serialize(c, v)
	return data, err
}

// Unmarshal decodes data with the layout described by expr. The whole input
// must be consumed.
func Unmarshal(expr string, data []byte) (any, error) {
	c, err := compile(expr)
	if err != nil {
		return nil, err
	}
	v, n, err := codec.Deserialize(c, data, 0)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, errors.New(errors.PhaseDecode, errors.KindLengthMismatch).
			Offset(n).
			Detail("%d trailing bytes after %s", len(data)-n, expr).
			Build()
	}
	return v, nil
}

func compile(expr string) (codec.Codec[any], error) {
	t, err := schema.Parse(expr)
	if err != nil {
		return nil, err
	}
	return schema.Build(t)
}
