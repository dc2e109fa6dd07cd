// Package schema describes Borsh types at runtime and builds dynamic codecs
// for them.
//
// Types come from a small expression language, from Go constructors or from
// WIT definitions:
//
//	reg := schema.NewRegistry()
//	reg.DefineExpr("Point", "struct { x: i32, y: i32 }")
//	reg.DefineExpr("Shape", "enum { Dot(Point), Line { from: Point, to: Point } }")
//
//	c, err := reg.BuildNamed("Shape")
//	data, _, err := codec.Serialize[any](c, map[string]any{"Dot": []any{1, 2}})
//	v, _, err := codec.Deserialize(c, data, 0)
//
// Built codecs are codec.Codec[any]. Decoding yields Go integers, *big.Int,
// strings, []byte, []any, codec.Params and *EnumValue; encoding also accepts
// the loosely typed values produced by JSON and YAML decoders.
//
// # Recursion
//
// A type may refer to itself through vec, option or enum, which bound the
// encoding. Direct or array-only cycles are rejected when building.
//
// # Layout
//
// Calculator reports the minimum and maximum encoded size of a type and the
// offsets of leading fixed-size struct fields, as used for account filters.
package schema
