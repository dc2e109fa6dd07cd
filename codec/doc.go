// Package codec provides Borsh encoding and decoding.
//
// Borsh is the binary format used by Solana programs and Anchor accounts:
//
//	Type            Wire encoding
//	─────────────────────────────────────────────────────
//	u8..u512        little-endian, 1/2/4/8/16/32/64 bytes
//	i8..i512        two's complement, same widths
//	bool            1 byte, 0 or 1
//	f32/f64         IEEE-754 little-endian
//	string          u32 byte length + UTF-8 bytes
//	vec<T>          u32 count + elements back to back
//	[T; N]          N elements, no prefix
//	option<T>       0, or 1 + T
//	enum            u8 discriminant + variant fields
//	struct          fields in declaration order
//
// # Fixed and Fixable Codecs
//
// A FixedCodec has a constant ByteSize and can Read and Write directly.
// Every other Codec must first be resolved ("fixed") against either a value
// or the bytes that encode one:
//
//	f, err := c.FixFromValue(v)             // encoding
//	f, err := c.FixFromData(NewCursor(b, 0)) // decoding
//
// Both produce a FixedCodec whose ByteSize is exactly the encoded length.
// Fixing a FixedCodec returns it unchanged. Read and Write are only ever
// called on fixed codecs.
//
// # Key Types
//
//	Codec[T]       - fixable codec for values of type T
//	FixedCodec[T]  - resolved codec with a constant byte size
//	Cursor         - buffer position threaded through FixFromData
//	Field[S]       - named struct member with a typed accessor
//	Params         - ordered name to value map read from a struct
//	Variant        - interface implemented by data enum values
//	Writer/Reader  - sequential cursors used by struct codecs
//
// # Example
//
//	type Config struct {
//		Name  string
//		Limit uint32
//	}
//
//	var configCodec = codec.Struct([]codec.Field[Config]{
//		codec.NewField("name", codec.String(), func(c Config) string { return c.Name }),
//		codec.NewField[Config, uint32]("limit", codec.U32, func(c Config) uint32 { return c.Limit }),
//	}, func(p codec.Params) (Config, error) {
//		name, err := codec.ParamAs[string](p, "name")
//		if err != nil {
//			return Config{}, err
//		}
//		limit, err := codec.ParamAs[uint32](p, "limit")
//		return Config{Name: name, Limit: limit}, err
//	})
//
//	buf, n, err := codec.Serialize(configCodec, Config{Name: "a", Limit: 7})
//	cfg, next, err := codec.Deserialize(configCodec, buf, 0)
//
// # Errors
//
// All failures are returned as *errors.Error values carrying the phase,
// the field path, the codec kind and the buffer offset. Kinds fall into
// three classes: format (the bytes are malformed), precondition (the value
// does not fit the resolved codec) and capacity (the buffer is too short or
// a length exceeds Limits).
//
// # Concurrency
//
// Codecs are immutable and safe for concurrent use. The buffer passed to
// Write is owned by the caller for the duration of the call.
package codec
