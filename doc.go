// Package borsh implements the Borsh binary serialization format in Go.
//
// Borsh is the deterministic, non-self-describing encoding used by Solana
// programs and NEAR contracts. A value is written field after field in
// declaration order. There is no framing beyond length prefixes and variant
// tags, so a decoder has to be told the layout.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	borsh/               Schema-driven Marshal and Unmarshal helpers
//	├── codec/           Typed codecs, the fixed/fixable model, Serialize/Deserialize
//	├── schema/          Type expressions, registries, layout and WIT conversion
//	├── guestmem/        Encoding into wazero guest linear memory
//	├── errors/          Structured error types for debugging
//	└── cmd/borsh-inspect/  Command line decoder and encoder
//
// # Fixed and Fixable Codecs
//
// Every codec is fixable: given a value to write, or bytes to read, it
// resolves to a fixed codec whose byte size is known. Primitives are fixed
// from the start. A string or vec resolves once its length is known, and an
// option or enum once its tag is known. Serialize resolves, allocates exactly
// ByteSize bytes and writes in one pass.
//
// # Quick Start
//
// Typed codecs, composed in Go:
//
//	type Transfer struct {
//	    To     codec.PublicKey
//	    Amount uint64
//	}
//
//	transferCodec := codec.Struct([]codec.Field[Transfer]{
//	    codec.NewField[Transfer, codec.PublicKey]("to", codec.PublicKeyCodec(), func(t Transfer) codec.PublicKey { return t.To }),
//	    codec.NewField[Transfer, uint64]("amount", codec.U64, func(t Transfer) uint64 { return t.Amount }),
//	}, decodeTransfer)
//
//	data, _, err := codec.Serialize(transferCodec, Transfer{Amount: 5})
//
// Dynamic values, described by a type expression:
//
//	data, err := borsh.Marshal("struct { to: pubkey, amount: u64 }",
//	    map[string]any{"to": key.String(), "amount": 5})
//
//	v, err := borsh.Unmarshal("struct { to: pubkey, amount: u64 }", data)
//
// # Thread Safety
//
// Codecs are immutable once built and safe for concurrent use. A Registry
// may be shared across goroutines.
package borsh
