// Package errors provides structured error types for the borsh module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Kinds fall into three families reported by Kind.Class:
//
//   - format: the bytes do not match the expected shape (bad discriminant,
//     bad option tag, length prefix mismatch)
//   - precondition: the caller's value does not fit the codec (wrong array
//     length, wrong string byte length, out-of-range integer)
//   - capacity: a read or write would run past the buffer end
//
// The Error type includes rich context: field path, codec kind, buffer
// offset, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("user", "age").
//		GoType("string").
//		Codec("u32").
//		Detail("cannot encode string as integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseDecode, "u32", 10, 4, 12)
//	err := errors.InvalidOptionTag(errors.PhaseFix, 7, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
