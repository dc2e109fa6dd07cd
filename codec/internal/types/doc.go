// Package types defines the codec kind discriminator.
//
// Kind names every shape the codec engine can encode (primitive, string,
// vector, option, union, struct, ...). Kinds appear in error messages and
// drive the width tables for primitive codecs.
//
// This package is internal to the codec.
package types
