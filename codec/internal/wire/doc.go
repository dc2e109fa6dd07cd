// Package wire provides the little-endian primitives and safety limits shared
// by the codec implementations.
//
// This package is internal to the codec.
package wire
