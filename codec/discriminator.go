package codec

import (
	"bytes"
	"crypto/sha256"
	"strings"
	"unicode"

	"github.com/wippyai/borsh/errors"
)

// DiscriminatorSize is the width of Anchor account, instruction and event
// discriminators.
const DiscriminatorSize = 8

// AccountDiscriminator returns sha256("account:" + name)[:8].
func AccountDiscriminator(name string) []byte {
	return sighash("account", name)
}

// InstructionDiscriminator returns sha256("global:" + snake_case(name))[:8].
func InstructionDiscriminator(name string) []byte {
	return sighash("global", SnakeCase(name))
}

// EventDiscriminator returns sha256("event:" + name)[:8].
func EventDiscriminator(name string) []byte {
	return sighash("event", name)
}

func sighash(namespace, name string) []byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	out := make([]byte, DiscriminatorSize)
	copy(out, sum[:DiscriminatorSize])
	return out
}

// SnakeCase converts camelCase and PascalCase identifiers to snake_case.
// Acronym runs stay together: "initializeHTTPConfig" becomes
// "initialize_http_config".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			continue
		case unicode.IsUpper(r):
			if i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

type fixedDiscriminated[T any] struct {
	prefix []byte
	inner  FixedCodec[T]
}

type discriminated[T any] struct {
	prefix []byte
	inner  Codec[T]
}

// Discriminated prefixes inner with a constant discriminator. Reads and data
// resolution verify the prefix.
func Discriminated[T any](prefix []byte, inner Codec[T]) Codec[T] {
	p := bytes.Clone(prefix)
	if f, ok := AsFixed(inner); ok {
		return fixedDiscriminated[T]{prefix: p, inner: f}
	}
	return discriminated[T]{prefix: p, inner: inner}
}

func (discriminated[T]) Kind() Kind { return KindDiscriminated }

func (c discriminated[T]) FixFromValue(v T) (FixedCodec[T], error) {
	f, err := c.inner.FixFromValue(v)
	if err != nil {
		return nil, err
	}
	return fixedDiscriminated[T]{prefix: c.prefix, inner: f}, nil
}

func (c discriminated[T]) FixFromData(cur *Cursor) (FixedCodec[T], error) {
	if err := checkPrefix(cur, c.prefix); err != nil {
		return nil, err
	}
	f, err := c.inner.FixFromData(cur)
	if err != nil {
		return nil, err
	}
	return fixedDiscriminated[T]{prefix: c.prefix, inner: f}, nil
}

func checkPrefix(cur *Cursor, prefix []byte) error {
	at := cur.Offset()
	got, err := cur.Peek(len(prefix), KindDiscriminated)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, prefix) {
		return mismatch(errors.PhaseFix, at, got, prefix)
	}
	return cur.Skip(len(prefix), KindDiscriminated)
}

func mismatch(phase errors.Phase, off int, got, want []byte) error {
	return errors.New(phase, errors.KindDiscriminatorMismatch).
		Codec(KindDiscriminated.String()).
		Offset(off).
		Value(bytes.Clone(got)).
		Detail("discriminator %x, expected %x", got, want).
		Build()
}

func (fixedDiscriminated[T]) Kind() Kind { return KindDiscriminated }

func (c fixedDiscriminated[T]) ByteSize() int { return len(c.prefix) + c.inner.ByteSize() }

func (c fixedDiscriminated[T]) FixFromValue(T) (FixedCodec[T], error) { return c, nil }

func (c fixedDiscriminated[T]) FixFromData(cur *Cursor) (FixedCodec[T], error) {
	if err := checkPrefix(cur, c.prefix); err != nil {
		return nil, err
	}
	if err := cur.Skip(c.inner.ByteSize(), c.inner.Kind()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c fixedDiscriminated[T]) Write(buf []byte, off int, v T) error {
	if err := checkBounds(errors.PhaseEncode, KindDiscriminated, buf, off, c.ByteSize()); err != nil {
		return err
	}
	copy(buf[off:], c.prefix)
	return c.inner.Write(buf, off+len(c.prefix), v)
}

func (c fixedDiscriminated[T]) Read(buf []byte, off int) (T, error) {
	var zero T
	if err := checkBounds(errors.PhaseDecode, KindDiscriminated, buf, off, c.ByteSize()); err != nil {
		return zero, err
	}
	if got := buf[off : off+len(c.prefix)]; !bytes.Equal(got, c.prefix) {
		return zero, mismatch(errors.PhaseDecode, off, got, c.prefix)
	}
	return c.inner.Read(buf, off+len(c.prefix))
}
