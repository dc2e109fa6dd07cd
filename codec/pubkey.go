package codec

import (
	"github.com/mr-tron/base58"

	"github.com/wippyai/borsh/errors"
)

// PublicKeySize is the byte width of an ed25519 public key.
const PublicKeySize = 32

// PublicKey is a Solana account address.
type PublicKey [PublicKeySize]byte

// String returns the base58 form.
func (k PublicKey) String() string {
	return EncodeBase58(k[:])
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePublicKey decodes a base58 address.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	raw, err := DecodeBase58(s)
	if err != nil {
		return k, err
	}
	if len(raw) != PublicKeySize {
		return k, errors.New(errors.PhaseLoad, errors.KindLengthMismatch).
			Codec(KindPublicKey.String()).
			Value(len(raw)).
			Detail("decoded %d bytes, expected %d", len(raw), PublicKeySize).
			Build()
	}
	copy(k[:], raw)
	return k, nil
}

type publicKeyCodec struct{}

// PublicKeyCodec copies the 32 raw key bytes.
func PublicKeyCodec() FixedCodec[PublicKey] {
	return publicKeyCodec{}
}

func (publicKeyCodec) Kind() Kind    { return KindPublicKey }
func (publicKeyCodec) ByteSize() int { return PublicKeySize }

func (c publicKeyCodec) FixFromValue(PublicKey) (FixedCodec[PublicKey], error) { return c, nil }

func (c publicKeyCodec) FixFromData(cur *Cursor) (FixedCodec[PublicKey], error) {
	return fixSelf[PublicKey](c, cur)
}

func (publicKeyCodec) Write(buf []byte, off int, v PublicKey) error {
	if err := checkBounds(errors.PhaseEncode, KindPublicKey, buf, off, PublicKeySize); err != nil {
		return err
	}
	copy(buf[off:], v[:])
	return nil
}

func (publicKeyCodec) Read(buf []byte, off int) (PublicKey, error) {
	var k PublicKey
	if err := checkBounds(errors.PhaseDecode, KindPublicKey, buf, off, PublicKeySize); err != nil {
		return k, err
	}
	copy(k[:], buf[off:off+PublicKeySize])
	return k, nil
}

// EncodeBase58 encodes b with the Bitcoin alphabet. Leading zero bytes map
// to leading '1's.
func EncodeBase58(b []byte) string {
	return base58.Encode(b)
}

// DecodeBase58 is the inverse of EncodeBase58.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Value(s).
			Cause(err).
			Detail("invalid base58").
			Build()
	}
	return raw, nil
}
