package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Encodings accepted for binary input and produced by --encode.
var encodings = []string{"hex", "base64", "base58", "base64+zstd"}

func decodeInput(s, encoding string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	switch encoding {
	case "hex":
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		data, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Load("invalid hex input", err)
		}
		return data, nil
	case "base64":
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.Load("invalid base64 input", err)
		}
		return data, nil
	case "base58":
		return codec.DecodeBase58(s)
	case "base64+zstd":
		compressed, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.Load("invalid base64 input", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Load("zstd decoder", err)
		}
		defer dec.Close()
		data, err := dec.DecodeAll(compressed, nil)
		if err != nil {
			return nil, errors.Load("invalid zstd payload", err)
		}
		return data, nil
	}
	return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unknown encoding %q (want one of %s)", encoding, strings.Join(encodings, ", ")))
}

func encodeOutput(data []byte, encoding string) (string, error) {
	switch encoding {
	case "hex":
		return hex.EncodeToString(data), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "base58":
		return codec.EncodeBase58(data), nil
	case "base64+zstd":
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return "", errors.Load("zstd encoder", err)
		}
		defer enc.Close()
		return base64.StdEncoding.EncodeToString(enc.EncodeAll(data, nil)), nil
	}
	return "", errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unknown encoding %q (want one of %s)", encoding, strings.Join(encodings, ", ")))
}

// parseDiscriminator accepts account:Name, instruction:Name, event:Name and
// hex:<16 hex digits>.
func parseDiscriminator(s string) ([]byte, error) {
	kind, name, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("discriminator %q: want kind:name", s))
	}
	switch kind {
	case "account":
		return codec.AccountDiscriminator(name), nil
	case "instruction", "global":
		return codec.InstructionDiscriminator(name), nil
	case "event":
		return codec.EventDiscriminator(name), nil
	case "hex":
		b, err := hex.DecodeString(name)
		if err != nil {
			return nil, errors.Load("invalid discriminator hex", err)
		}
		return b, nil
	}
	return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("discriminator %q: unknown kind %q", s, kind))
}
