package codec

import (
	"github.com/wippyai/borsh/codec/internal/types"
)

type Kind = types.Kind

const (
	KindBool          = types.KindBool
	KindU8            = types.KindU8
	KindU16           = types.KindU16
	KindU32           = types.KindU32
	KindU64           = types.KindU64
	KindU128          = types.KindU128
	KindU256          = types.KindU256
	KindU512          = types.KindU512
	KindI8            = types.KindI8
	KindI16           = types.KindI16
	KindI32           = types.KindI32
	KindI64           = types.KindI64
	KindI128          = types.KindI128
	KindI256          = types.KindI256
	KindI512          = types.KindI512
	KindF32           = types.KindF32
	KindF64           = types.KindF64
	KindUnit          = types.KindUnit
	KindPublicKey     = types.KindPublicKey
	KindString        = types.KindString
	KindBytes         = types.KindBytes
	KindArray         = types.KindArray
	KindVec           = types.KindVec
	KindOption        = types.KindOption
	KindEnum          = types.KindEnum
	KindUnion         = types.KindUnion
	KindStruct        = types.KindStruct
	KindDiscriminated = types.KindDiscriminated
)
