package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindU512
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindI256
	KindI512
	KindF32
	KindF64
	KindUnit
	KindPublicKey
	KindString
	KindBytes
	KindArray
	KindVec
	KindOption
	KindEnum
	KindUnion
	KindStruct
	KindDiscriminated
)

var kindNames = [...]string{
	KindBool:          "bool",
	KindU8:            "u8",
	KindU16:           "u16",
	KindU32:           "u32",
	KindU64:           "u64",
	KindU128:          "u128",
	KindU256:          "u256",
	KindU512:          "u512",
	KindI8:            "i8",
	KindI16:           "i16",
	KindI32:           "i32",
	KindI64:           "i64",
	KindI128:          "i128",
	KindI256:          "i256",
	KindI512:          "i512",
	KindF32:           "f32",
	KindF64:           "f64",
	KindUnit:          "unit",
	KindPublicKey:     "pubkey",
	KindString:        "string",
	KindBytes:         "bytes",
	KindArray:         "array",
	KindVec:           "vec",
	KindOption:        "option",
	KindEnum:          "enum",
	KindUnion:         "union",
	KindStruct:        "struct",
	KindDiscriminated: "discriminated",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a scalar number or bool.
func (k Kind) IsPrimitive() bool {
	return k <= KindF64
}

// Width returns the encoded byte width of primitive kinds, 0 otherwise.
func (k Kind) Width() int {
	switch k {
	case KindBool, KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	case KindU128, KindI128:
		return 16
	case KindU256, KindI256:
		return 32
	case KindU512, KindI512:
		return 64
	case KindPublicKey:
		return 32
	default:
		return 0
	}
}

// IsSigned reports whether k is a two's-complement integer kind.
func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI512
}
