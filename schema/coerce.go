package schema

import (
	"encoding/hex"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/borsh/codec"
)

// Coercions accept the shapes dynamic input arrives in: Go integers,
// float64 from JSON, json.Number, decimal strings and *big.Int.

// CoerceToUint64 returns value as a uint64 when it is a non-negative integer.
func CoerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < 1<<64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < 1<<64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	case json.Number:
		return CoerceToUint64(string(v))
	case string:
		u, err := strconv.ParseUint(strings.ReplaceAll(v, "_", ""), 0, 64)
		if err == nil {
			return u, true
		}
	case *big.Int:
		if v != nil && v.IsUint64() {
			return v.Uint64(), true
		}
	}
	return 0, false
}

// CoerceToInt64 returns value as an int64 when it is an integer in range.
func CoerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < math.MaxInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	case json.Number:
		return CoerceToInt64(string(v))
	case string:
		i, err := strconv.ParseInt(strings.ReplaceAll(v, "_", ""), 0, 64)
		if err == nil {
			return i, true
		}
	case *big.Int:
		if v != nil && v.IsInt64() {
			return v.Int64(), true
		}
	}
	return 0, false
}

// CoerceUnsigned narrows value to an unsigned integer of the given width.
func CoerceUnsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64](value any, bits int) (T, bool) {
	u, ok := CoerceToUint64(value)
	if !ok || (bits < 64 && u >= 1<<bits) {
		return 0, false
	}
	return T(u), true
}

// CoerceSigned narrows value to a signed integer of the given width.
func CoerceSigned[T ~int8 | ~int16 | ~int32 | ~int64](value any, bits int) (T, bool) {
	i, ok := CoerceToInt64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if i < -limit || i >= limit {
			return 0, false
		}
	}
	return T(i), true
}

// CoerceToBig returns value as a new *big.Int.
func CoerceToBig(value any) (*big.Int, bool) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case string:
		b, ok := new(big.Int).SetString(strings.ReplaceAll(v, "_", ""), 0)
		return b, ok
	case json.Number:
		return CoerceToBig(string(v))
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return nil, false
		}
		b, _ := big.NewFloat(v).Int(nil)
		return b, true
	}
	if i, ok := CoerceToInt64(value); ok {
		return big.NewInt(i), true
	}
	if u, ok := CoerceToUint64(value); ok {
		return new(big.Int).SetUint64(u), true
	}
	return nil, false
}

func CoerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	if i, ok := CoerceToInt64(value); ok {
		return float64(i), true
	}
	if u, ok := CoerceToUint64(value); ok {
		return float64(u), true
	}
	return 0, false
}

func CoerceToBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	return false, false
}

// CoerceToBytes accepts []byte, "0x"-prefixed hex strings and sequences of
// byte-sized numbers.
func CoerceToBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		if !strings.HasPrefix(v, "0x") {
			return nil, false
		}
		b, err := hex.DecodeString(v[2:])
		return b, err == nil
	case []any:
		out := make([]byte, len(v))
		for i, e := range v {
			b, ok := CoerceUnsigned[uint8](e, 8)
			if !ok {
				return nil, false
			}
			out[i] = b
		}
		return out, true
	}
	return nil, false
}

// CoerceToPublicKey accepts PublicKey values, base58 strings and 32-byte
// slices.
func CoerceToPublicKey(value any) (codec.PublicKey, bool) {
	switch v := value.(type) {
	case codec.PublicKey:
		return v, true
	case *codec.PublicKey:
		if v != nil {
			return *v, true
		}
	case string:
		k, err := codec.ParsePublicKey(v)
		return k, err == nil
	case []byte:
		var k codec.PublicKey
		if len(v) == codec.PublicKeySize {
			copy(k[:], v)
			return k, true
		}
	}
	return codec.PublicKey{}, false
}

// CoerceToList accepts []any and the slice types produced by decoding.
func CoerceToList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []codec.Params:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

// CoerceToParams orders value's entries by fields. value may be Params or a
// map decoded from JSON or YAML.
func CoerceToParams(value any, fields []Field) (codec.Params, bool) {
	switch v := value.(type) {
	case codec.Params:
		return v, true
	case map[string]any:
		out := make(codec.Params, 0, len(fields))
		for _, f := range fields {
			if fv, ok := v[f.Name]; ok {
				out = append(out, codec.Param{Name: f.Name, Value: fv})
			}
		}
		return out, true
	case []any:
		out := make(codec.Params, 0, len(fields))
		for i, f := range fields {
			if i < len(v) {
				out = append(out, codec.Param{Name: f.Name, Value: v[i]})
			}
		}
		return out, true
	}
	return nil, false
}
