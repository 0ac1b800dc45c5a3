package ethabi

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// normalize coerces a native Go value into the canonical representation the
// codec operates on, or reports a TypeMismatchError. Canonical
// representations per type kind:
//
//	uint/int    *big.Int
//	bool        bool
//	string      string
//	bytes/bytesN []byte
//	address     common.Address
//	arrays/structs []any
//
// Normalization is strict: integers are range-checked against the declared
// width and never wrapped, fixed lengths must match, and no cross-kind
// coercion (bool to int, hex string to address) is performed.
func normalize(t Type, v any) (any, error) {
	switch t := t.(type) {
	case *UintType:
		return normalizeUint(t, v)
	case *IntType:
		return normalizeInt(t, v)
	case *BytesType:
		return normalizeBytes(t, v)
	case *FixedBytesType:
		return normalizeFixedBytes(t, v)
	case *AddressType:
		return normalizeAddress(t, v)
	case *StringType:
		return normalizeString(t, v)
	case *BoolType:
		return normalizeBool(t, v)
	case *ArrayType:
		return normalizeArray(t, v)
	case *FixedArrayType:
		return normalizeFixedArray(t, v)
	case *StructType:
		return normalizeStruct(t, v)
	}
	panic(fmt.Sprintf("ethabi: unhandled type variant %T", t))
}

func normalizeUint(t *UintType, v any) (any, error) {
	n, ok := toBigInt(v)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected an integer"}
	}
	if n.Sign() < 0 {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  v,
			Reason: fmt.Sprintf("value %s is negative", n),
		}
	}
	if n.Cmp(t.max) > 0 {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  v,
			Reason: fmt.Sprintf("value %s does not fit %d bits", n, t.bits),
		}
	}
	return n, nil
}

func normalizeInt(t *IntType, v any) (any, error) {
	n, ok := toBigInt(v)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected an integer"}
	}
	if n.Cmp(t.min) < 0 || n.Cmp(t.max) > 0 {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  v,
			Reason: fmt.Sprintf("value %s does not fit %d signed bits", n, t.bits),
		}
	}
	return n, nil
}

// toBigInt widens all supported integer inputs to a fresh *big.Int.
func toBigInt(v any) (*big.Int, bool) {
	switch v := v.(type) {
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return v.ToBig(), true
	}
	return nil, false
}

func normalizeBytes(t *BytesType, v any) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected a byte slice"}
	}
	return append([]byte(nil), b...), nil
}

func normalizeFixedBytes(t *FixedBytesType, v any) (any, error) {
	switch v := v.(type) {
	case []byte:
		return fixedBytesExact(t, v, v)
	case string:
		// Strings shorter than the declared width are right-padded with
		// zero bytes; longer strings are rejected.
		if len(v) > t.size {
			return nil, &TypeMismatchError{
				Type:   t.CanonicalName(),
				Value:  v,
				Reason: fmt.Sprintf("expected at most %d bytes, got %d", t.size, len(v)),
			}
		}
		out := make([]byte, t.size)
		copy(out, v)
		return out, nil
	}
	if b, ok := byteArrayBytes(v); ok {
		return fixedBytesExact(t, v, b)
	}
	return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected a byte sequence"}
}

func fixedBytesExact(t *FixedBytesType, orig any, b []byte) (any, error) {
	if len(b) != t.size {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  orig,
			Reason: fmt.Sprintf("expected %d bytes, got %d", t.size, len(b)),
		}
	}
	return append([]byte(nil), b...), nil
}

// byteArrayBytes extracts the contents of any [N]byte value, covering
// common.Hash, selector arrays and the like without enumerating them.
func byteArrayBytes(v any) ([]byte, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	out := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(out), rv)
	return out, true
}

func normalizeAddress(t *AddressType, v any) (any, error) {
	switch v := v.(type) {
	case common.Address:
		return v, nil
	case [20]byte:
		return common.Address(v), nil
	case []byte:
		if len(v) != 20 {
			return nil, &TypeMismatchError{
				Type:   t.CanonicalName(),
				Value:  v,
				Reason: fmt.Sprintf("expected exactly 20 bytes, got %d", len(v)),
			}
		}
		return common.BytesToAddress(v), nil
	}
	return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected an address"}
}

func normalizeString(t *StringType, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected a string"}
	}
	if !utf8.ValidString(s) {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "invalid UTF-8"}
	}
	return s, nil
}

func normalizeBool(t *BoolType, v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected a boolean"}
	}
	return b, nil
}

func normalizeArray(t *ArrayType, v any) (any, error) {
	elems, ok := anySlice(v)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected a sequence"}
	}
	return normalizeElems(t.elem, elems)
}

func normalizeFixedArray(t *FixedArrayType, v any) (any, error) {
	elems, ok := anySlice(v)
	if !ok {
		return nil, &TypeMismatchError{Type: t.CanonicalName(), Value: v, Reason: "expected a sequence"}
	}
	if len(elems) != t.size {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  v,
			Reason: fmt.Sprintf("expected %d elements, got %d", t.size, len(elems)),
		}
	}
	return normalizeElems(t.elem, elems)
}

func normalizeElems(elem Type, elems []any) (any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		n, err := normalize(elem, e)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func normalizeStruct(t *StructType, v any) (any, error) {
	if m, ok := v.(map[string]any); ok {
		return normalizeStructMap(t, m)
	}
	elems, ok := anySlice(v)
	if !ok {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  v,
			Reason: "expected a sequence of fields or a mapping keyed by field name",
		}
	}
	if len(elems) != len(t.fields) {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  v,
			Reason: fmt.Sprintf("expected %d fields, got %d", len(t.fields), len(elems)),
		}
	}
	out := make([]any, len(elems))
	for i, f := range t.fields {
		n, err := normalize(f.Type, elems[i])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func normalizeStructMap(t *StructType, m map[string]any) (any, error) {
	if !t.allNamed {
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  m,
			Reason: "mapping input requires every field to be named",
		}
	}
	if len(m) != len(t.fields) || !structKeysMatch(t, m) {
		want := make([]string, len(t.fields))
		for i, f := range t.fields {
			want[i] = f.Name
		}
		got := make([]string, 0, len(m))
		for k := range m {
			got = append(got, k)
		}
		sort.Strings(got)
		return nil, &TypeMismatchError{
			Type:   t.CanonicalName(),
			Value:  m,
			Reason: fmt.Sprintf("expected fields [%s], got [%s]", strings.Join(want, " "), strings.Join(got, " ")),
		}
	}
	out := make([]any, len(t.fields))
	for i, f := range t.fields {
		n, err := normalize(f.Type, m[f.Name])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func structKeysMatch(t *StructType, m map[string]any) bool {
	for _, f := range t.fields {
		if _, ok := m[f.Name]; !ok {
			return false
		}
	}
	return true
}

// anySlice widens any slice or array input to []any. Strings are not
// sequences here; they belong to the string and fixed-bytes rules.
func anySlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
