package ethabi

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EncodeTopic renders one value the way an indexed event parameter appears
// in a log topic. Value types occupy the 32-byte topic directly. Bytes and
// string are replaced by the Keccak-256 hash of their raw content; arrays
// and structs by the hash of their packed encoding. For those types the
// original value is not recoverable from the topic.
func EncodeTopic(t Type, v any) (common.Hash, error) {
	v, err := normalize(t, v)
	if err != nil {
		return common.Hash{}, err
	}
	switch t.(type) {
	case *BytesType:
		return crypto.Keccak256Hash(v.([]byte)), nil
	case *StringType:
		return crypto.Keccak256Hash([]byte(v.(string))), nil
	case *ArrayType, *FixedArrayType, *StructType:
		return crypto.Keccak256Hash(topicPreimage(t, v)), nil
	}
	return common.BytesToHash(encodeValue(t, v)), nil
}

// topicPreimage produces the packed form hashed for an indexed array or
// struct: each element's 32-byte-aligned encoding concatenated in place,
// with no length prefixes or offsets, recursing through nested composites.
func topicPreimage(t Type, v any) []byte {
	switch t := t.(type) {
	case *BytesType:
		b := v.([]byte)
		return common.RightPadBytes(b, paddedLength(len(b)))
	case *StringType:
		b := []byte(v.(string))
		return common.RightPadBytes(b, paddedLength(len(b)))
	case *ArrayType:
		var out []byte
		for _, e := range v.([]any) {
			out = append(out, topicPreimage(t.elem, e)...)
		}
		return out
	case *FixedArrayType:
		var out []byte
		for _, e := range v.([]any) {
			out = append(out, topicPreimage(t.elem, e)...)
		}
		return out
	case *StructType:
		elems := v.([]any)
		var out []byte
		for i, f := range t.fields {
			out = append(out, topicPreimage(f.Type, elems[i])...)
		}
		return out
	}
	return encodeValue(t, v)
}

// DecodeTopic recovers an indexed parameter from its topic. Only value
// types round-trip; for bytes, string, arrays and structs the topic holds
// a hash, which is returned as-is.
func DecodeTopic(t Type, topic common.Hash) (any, error) {
	switch t.(type) {
	case *BytesType, *StringType, *ArrayType, *FixedArrayType, *StructType:
		return topic, nil
	}
	return decodeValue(t, topic[:], 0)
}
