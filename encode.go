package ethabi

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Wire format constants.
const (
	// WordSize is the width of one ABI word in bytes.
	WordSize = 32

	// SelectorSize is the width of a function or error selector in bytes.
	SelectorSize = 4
)

// encodeTuple lays out one tuple of already-normalized values:
//
//	head: one inline encoding (static element) or one offset word (dynamic
//	      element) per element, in declaration order
//	tail: the full encodings of the dynamic elements, in order
//
// Offsets count bytes from the start of the tuple. The same layout serves
// top-level call arguments, struct fields, and array elements.
func encodeTuple(types []Type, values []any) []byte {
	if len(types) != len(values) {
		panic(fmt.Sprintf("ethabi: internal: %d types for %d values", len(types), len(values)))
	}

	headBytes := 0
	for _, t := range types {
		headBytes += headWords(t) * WordSize
	}

	head := make([]byte, 0, headBytes)
	var tail []byte
	for i, t := range types {
		if t.Dynamic() {
			head = append(head, uintWord(uint64(headBytes+len(tail)))...)
			tail = append(tail, encodeValue(t, values[i])...)
		} else {
			head = append(head, encodeValue(t, values[i])...)
		}
	}
	return append(head, tail...)
}

// headWords returns the number of 32-byte head slots an element occupies:
// its full static width inline, or a single offset word when dynamic.
func headWords(t Type) int {
	if w, ok := t.StaticWords(); ok {
		return w
	}
	return 1
}

// encodeValue produces the standalone encoding of one canonical value:
// the inline words for static types, or length prefix plus content for
// dynamic ones. Values must be in the canonical representation normalize
// produces; anything else is a programming error and panics on the type
// assertion.
func encodeValue(t Type, v any) []byte {
	switch t := t.(type) {
	case *UintType:
		return math.U256Bytes(new(big.Int).Set(v.(*big.Int)))
	case *IntType:
		return math.U256Bytes(new(big.Int).Set(v.(*big.Int)))
	case *BoolType:
		word := make([]byte, WordSize)
		if v.(bool) {
			word[WordSize-1] = 1
		}
		return word
	case *AddressType:
		return common.LeftPadBytes(v.(common.Address).Bytes(), WordSize)
	case *FixedBytesType:
		return common.RightPadBytes(v.([]byte), WordSize)
	case *BytesType:
		return encodeLengthPrefixed(v.([]byte))
	case *StringType:
		return encodeLengthPrefixed([]byte(v.(string)))
	case *ArrayType:
		elems := v.([]any)
		out := uintWord(uint64(len(elems)))
		return append(out, encodeTuple(repeatType(t.elem, len(elems)), elems)...)
	case *FixedArrayType:
		return encodeTuple(repeatType(t.elem, t.size), v.([]any))
	case *StructType:
		types := make([]Type, len(t.fields))
		for i, f := range t.fields {
			types[i] = f.Type
		}
		return encodeTuple(types, v.([]any))
	}
	panic(fmt.Sprintf("ethabi: unhandled type variant %T", t))
}

// encodeLengthPrefixed encodes bytes or string content: a 32-byte big-endian
// length word followed by the content zero-padded up to the next word
// boundary. Empty content encodes as the bare zero length word.
func encodeLengthPrefixed(b []byte) []byte {
	out := uintWord(uint64(len(b)))
	if len(b) == 0 {
		return out
	}
	return append(out, common.RightPadBytes(b, paddedLength(len(b)))...)
}

// paddedLength rounds n up to the next multiple of WordSize.
func paddedLength(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

// uintWord encodes n as one big-endian 32-byte word.
func uintWord(n uint64) []byte {
	word := make([]byte, WordSize)
	binary.BigEndian.PutUint64(word[WordSize-8:], n)
	return word
}

func repeatType(t Type, n int) []Type {
	out := make([]Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}
