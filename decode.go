package ethabi

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

const maxInt = int(^uint(0) >> 1)

// decodeTuple is the strict inverse of encodeTuple: one head slot per
// element, offsets followed for dynamic elements, recursion for composites.
// data is the region owned by the tuple; base is its absolute offset in the
// original buffer, carried only for error reporting. Decoded values use the
// same canonical representations normalize produces.
//
// Decoding never repairs malformed input: every offset and length is
// validated against the buffer before anything is allocated or sliced.
func decodeTuple(types []Type, data []byte, base int) ([]any, error) {
	out := make([]any, len(types))
	pos := 0
	for i, t := range types {
		width := headWords(t) * WordSize
		if len(data)-pos < width {
			return nil, &DecodeError{Type: t.CanonicalName(), Offset: base + pos, Want: width, Have: len(data) - pos}
		}
		if t.Dynamic() {
			off, ok := wordUint(data[pos : pos+WordSize])
			if !ok || off > len(data) {
				return nil, &DecodeError{Type: t.CanonicalName(), Offset: base + pos, Reason: "offset out of range"}
			}
			v, err := decodeValue(t, data[off:], base+off)
			if err != nil {
				return nil, err
			}
			out[i] = v
		} else {
			v, err := decodeValue(t, data[pos:pos+width], base+pos)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		pos += width
	}
	return out, nil
}

// decodeValue decodes one value whose encoding begins at data[0]. For
// dynamic types data extends to the end of the enclosing region, since the
// value's own extent is not known until its length word is read.
func decodeValue(t Type, data []byte, base int) (any, error) {
	switch t := t.(type) {
	case *UintType:
		word, err := wantWord(t, data, base)
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(word)
		if n.Cmp(t.max) > 0 {
			return nil, &DecodeError{
				Type:   t.CanonicalName(),
				Offset: base,
				Reason: fmt.Sprintf("value %s does not fit %d bits", n, t.bits),
			}
		}
		return n, nil

	case *IntType:
		word, err := wantWord(t, data, base)
		if err != nil {
			return nil, err
		}
		n := math.S256(new(big.Int).SetBytes(word))
		if n.Cmp(t.min) < 0 || n.Cmp(t.max) > 0 {
			return nil, &DecodeError{
				Type:   t.CanonicalName(),
				Offset: base,
				Reason: fmt.Sprintf("value %s does not fit %d signed bits", n, t.bits),
			}
		}
		return n, nil

	case *BoolType:
		word, err := wantWord(t, data, base)
		if err != nil {
			return nil, err
		}
		for _, b := range word[:WordSize-1] {
			if b != 0 {
				return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Reason: "nonzero padding in boolean word"}
			}
		}
		switch word[WordSize-1] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, &DecodeError{
			Type:   t.CanonicalName(),
			Offset: base,
			Reason: fmt.Sprintf("boolean byte is %#04x", word[WordSize-1]),
		}

	case *AddressType:
		word, err := wantWord(t, data, base)
		if err != nil {
			return nil, err
		}
		for _, b := range word[:WordSize-common.AddressLength] {
			if b != 0 {
				return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Reason: "nonzero padding in address word"}
			}
		}
		return common.BytesToAddress(word[WordSize-common.AddressLength:]), nil

	case *FixedBytesType:
		word, err := wantWord(t, data, base)
		if err != nil {
			return nil, err
		}
		for _, b := range word[t.size:] {
			if b != 0 {
				return nil, &DecodeError{
					Type:   t.CanonicalName(),
					Offset: base,
					Reason: fmt.Sprintf("nonzero padding after %d bytes", t.size),
				}
			}
		}
		return append([]byte(nil), word[:t.size]...), nil

	case *BytesType:
		return decodeLengthPrefixed(t, data, base)

	case *StringType:
		b, err := decodeLengthPrefixed(t, data, base)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, &DecodeError{Type: t.CanonicalName(), Offset: base + WordSize, Reason: "invalid UTF-8"}
		}
		return string(b), nil

	case *ArrayType:
		if len(data) < WordSize {
			return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Want: WordSize, Have: len(data)}
		}
		count, ok := wordUint(data[:WordSize])
		if !ok {
			return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Reason: "length out of range"}
		}
		elemHead := headWords(t.elem) * WordSize
		avail := len(data) - WordSize
		if count > maxInt/elemHead {
			return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Reason: "length out of range"}
		}
		if want := count * elemHead; want > avail {
			return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Want: want, Have: avail}
		}
		return decodeTuple(repeatType(t.elem, count), data[WordSize:], base+WordSize)

	case *FixedArrayType:
		return decodeTuple(repeatType(t.elem, t.size), data, base)

	case *StructType:
		types := make([]Type, len(t.fields))
		for i, f := range t.fields {
			types[i] = f.Type
		}
		return decodeTuple(types, data, base)
	}
	panic(fmt.Sprintf("ethabi: unhandled type variant %T", t))
}

// decodeLengthPrefixed reads a length word and the following content,
// validating both against the remaining buffer before copying.
func decodeLengthPrefixed(t Type, data []byte, base int) ([]byte, error) {
	if len(data) < WordSize {
		return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Want: WordSize, Have: len(data)}
	}
	length, ok := wordUint(data[:WordSize])
	if !ok {
		return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Reason: "length out of range"}
	}
	if length > len(data)-WordSize {
		return nil, &DecodeError{Type: t.CanonicalName(), Offset: base + WordSize, Want: length, Have: len(data) - WordSize}
	}
	return append([]byte(nil), data[WordSize:WordSize+length]...), nil
}

// wantWord slices one 32-byte word or reports the missing byte count.
func wantWord(t Type, data []byte, base int) ([]byte, error) {
	if len(data) < WordSize {
		return nil, &DecodeError{Type: t.CanonicalName(), Offset: base, Want: WordSize, Have: len(data)}
	}
	return data[:WordSize], nil
}

// wordUint reads a 32-byte word as a non-negative integer fitting int.
func wordUint(word []byte) (int, bool) {
	n := new(big.Int).SetBytes(word)
	if !n.IsUint64() || n.Uint64() > uint64(maxInt) {
		return 0, false
	}
	return int(n.Uint64()), true
}
