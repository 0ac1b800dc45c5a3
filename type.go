package ethabi

import (
	"fmt"
	"math/big"
	"strings"
)

// Type describes one ABI type. The set of implementations is closed: every
// value is one of UintType, IntType, BytesType, FixedBytesType, AddressType,
// StringType, BoolType, ArrayType, FixedArrayType, or StructType. Codec and
// normalizer switch exhaustively over these, so a new variant cannot be
// added without updating every consumer.
//
// Types are immutable once constructed and safe for concurrent use. The
// canonical name, dynamism flag, and static word width are computed when the
// type is built, never per call.
type Type interface {
	// isType is unexported to seal the interface.
	isType()

	// CanonicalName returns the textual form used in signatures,
	// e.g. "uint256", "bytes4", "(uint256,bool)", "uint8[2][]".
	CanonicalName() string

	// Dynamic reports whether values of this type have variable-length
	// encodings reached through offset indirection.
	Dynamic() bool

	// StaticWords returns the fixed encoded width in 32-byte words.
	// The second result is false for dynamic types, whose width depends
	// on the value.
	StaticWords() (int, bool)

	fmt.Stringer
}

// Field is one member of a struct type. The name is metadata only: two
// structs with the same field types in the same order are wire-compatible
// regardless of names.
type Field struct {
	Name string
	Type Type
}

// UintType is an unsigned integer of 8..256 bits.
type UintType struct {
	bits int
	max  *big.Int
}

// IntType is a two's-complement signed integer of 8..256 bits.
type IntType struct {
	bits int
	min  *big.Int
	max  *big.Int
}

// BytesType is a dynamic-length byte string.
type BytesType struct{}

// FixedBytesType is a byte string of exactly 1..32 bytes.
type FixedBytesType struct {
	size int
}

// AddressType is a 20-byte account address.
type AddressType struct{}

// StringType is a dynamic UTF-8 string.
type StringType struct{}

// BoolType is a boolean.
type BoolType struct{}

// ArrayType is a dynamic-length sequence of a single element type.
type ArrayType struct {
	elem      Type
	canonical string
}

// FixedArrayType is a sequence of a single element type whose length is
// fixed in the description.
type FixedArrayType struct {
	elem      Type
	size      int
	canonical string
	dynamic   bool
	words     int
}

// StructType is an ordered tuple of fields.
type StructType struct {
	fields    []Field
	canonical string
	dynamic   bool
	words     int
	allNamed  bool
}

// Singleton instances for the parameterless types.
var (
	// Bytes is the dynamic-length byte string type.
	Bytes Type = &BytesType{}

	// Address is the 20-byte address type.
	Address Type = &AddressType{}

	// String is the dynamic UTF-8 string type.
	String Type = &StringType{}

	// Bool is the boolean type.
	Bool Type = &BoolType{}
)

// NewUint creates an unsigned integer type. The bit width must be a
// multiple of 8 between 8 and 256.
func NewUint(bits int) (*UintType, error) {
	if err := checkBits("uint", bits); err != nil {
		return nil, err
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	max.Sub(max, big.NewInt(1))
	return &UintType{bits: bits, max: max}, nil
}

// MustUint is like NewUint but panics on an invalid width.
func MustUint(bits int) *UintType {
	t, err := NewUint(bits)
	if err != nil {
		panic(err)
	}
	return t
}

// NewInt creates a signed integer type. The bit width must be a multiple
// of 8 between 8 and 256.
func NewInt(bits int) (*IntType, error) {
	if err := checkBits("int", bits); err != nil {
		return nil, err
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(max)
	max.Sub(max, big.NewInt(1))
	return &IntType{bits: bits, min: min, max: max}, nil
}

// MustInt is like NewInt but panics on an invalid width.
func MustInt(bits int) *IntType {
	t, err := NewInt(bits)
	if err != nil {
		panic(err)
	}
	return t
}

func checkBits(kind string, bits int) error {
	if bits < 8 || bits > 256 || bits%8 != 0 {
		return &DescriptionError{
			Context: fmt.Sprintf("%s%d", kind, bits),
			Reason:  "bit size must be a multiple of 8 between 8 and 256",
		}
	}
	return nil
}

// NewFixedBytes creates a fixed-length byte string type of 1..32 bytes.
func NewFixedBytes(size int) (*FixedBytesType, error) {
	if size < 1 || size > 32 {
		return nil, &DescriptionError{
			Context: fmt.Sprintf("bytes%d", size),
			Reason:  "byte size must be between 1 and 32",
		}
	}
	return &FixedBytesType{size: size}, nil
}

// MustFixedBytes is like NewFixedBytes but panics on an invalid size.
func MustFixedBytes(size int) *FixedBytesType {
	t, err := NewFixedBytes(size)
	if err != nil {
		panic(err)
	}
	return t
}

// NewArray creates a dynamic-length array of the element type.
func NewArray(elem Type) *ArrayType {
	return &ArrayType{
		elem:      elem,
		canonical: elem.CanonicalName() + "[]",
	}
}

// NewFixedArray creates a fixed-length array of the element type.
// The size must be positive.
func NewFixedArray(elem Type, size int) (*FixedArrayType, error) {
	if size < 1 {
		return nil, &DescriptionError{
			Context: fmt.Sprintf("%s[%d]", elem.CanonicalName(), size),
			Reason:  "fixed array size must be positive",
		}
	}
	words := 1
	if ew, ok := elem.StaticWords(); ok {
		words = ew * size
	}
	return &FixedArrayType{
		elem:      elem,
		size:      size,
		canonical: fmt.Sprintf("%s[%d]", elem.CanonicalName(), size),
		dynamic:   elem.Dynamic(),
		words:     words,
	}, nil
}

// MustFixedArray is like NewFixedArray but panics on an invalid size.
func MustFixedArray(elem Type, size int) *FixedArrayType {
	t, err := NewFixedArray(elem, size)
	if err != nil {
		panic(err)
	}
	return t
}

// NewStruct creates a tuple type from the fields in declaration order.
// Non-empty field names must be unique. Values normalize from mappings as
// well as sequences only when every field is named.
func NewStruct(fields ...Field) (*StructType, error) {
	names := make([]string, len(fields))
	allNamed := len(fields) > 0
	seen := make(map[string]struct{}, len(fields))
	dynamic := false
	words := 0
	for i, f := range fields {
		names[i] = f.Type.CanonicalName()
		if f.Name == "" {
			allNamed = false
		} else if _, dup := seen[f.Name]; dup {
			return nil, &DescriptionError{
				Context: "(" + strings.Join(names[:i+1], ",") + ")",
				Reason:  fmt.Sprintf("duplicate field name %q", f.Name),
			}
		} else {
			seen[f.Name] = struct{}{}
		}
		if f.Type.Dynamic() {
			dynamic = true
		} else if fw, ok := f.Type.StaticWords(); ok {
			words += fw
		}
	}
	return &StructType{
		fields:    append([]Field(nil), fields...),
		canonical: "(" + strings.Join(names, ",") + ")",
		dynamic:   dynamic,
		words:     words,
		allNamed:  allNamed,
	}, nil
}

// MustStruct is like NewStruct but panics on duplicate field names.
func MustStruct(fields ...Field) *StructType {
	t, err := NewStruct(fields...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *UintType) isType()       {}
func (t *IntType) isType()        {}
func (t *BytesType) isType()      {}
func (t *FixedBytesType) isType() {}
func (t *AddressType) isType()    {}
func (t *StringType) isType()     {}
func (t *BoolType) isType()       {}
func (t *ArrayType) isType()      {}
func (t *FixedArrayType) isType() {}
func (t *StructType) isType()     {}

// Bits returns the declared bit width.
func (t *UintType) Bits() int { return t.bits }

// CanonicalName returns e.g. "uint256".
func (t *UintType) CanonicalName() string { return fmt.Sprintf("uint%d", t.bits) }

// Dynamic returns false.
func (t *UintType) Dynamic() bool { return false }

// StaticWords returns 1, true.
func (t *UintType) StaticWords() (int, bool) { return 1, true }

func (t *UintType) String() string { return t.CanonicalName() }

// Bits returns the declared bit width.
func (t *IntType) Bits() int { return t.bits }

// CanonicalName returns e.g. "int128".
func (t *IntType) CanonicalName() string { return fmt.Sprintf("int%d", t.bits) }

// Dynamic returns false.
func (t *IntType) Dynamic() bool { return false }

// StaticWords returns 1, true.
func (t *IntType) StaticWords() (int, bool) { return 1, true }

func (t *IntType) String() string { return t.CanonicalName() }

// CanonicalName returns "bytes".
func (t *BytesType) CanonicalName() string { return "bytes" }

// Dynamic returns true.
func (t *BytesType) Dynamic() bool { return true }

// StaticWords returns 0, false.
func (t *BytesType) StaticWords() (int, bool) { return 0, false }

func (t *BytesType) String() string { return "bytes" }

// Size returns the declared byte length.
func (t *FixedBytesType) Size() int { return t.size }

// CanonicalName returns e.g. "bytes4".
func (t *FixedBytesType) CanonicalName() string { return fmt.Sprintf("bytes%d", t.size) }

// Dynamic returns false.
func (t *FixedBytesType) Dynamic() bool { return false }

// StaticWords returns 1, true.
func (t *FixedBytesType) StaticWords() (int, bool) { return 1, true }

func (t *FixedBytesType) String() string { return t.CanonicalName() }

// CanonicalName returns "address".
func (t *AddressType) CanonicalName() string { return "address" }

// Dynamic returns false.
func (t *AddressType) Dynamic() bool { return false }

// StaticWords returns 1, true.
func (t *AddressType) StaticWords() (int, bool) { return 1, true }

func (t *AddressType) String() string { return "address" }

// CanonicalName returns "string".
func (t *StringType) CanonicalName() string { return "string" }

// Dynamic returns true.
func (t *StringType) Dynamic() bool { return true }

// StaticWords returns 0, false.
func (t *StringType) StaticWords() (int, bool) { return 0, false }

func (t *StringType) String() string { return "string" }

// CanonicalName returns "bool".
func (t *BoolType) CanonicalName() string { return "bool" }

// Dynamic returns false.
func (t *BoolType) Dynamic() bool { return false }

// StaticWords returns 1, true.
func (t *BoolType) StaticWords() (int, bool) { return 1, true }

func (t *BoolType) String() string { return "bool" }

// Elem returns the element type.
func (t *ArrayType) Elem() Type { return t.elem }

// CanonicalName returns e.g. "uint8[]".
func (t *ArrayType) CanonicalName() string { return t.canonical }

// Dynamic returns true.
func (t *ArrayType) Dynamic() bool { return true }

// StaticWords returns 0, false.
func (t *ArrayType) StaticWords() (int, bool) { return 0, false }

func (t *ArrayType) String() string { return t.canonical }

// Elem returns the element type.
func (t *FixedArrayType) Elem() Type { return t.elem }

// Size returns the declared element count.
func (t *FixedArrayType) Size() int { return t.size }

// CanonicalName returns e.g. "uint8[2]".
func (t *FixedArrayType) CanonicalName() string { return t.canonical }

// Dynamic returns true when the element type is dynamic.
func (t *FixedArrayType) Dynamic() bool { return t.dynamic }

// StaticWords returns size x element words for static element types.
func (t *FixedArrayType) StaticWords() (int, bool) {
	if t.dynamic {
		return 0, false
	}
	return t.words, true
}

func (t *FixedArrayType) String() string { return t.canonical }

// Fields returns the fields in declaration order.
func (t *StructType) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// NumFields returns the field count.
func (t *StructType) NumFields() int { return len(t.fields) }

// CanonicalName returns e.g. "(uint256,bool)". Field names never appear.
func (t *StructType) CanonicalName() string { return t.canonical }

// Dynamic returns true when any field type is dynamic.
func (t *StructType) Dynamic() bool { return t.dynamic }

// StaticWords returns the summed field words for all-static structs.
func (t *StructType) StaticWords() (int, bool) {
	if t.dynamic {
		return 0, false
	}
	return t.words, true
}

func (t *StructType) String() string { return t.canonical }
