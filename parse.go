package ethabi

import (
	"strconv"
	"strings"
)

// ParseType parses a canonical type name such as "uint256", "bytes4",
// "address[]" or "uint8[2][]". The unsized aliases "uint" and "int" resolve
// to their 256-bit forms. Tuples have no standalone textual form; build them
// with NewStruct or through JSON components.
func ParseType(s string) (Type, error) {
	base := s
	var suffixes string
	if idx := strings.IndexByte(s, '['); idx >= 0 {
		base, suffixes = s[:idx], s[idx:]
	}

	t, err := parseElementary(s, base)
	if err != nil {
		return nil, err
	}
	return applyArraySuffixes(s, t, suffixes)
}

// MustParseType is like ParseType but panics on an invalid name.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// parseElementary resolves a bracket-free type name. The full input is
// carried along only for error context.
func parseElementary(full, base string) (Type, error) {
	switch base {
	case "address":
		return Address, nil
	case "bool":
		return Bool, nil
	case "string":
		return String, nil
	case "bytes":
		return Bytes, nil
	}

	switch {
	case strings.HasPrefix(base, "uint"):
		bits, err := parseBits(full, base[len("uint"):])
		if err != nil {
			return nil, err
		}
		return NewUint(bits)

	case strings.HasPrefix(base, "int"):
		bits, err := parseBits(full, base[len("int"):])
		if err != nil {
			return nil, err
		}
		return NewInt(bits)

	case strings.HasPrefix(base, "bytes"):
		size, err := strconv.Atoi(base[len("bytes"):])
		if err != nil {
			return nil, unknownTypeName(full)
		}
		return NewFixedBytes(size)
	}

	return nil, unknownTypeName(full)
}

func parseBits(full, digits string) (int, error) {
	if digits == "" {
		return 256, nil
	}
	bits, err := strconv.Atoi(digits)
	if err != nil {
		return 0, unknownTypeName(full)
	}
	return bits, nil
}

// applyArraySuffixes wraps t in array types for each "[n]" or "[]" group,
// innermost first: "uint8[2][]" is a dynamic array of uint8[2].
func applyArraySuffixes(full string, t Type, suffixes string) (Type, error) {
	rest := suffixes
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return nil, unknownTypeName(full)
		}
		inner := rest[1:end]
		if inner == "" {
			t = NewArray(t)
		} else {
			size, err := strconv.Atoi(inner)
			if err != nil {
				return nil, unknownTypeName(full)
			}
			fixed, err := NewFixedArray(t, size)
			if err != nil {
				return nil, err
			}
			t = fixed
		}
		rest = rest[end+1:]
	}
	return t, nil
}

func unknownTypeName(s string) error {
	return &DescriptionError{Context: s, Reason: "unknown type name"}
}
