package ethabi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SelectorOf hashes a canonical signature, e.g.
// "transfer(address,uint256)", to the 4-byte selector methods and errors
// are dispatched on.
func SelectorOf(canonicalSig string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(canonicalSig)))
	return sel
}

// TopicOf hashes a canonical event signature, e.g.
// "Transfer(address,address,uint256)", to the topic0 hash non-anonymous
// log entries carry.
func TopicOf(canonicalSig string) common.Hash {
	return crypto.Keccak256Hash([]byte(canonicalSig))
}

// Param is one named, typed parameter of a method, error, or constructor
// signature. The name may be empty; unnamed parameters can only be bound
// positionally.
type Param struct {
	Name string
	Type Type
}

// Signature is an immutable ordered parameter list. Everything derived from
// it is computed once at build time: the canonical type-only form that feeds
// selector and topic hashing, the type list, and the name index.
type Signature struct {
	params    []Param
	types     []Type
	canonical string
	byName    map[string]int
}

// NewSignature builds a signature from parameters in declaration order.
// Every parameter needs a type, and non-empty names must be unique.
func NewSignature(params ...Param) (*Signature, error) {
	s := &Signature{
		params: append([]Param(nil), params...),
		types:  make([]Type, len(params)),
		byName: make(map[string]int, len(params)),
	}
	for i, p := range params {
		if p.Type == nil {
			return nil, &DescriptionError{Context: "signature", Reason: fmt.Sprintf("parameter %d has no type", i)}
		}
		s.types[i] = p.Type
		if p.Name == "" {
			continue
		}
		if _, dup := s.byName[p.Name]; dup {
			return nil, &DescriptionError{Context: "signature", Reason: fmt.Sprintf("duplicate parameter name %q", p.Name)}
		}
		s.byName[p.Name] = i
	}
	s.canonical = canonicalTypes(s.types)
	return s, nil
}

// MustSignature is NewSignature, panicking on error.
func MustSignature(params ...Param) *Signature {
	s, err := NewSignature(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// canonicalTypes renders the parenthesized comma-joined canonical type
// names, the exact form hashed for selectors and topics.
func canonicalTypes(types []Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.CanonicalName()
	}
	return "(" + strings.Join(names, ",") + ")"
}

// NumParams returns the number of parameters.
func (s *Signature) NumParams() int { return len(s.params) }

// Param returns the parameter at position i.
func (s *Signature) Param(i int) Param { return s.params[i] }

// Params returns a copy of the parameter list.
func (s *Signature) Params() []Param { return append([]Param(nil), s.params...) }

// Canonical returns the type-only form, e.g. "(address,uint256)".
func (s *Signature) Canonical() string { return s.canonical }

// String renders the signature with parameter names, e.g.
// "(address to, uint256 value)".
func (s *Signature) String() string {
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = p.Type.String()
		if p.Name != "" {
			parts[i] += " " + p.Name
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Encode binds positional arguments against the parameters and renders the
// tuple encoding.
func (s *Signature) Encode(args ...any) ([]byte, error) {
	return s.EncodeMixed(args, nil)
}

// EncodeMixed binds positional arguments to the leading parameters and named
// arguments to the rest, then renders the tuple encoding.
func (s *Signature) EncodeMixed(args []any, named map[string]any) ([]byte, error) {
	values, err := s.bind("", args, named)
	if err != nil {
		return nil, err
	}
	return encodeTuple(s.types, values), nil
}

// Decode decodes one tuple of this signature's types from data, returning
// the values in declaration order.
func (s *Signature) Decode(data []byte) ([]any, error) {
	return decodeTuple(s.types, data, 0)
}

// DecodeToMap decodes like Decode and keys the result by parameter name.
// Unnamed parameters appear under positional keys "_0", "_1", and so on.
func (s *Signature) DecodeToMap(data []byte) (map[string]any, error) {
	values, err := s.Decode(data)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(values))
	for i := range s.params {
		out[s.key(i)] = values[i]
	}
	return out, nil
}

func (s *Signature) key(i int) string {
	if name := s.params[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("_%d", i)
}

// bind lays values onto parameters: positional arguments fill the leading
// parameters, named arguments fill the rest by parameter name. Every
// parameter must receive exactly one value and every value must normalize;
// any failure aborts the bind before a single byte is encoded. method is
// carried into error context only.
func (s *Signature) bind(method string, args []any, named map[string]any) ([]any, error) {
	if len(args) > len(s.params) {
		return nil, fmt.Errorf("%w: got %d for %d parameters", ErrTooManyArguments, len(args), len(s.params))
	}

	values := make([]any, len(s.params))
	bound := make([]bool, len(s.params))
	for i, a := range args {
		values[i] = a
		bound[i] = true
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		i, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		if bound[i] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateArgument, name)
		}
		values[i] = named[name]
		bound[i] = true
	}

	for i, ok := range bound {
		if ok {
			continue
		}
		if name := s.params[i].Name; name != "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingArgument, name)
		}
		return nil, fmt.Errorf("%w: index %d", ErrMissingArgument, i)
	}

	for i, p := range s.params {
		v, err := normalize(p.Type, values[i])
		if err != nil {
			return nil, &ArgumentError{Method: method, Name: p.Name, Index: i, Err: err}
		}
		values[i] = v
	}
	return values, nil
}
