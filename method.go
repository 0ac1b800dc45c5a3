package ethabi

import "fmt"

// Mutability classifies how a method interacts with chain state and ether.
// The values match the JSON "stateMutability" tag.
type Mutability string

const (
	// Pure methods read neither contract state nor chain environment.
	Pure Mutability = "pure"

	// View methods read state but never modify it.
	View Mutability = "view"

	// NonPayable methods may modify state and reject attached ether.
	NonPayable Mutability = "nonpayable"

	// Payable methods may modify state and accept attached ether.
	Payable Mutability = "payable"
)

// ParseMutability maps a stateMutability string to its Mutability.
func ParseMutability(s string) (Mutability, error) {
	switch m := Mutability(s); m {
	case Pure, View, NonPayable, Payable:
		return m, nil
	}
	return "", &DescriptionError{Context: "stateMutability", Reason: fmt.Sprintf("unknown value %q", s)}
}

// Payable reports whether calls may carry ether.
func (m Mutability) Payable() bool { return m == Payable }

// Mutating reports whether calls may modify chain state.
func (m Mutability) Mutating() bool { return m == NonPayable || m == Payable }

func (m Mutability) String() string { return string(m) }

// Constructor describes a contract's deployment entry point. It has inputs
// and payability but no name, no selector, and no outputs.
type Constructor struct {
	inputs     *Signature
	mutability Mutability
}

// NewConstructor builds a constructor description. A nil inputs signature
// means no arguments. Constructors are nonpayable or payable only.
func NewConstructor(inputs *Signature, mutability Mutability) (*Constructor, error) {
	if inputs == nil {
		inputs = MustSignature()
	}
	if !mutability.Mutating() {
		return nil, &DescriptionError{Context: "constructor", Reason: fmt.Sprintf("mutability %q is not allowed", mutability)}
	}
	return &Constructor{inputs: inputs, mutability: mutability}, nil
}

// MustConstructor is NewConstructor, panicking on error.
func MustConstructor(inputs *Signature, mutability Mutability) *Constructor {
	c, err := NewConstructor(inputs, mutability)
	if err != nil {
		panic(err)
	}
	return c
}

// Inputs returns the argument signature.
func (c *Constructor) Inputs() *Signature { return c.inputs }

// Mutability returns NonPayable or Payable.
func (c *Constructor) Mutability() Mutability { return c.mutability }

// Call encodes constructor arguments as a selector-less payload, the form
// appended to creation bytecode at deployment.
func (c *Constructor) Call(args ...any) (*Call, error) {
	values, err := c.inputs.bind("constructor", args, nil)
	if err != nil {
		return nil, err
	}
	return &Call{data: encodeTuple(c.inputs.types, values)}, nil
}

// Method describes one callable function: name, input and output
// signatures, state mutability, and the 4-byte selector. The selector is
// the leading 4 bytes of the Keccak-256 hash of the canonical signature,
// computed once at build time.
type Method struct {
	name       string
	mutability Mutability
	inputs     *Signature
	outputs    *Signature
	selector   [4]byte
	scalarOut  bool
}

// NewMethod builds a method description. Nil input or output signatures
// mean empty ones.
func NewMethod(name string, mutability Mutability, inputs, outputs *Signature, opts ...MethodOption) (*Method, error) {
	if err := checkName("method", name); err != nil {
		return nil, err
	}
	switch mutability {
	case Pure, View, NonPayable, Payable:
	default:
		return nil, &DescriptionError{Context: "method " + name, Reason: fmt.Sprintf("unknown mutability %q", mutability)}
	}
	if inputs == nil {
		inputs = MustSignature()
	}
	if outputs == nil {
		outputs = MustSignature()
	}

	var cfg methodConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scalarOutput && outputs.NumParams() != 1 {
		return nil, &DescriptionError{
			Context: "method " + name,
			Reason:  fmt.Sprintf("scalar output requires exactly one output, have %d", outputs.NumParams()),
		}
	}

	m := &Method{
		name:       name,
		mutability: mutability,
		inputs:     inputs,
		outputs:    outputs,
		scalarOut:  cfg.scalarOutput,
	}
	m.selector = SelectorOf(m.CanonicalSignature())
	return m, nil
}

// MustMethod is NewMethod, panicking on error.
func MustMethod(name string, mutability Mutability, inputs, outputs *Signature, opts ...MethodOption) *Method {
	m, err := NewMethod(name, mutability, inputs, outputs, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// Mutability returns the state mutability class.
func (m *Method) Mutability() Mutability { return m.mutability }

// Inputs returns the input signature.
func (m *Method) Inputs() *Signature { return m.inputs }

// Outputs returns the output signature.
func (m *Method) Outputs() *Signature { return m.outputs }

// Selector returns the 4-byte dispatch selector.
func (m *Method) Selector() [4]byte { return m.selector }

// CanonicalSignature returns the hashed form, e.g.
// "transfer(address,uint256)".
func (m *Method) CanonicalSignature() string { return m.name + m.inputs.canonical }

// Call binds positional arguments and produces the call payload: the
// selector followed by the encoded argument tuple.
func (m *Method) Call(args ...any) (*Call, error) {
	return m.CallMixed(args, nil)
}

// CallMixed binds positional arguments to the leading parameters and named
// arguments to the rest, then produces the call payload.
func (m *Method) CallMixed(args []any, named map[string]any) (*Call, error) {
	values, err := m.inputs.bind(m.name, args, named)
	if err != nil {
		return nil, err
	}
	return m.callBound(values), nil
}

// callBound assembles the payload from already-normalized values.
func (m *Method) callBound(values []any) *Call {
	encoded := encodeTuple(m.inputs.types, values)
	data := make([]byte, 0, SelectorSize+len(encoded))
	data = append(data, m.selector[:]...)
	data = append(data, encoded...)
	return &Call{data: data, method: m}
}

// DecodeOutput decodes return data against the output signature. It
// returns the values as a []any in declaration order, or the bare value
// for methods built with ScalarOutput.
func (m *Method) DecodeOutput(data []byte) (any, error) {
	values, err := m.outputs.Decode(data)
	if err != nil {
		return nil, err
	}
	if m.scalarOut {
		return values[0], nil
	}
	return values, nil
}

// MultiMethod groups the overloads sharing one name, kept in declaration
// order. Resolution filters by arity first, then attempts a full bind per
// overload; the first that accepts the arguments wins. A name with a single
// method skips resolution and surfaces that method's own binding errors.
type MultiMethod struct {
	name        string
	methods     []*Method
	byCanonical map[string]*Method
}

// NewMultiMethod groups methods under one name. Two overloads with the
// same canonical input signature are ambiguous and rejected.
func NewMultiMethod(name string, methods ...*Method) (*MultiMethod, error) {
	if len(methods) == 0 {
		return nil, &DescriptionError{Context: "method " + name, Reason: "no overloads"}
	}
	mm := &MultiMethod{
		name:        name,
		methods:     append([]*Method(nil), methods...),
		byCanonical: make(map[string]*Method, len(methods)),
	}
	for _, m := range methods {
		if m.name != name {
			return nil, &DescriptionError{
				Context: "method " + name,
				Reason:  fmt.Sprintf("overload is named %q", m.name),
			}
		}
		if _, dup := mm.byCanonical[m.inputs.canonical]; dup {
			return nil, &DescriptionError{
				Context: "method " + name,
				Reason:  fmt.Sprintf("duplicate overload %s", m.inputs.canonical),
			}
		}
		mm.byCanonical[m.inputs.canonical] = m
	}
	return mm, nil
}

// Name returns the shared method name.
func (mm *MultiMethod) Name() string { return mm.name }

// Methods returns the overloads in declaration order.
func (mm *MultiMethod) Methods() []*Method {
	return append([]*Method(nil), mm.methods...)
}

// ByCanonical returns the overload with the given canonical input
// signature, e.g. "(uint256)".
func (mm *MultiMethod) ByCanonical(sig string) (*Method, bool) {
	m, ok := mm.byCanonical[sig]
	return m, ok
}

// Resolve picks the overload accepting the supplied arguments without
// encoding anything.
func (mm *MultiMethod) Resolve(args []any, named map[string]any) (*Method, error) {
	m, _, err := mm.resolveBind(args, named)
	return m, err
}

// Call resolves an overload for the positional arguments and produces its
// call payload.
func (mm *MultiMethod) Call(args ...any) (*Call, error) {
	return mm.CallMixed(args, nil)
}

// CallMixed resolves an overload for mixed positional and named arguments
// and produces its call payload.
func (mm *MultiMethod) CallMixed(args []any, named map[string]any) (*Call, error) {
	m, values, err := mm.resolveBind(args, named)
	if err != nil {
		return nil, err
	}
	return m.callBound(values), nil
}

func (mm *MultiMethod) resolveBind(args []any, named map[string]any) (*Method, []any, error) {
	if len(mm.methods) == 1 {
		m := mm.methods[0]
		values, err := m.inputs.bind(m.name, args, named)
		if err != nil {
			return nil, nil, err
		}
		return m, values, nil
	}

	arity := len(args) + len(named)
	for _, m := range mm.methods {
		if m.inputs.NumParams() != arity {
			continue
		}
		values, err := m.inputs.bind(m.name, args, named)
		if err != nil {
			continue
		}
		return m, values, nil
	}
	return nil, nil, &NoOverloadError{Name: mm.name, Arity: arity}
}

// Fallback describes the unnamed handler invoked when call data matches no
// selector. It has no inputs, outputs, or selector.
type Fallback struct {
	mutability Mutability
}

// NewFallback builds a fallback description. Fallbacks are nonpayable or
// payable only.
func NewFallback(mutability Mutability) (*Fallback, error) {
	if !mutability.Mutating() {
		return nil, &DescriptionError{Context: "fallback", Reason: fmt.Sprintf("mutability %q is not allowed", mutability)}
	}
	return &Fallback{mutability: mutability}, nil
}

// Mutability returns NonPayable or Payable.
func (f *Fallback) Mutability() Mutability { return f.mutability }

// Receive describes the plain-ether entry point invoked on transfers with
// empty call data. It is always payable.
type Receive struct{}

// Mutability returns Payable.
func (r *Receive) Mutability() Mutability { return Payable }

// checkName validates a declared method, event, or error name.
func checkName(kind, name string) error {
	if name == "" {
		return &DescriptionError{Context: kind, Reason: "empty name"}
	}
	for i, r := range name {
		if r == '_' || r == '$' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			continue
		}
		if i > 0 && '0' <= r && r <= '9' {
			continue
		}
		return &DescriptionError{Context: kind + " " + name, Reason: fmt.Sprintf("invalid character %q in name", r)}
	}
	return nil
}
