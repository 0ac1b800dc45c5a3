package ethabi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Definitions collects the pieces handed to NewContractABI. Zero-value
// fields are valid: a nil Constructor means the implicit zero-argument
// nonpayable one, nil Fallback and Receive mean the contract declares
// neither.
type Definitions struct {
	Constructor *Constructor
	Fallback    *Fallback
	Receive     *Receive
	Methods     []*Method
	Events      []*Event
	Errors      []*Error
}

// ContractABI is the immutable registry of one contract interface. Every
// lookup table, selector, and topic is derived at construction; a built
// value is safe for unsynchronized concurrent reads and is never modified
// afterwards.
type ContractABI struct {
	constructor *Constructor
	fallback    *Fallback
	receive     *Receive
	methods     map[string]*MultiMethod
	events      map[string]*Event
	errors      map[string][]*Error
	byTopic     map[common.Hash]*Event
	bySelector  map[[4]byte]*Error
}

// NewContractABI assembles a registry from programmatic definitions.
// Methods sharing a name become overload groups; events must have unique
// names; errors may overload like methods.
func NewContractABI(defs Definitions) (*ContractABI, error) {
	a := &ContractABI{
		constructor: defs.Constructor,
		fallback:    defs.Fallback,
		receive:     defs.Receive,
		methods:     make(map[string]*MultiMethod),
		events:      make(map[string]*Event, len(defs.Events)),
		errors:      make(map[string][]*Error),
		byTopic:     make(map[common.Hash]*Event),
		bySelector:  make(map[[4]byte]*Error),
	}
	if a.constructor == nil {
		a.constructor = MustConstructor(nil, NonPayable)
	}

	grouped := make(map[string][]*Method, len(defs.Methods))
	var order []string
	for i, m := range defs.Methods {
		if m == nil {
			return nil, &DescriptionError{Context: "methods", Reason: fmt.Sprintf("entry %d is nil", i)}
		}
		if _, seen := grouped[m.name]; !seen {
			order = append(order, m.name)
		}
		grouped[m.name] = append(grouped[m.name], m)
	}
	for _, name := range order {
		mm, err := NewMultiMethod(name, grouped[name]...)
		if err != nil {
			return nil, err
		}
		a.methods[name] = mm
	}

	for i, e := range defs.Events {
		if e == nil {
			return nil, &DescriptionError{Context: "events", Reason: fmt.Sprintf("entry %d is nil", i)}
		}
		if _, dup := a.events[e.name]; dup {
			return nil, &DescriptionError{Context: "event " + e.name, Reason: "duplicate event name"}
		}
		a.events[e.name] = e
		if !e.anonymous {
			a.byTopic[e.topic0] = e
		}
	}

	for i, e := range defs.Errors {
		if e == nil {
			return nil, &DescriptionError{Context: "errors", Reason: fmt.Sprintf("entry %d is nil", i)}
		}
		for _, prev := range a.errors[e.name] {
			if prev.inputs.canonical == e.inputs.canonical {
				return nil, &DescriptionError{
					Context: "error " + e.name,
					Reason:  fmt.Sprintf("duplicate overload %s", e.inputs.canonical),
				}
			}
		}
		a.errors[e.name] = append(a.errors[e.name], e)
		a.bySelector[e.selector] = e
	}
	return a, nil
}

// MustContractABI is NewContractABI, panicking on error.
func MustContractABI(defs Definitions) *ContractABI {
	a, err := NewContractABI(defs)
	if err != nil {
		panic(err)
	}
	return a
}

// Constructor returns the deployment entry point. It is never nil: absent
// a declaration, the implicit zero-argument nonpayable constructor is
// returned.
func (a *ContractABI) Constructor() *Constructor { return a.constructor }

// Fallback returns the fallback handler, or nil when the contract declares
// none.
func (a *ContractABI) Fallback() *Fallback { return a.fallback }

// Receive returns the plain-ether entry point, or nil when the contract
// declares none.
func (a *ContractABI) Receive() *Receive { return a.receive }

// Method returns the overload group declared under name.
func (a *ContractABI) Method(name string) (*MultiMethod, bool) {
	mm, ok := a.methods[name]
	return mm, ok
}

// Event returns the event declared under name.
func (a *ContractABI) Event(name string) (*Event, bool) {
	e, ok := a.events[name]
	return e, ok
}

// Errors returns the error overloads declared under name, in declaration
// order.
func (a *ContractABI) Errors(name string) []*Error {
	return append([]*Error(nil), a.errors[name]...)
}

// MethodNames returns the declared method names, sorted.
func (a *ContractABI) MethodNames() []string {
	names := make([]string, 0, len(a.methods))
	for name := range a.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EventNames returns the declared event names, sorted.
func (a *ContractABI) EventNames() []string {
	names := make([]string, 0, len(a.events))
	for name := range a.events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorNames returns the declared error names, sorted.
func (a *ContractABI) ErrorNames() []string {
	names := make([]string, 0, len(a.errors))
	for name := range a.errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call encodes a method call by name with positional arguments, resolving
// overloads as needed.
func (a *ContractABI) Call(name string, args ...any) (*Call, error) {
	return a.CallMixed(name, args, nil)
}

// CallMixed encodes a method call by name with positional arguments bound
// to the leading parameters and named arguments to the rest.
func (a *ContractABI) CallMixed(name string, args []any, named map[string]any) (*Call, error) {
	mm, ok := a.methods[name]
	if !ok {
		return nil, &MethodNotFoundError{Method: name}
	}
	return mm.CallMixed(args, named)
}

// MatchLog finds the non-anonymous event matching a log entry's first
// topic and decodes the entry against it. Anonymous events carry no hash
// topic and are never matched here; decode those with Event.DecodeLog
// directly.
func (a *ContractABI) MatchLog(topics []common.Hash, data []byte) (*Event, map[string]any, error) {
	if len(topics) == 0 {
		return nil, nil, ErrNoTopics
	}
	e, ok := a.byTopic[topics[0]]
	if !ok {
		return nil, nil, &UnknownEventError{Topic0: topics[0]}
	}
	fields, err := e.DecodeLog(topics, data)
	if err != nil {
		return nil, nil, err
	}
	return e, fields, nil
}

// ResolveError matches revert data to a declared error by selector,
// falling back to the builtin Error(string) and Panic(uint256) shapes,
// and decodes the fields.
func (a *ContractABI) ResolveError(data []byte) (*Error, map[string]any, error) {
	sel, err := revertSelector(data)
	if err != nil {
		return nil, nil, err
	}
	e, ok := a.bySelector[sel]
	if !ok {
		switch sel {
		case LegacyError.selector:
			e = LegacyError
		case PanicError.selector:
			e = PanicError
		default:
			return nil, nil, &UnknownRevertError{Selector: sel}
		}
	}
	fields, err := e.DecodeFields(data)
	if err != nil {
		return nil, nil, err
	}
	return e, fields, nil
}

// String renders the interface one declaration per line: constructor,
// receive and fallback when present, then functions, events, and errors,
// each group sorted by name with overloads in declaration order.
func (a *ContractABI) String() string {
	var b strings.Builder
	b.WriteString("constructor")
	b.WriteString(a.constructor.inputs.String())
	if a.constructor.mutability.Payable() {
		b.WriteString(" payable")
	}
	if a.receive != nil {
		b.WriteString("\nreceive() payable")
	}
	if a.fallback != nil {
		b.WriteString("\nfallback()")
		if a.fallback.mutability.Payable() {
			b.WriteString(" payable")
		}
	}
	for _, name := range a.MethodNames() {
		for _, m := range a.methods[name].methods {
			b.WriteString("\nfunction ")
			b.WriteString(m.name)
			b.WriteString(m.inputs.String())
			switch m.mutability {
			case Pure, View, Payable:
				b.WriteByte(' ')
				b.WriteString(string(m.mutability))
			}
			if m.outputs.NumParams() > 0 {
				b.WriteString(" returns ")
				b.WriteString(m.outputs.String())
			}
		}
	}
	for _, name := range a.EventNames() {
		e := a.events[name]
		b.WriteString("\nevent ")
		b.WriteString(e.name)
		b.WriteString(renderEventFields(e.fields))
		if e.anonymous {
			b.WriteString(" anonymous")
		}
	}
	for _, name := range a.ErrorNames() {
		for _, e := range a.errors[name] {
			b.WriteString("\nerror ")
			b.WriteString(e.name)
			b.WriteString(e.inputs.String())
		}
	}
	return b.String()
}

// renderEventFields renders an event parameter list with indexed markers,
// e.g. "(address indexed from, uint256 value)".
func renderEventFields(fields []EventField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Type.String()
		if f.Indexed {
			parts[i] += " indexed"
		}
		if f.Name != "" {
			parts[i] += " " + f.Name
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
