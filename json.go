package ethabi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonEntry is one element of the standard JSON contract-ABI array, the
// document solc emits under "abi".
type jsonEntry struct {
	Type            string      `json:"type"`
	Name            string      `json:"name"`
	Inputs          []jsonParam `json:"inputs"`
	Outputs         []jsonParam `json:"outputs"`
	StateMutability string      `json:"stateMutability"`
	Anonymous       bool        `json:"anonymous"`
}

// jsonParam is one parameter entry, carrying tuple components and the
// indexed flag for event parameters.
type jsonParam struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Components []jsonParam `json:"components"`
	Indexed    bool        `json:"indexed"`
}

// ParseJSON builds a registry from a standard JSON contract-ABI document.
// Entries without a "type" tag default to "function"; constructor,
// fallback, and receive entries may appear at most once each and carry no
// name; stateMutability is required wherever calls are encoded.
func ParseJSON(data []byte) (*ContractABI, error) {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &DescriptionError{Context: "json", Reason: err.Error()}
	}

	var defs Definitions
	for i, entry := range entries {
		tag := entry.Type
		if tag == "" {
			tag = "function"
		}
		var err error
		switch tag {
		case "function":
			err = addJSONFunction(&defs, entry)
		case "constructor":
			err = addJSONConstructor(&defs, entry)
		case "event":
			err = addJSONEvent(&defs, entry)
		case "error":
			err = addJSONError(&defs, entry)
		case "fallback":
			err = addJSONFallback(&defs, entry)
		case "receive":
			err = addJSONReceive(&defs, entry)
		default:
			err = &DescriptionError{
				Context: fmt.Sprintf("entry %d", i),
				Reason:  fmt.Sprintf("unknown entry type %q", tag),
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return NewContractABI(defs)
}

// MustParseJSON is ParseJSON, panicking on error.
func MustParseJSON(data []byte) *ContractABI {
	a, err := ParseJSON(data)
	if err != nil {
		panic(err)
	}
	return a
}

func addJSONFunction(defs *Definitions, entry jsonEntry) error {
	mut, err := jsonMutability("function "+entry.Name, entry.StateMutability)
	if err != nil {
		return err
	}
	inputs, err := jsonSignature(entry.Inputs)
	if err != nil {
		return err
	}
	outputs, err := jsonSignature(entry.Outputs)
	if err != nil {
		return err
	}
	m, err := NewMethod(entry.Name, mut, inputs, outputs)
	if err != nil {
		return err
	}
	defs.Methods = append(defs.Methods, m)
	return nil
}

func addJSONConstructor(defs *Definitions, entry jsonEntry) error {
	if defs.Constructor != nil {
		return &DescriptionError{Context: "constructor", Reason: "declared more than once"}
	}
	if entry.Name != "" {
		return &DescriptionError{Context: "constructor", Reason: "must not have a name"}
	}
	if len(entry.Outputs) > 0 {
		return &DescriptionError{Context: "constructor", Reason: "must not have outputs"}
	}
	mut, err := jsonMutability("constructor", entry.StateMutability)
	if err != nil {
		return err
	}
	inputs, err := jsonSignature(entry.Inputs)
	if err != nil {
		return err
	}
	c, err := NewConstructor(inputs, mut)
	if err != nil {
		return err
	}
	defs.Constructor = c
	return nil
}

func addJSONEvent(defs *Definitions, entry jsonEntry) error {
	fields := make([]EventField, len(entry.Inputs))
	for i, p := range entry.Inputs {
		t, err := jsonType(p)
		if err != nil {
			return err
		}
		fields[i] = EventField{Name: p.Name, Type: t, Indexed: p.Indexed}
	}
	e, err := NewEvent(entry.Name, fields, entry.Anonymous)
	if err != nil {
		return err
	}
	defs.Events = append(defs.Events, e)
	return nil
}

func addJSONError(defs *Definitions, entry jsonEntry) error {
	inputs, err := jsonSignature(entry.Inputs)
	if err != nil {
		return err
	}
	e, err := NewError(entry.Name, inputs)
	if err != nil {
		return err
	}
	defs.Errors = append(defs.Errors, e)
	return nil
}

func addJSONFallback(defs *Definitions, entry jsonEntry) error {
	if defs.Fallback != nil {
		return &DescriptionError{Context: "fallback", Reason: "declared more than once"}
	}
	if entry.Name != "" {
		return &DescriptionError{Context: "fallback", Reason: "must not have a name"}
	}
	if len(entry.Inputs) > 0 || len(entry.Outputs) > 0 {
		return &DescriptionError{Context: "fallback", Reason: "takes no parameters"}
	}
	mut, err := jsonMutability("fallback", entry.StateMutability)
	if err != nil {
		return err
	}
	f, err := NewFallback(mut)
	if err != nil {
		return err
	}
	defs.Fallback = f
	return nil
}

func addJSONReceive(defs *Definitions, entry jsonEntry) error {
	if defs.Receive != nil {
		return &DescriptionError{Context: "receive", Reason: "declared more than once"}
	}
	if entry.Name != "" {
		return &DescriptionError{Context: "receive", Reason: "must not have a name"}
	}
	if len(entry.Inputs) > 0 || len(entry.Outputs) > 0 {
		return &DescriptionError{Context: "receive", Reason: "takes no parameters"}
	}
	mut, err := jsonMutability("receive", entry.StateMutability)
	if err != nil {
		return err
	}
	if mut != Payable {
		return &DescriptionError{Context: "receive", Reason: "must be payable"}
	}
	defs.Receive = &Receive{}
	return nil
}

// jsonMutability parses a required stateMutability value.
func jsonMutability(ctx, s string) (Mutability, error) {
	if s == "" {
		return "", &DescriptionError{Context: ctx, Reason: "missing stateMutability"}
	}
	return ParseMutability(s)
}

// jsonSignature resolves a parameter list into a Signature.
func jsonSignature(params []jsonParam) (*Signature, error) {
	out := make([]Param, len(params))
	for i, p := range params {
		t, err := jsonType(p)
		if err != nil {
			return nil, err
		}
		out[i] = Param{Name: p.Name, Type: t}
	}
	return NewSignature(out...)
}

// jsonType resolves one parameter's type. "tuple" forms, with any array
// suffixes, build a struct from the components; everything else parses as
// a canonical type name.
func jsonType(p jsonParam) (Type, error) {
	if !strings.HasPrefix(p.Type, "tuple") {
		if len(p.Components) > 0 {
			return nil, &DescriptionError{Context: p.Type, Reason: "components on a non-tuple parameter"}
		}
		return ParseType(p.Type)
	}
	fields := make([]Field, len(p.Components))
	for i, c := range p.Components {
		t, err := jsonType(c)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{Name: c.Name, Type: t}
	}
	base, err := NewStruct(fields...)
	if err != nil {
		return nil, err
	}
	return applyArraySuffixes(p.Type, base, p.Type[len("tuple"):])
}
