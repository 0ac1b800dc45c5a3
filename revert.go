package ethabi

// Builtin revert shapes every contract can raise without declaring them.
var (
	// LegacyError is the builtin Error(string) revert produced by
	// require(..., "reason") and plain revert("reason").
	LegacyError = MustError("Error", MustSignature(Param{Name: "message", Type: String}))

	// PanicError is the builtin Panic(uint256) revert produced by
	// compiler-inserted checks such as overflow and division by zero.
	PanicError = MustError("Panic", MustSignature(Param{Name: "code", Type: MustUint(256)}))
)

// Error describes one declared custom error: name, fields, and the 4-byte
// selector derived from the canonical signature the same way method
// selectors are.
type Error struct {
	name     string
	inputs   *Signature
	selector [4]byte
}

// NewError builds an error description. A nil inputs signature means no
// fields.
func NewError(name string, inputs *Signature) (*Error, error) {
	if err := checkName("error", name); err != nil {
		return nil, err
	}
	if inputs == nil {
		inputs = MustSignature()
	}
	e := &Error{name: name, inputs: inputs}
	e.selector = SelectorOf(e.CanonicalSignature())
	return e, nil
}

// MustError is NewError, panicking on error.
func MustError(name string, inputs *Signature) *Error {
	e, err := NewError(name, inputs)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the error name.
func (e *Error) Name() string { return e.name }

// Inputs returns the field signature.
func (e *Error) Inputs() *Signature { return e.inputs }

// Selector returns the 4-byte selector prefixed to revert data.
func (e *Error) Selector() [4]byte { return e.selector }

// CanonicalSignature returns the hashed form, e.g.
// "InsufficientBalance(uint256,uint256)".
func (e *Error) CanonicalSignature() string { return e.name + e.inputs.canonical }

// Encode renders a revert payload: the selector followed by the encoded
// field tuple.
func (e *Error) Encode(args ...any) ([]byte, error) {
	values, err := e.inputs.bind(e.name, args, nil)
	if err != nil {
		return nil, err
	}
	encoded := encodeTuple(e.inputs.types, values)
	data := make([]byte, 0, SelectorSize+len(encoded))
	data = append(data, e.selector[:]...)
	data = append(data, encoded...)
	return data, nil
}

// DecodeFields decodes revert data against this error. The payload must
// begin with this error's selector; the fields decode like DecodeToMap.
func (e *Error) DecodeFields(data []byte) (map[string]any, error) {
	sel, err := revertSelector(data)
	if err != nil {
		return nil, err
	}
	if sel != e.selector {
		return nil, &UnknownRevertError{Selector: sel}
	}
	return e.inputs.DecodeToMap(data[SelectorSize:])
}

// revertSelector splits the leading 4 selector bytes off revert data.
func revertSelector(data []byte) ([4]byte, error) {
	var sel [4]byte
	if len(data) < SelectorSize {
		return sel, ErrRevertTooShort
	}
	copy(sel[:], data)
	return sel, nil
}
