package ethabi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrRevertTooShort indicates revert data with fewer than 4 bytes.
	ErrRevertTooShort = errors.New("ethabi: revert data too short to contain a selector")

	// ErrForeignContract indicates a log entry from a different contract address.
	ErrForeignContract = errors.New("ethabi: log entry originates from a different contract")

	// ErrNoTopics indicates a log entry without topics, which cannot be
	// matched to any event.
	ErrNoTopics = errors.New("ethabi: log entry has no topics")

	// ErrNotMethodCall indicates an output-decoding attempt on a call without a
	// method, such as a constructor payload.
	ErrNotMethodCall = errors.New("ethabi: call is not bound to a method")

	// ErrTooManyArguments indicates more positional arguments than parameters.
	ErrTooManyArguments = errors.New("ethabi: too many positional arguments")

	// ErrMissingArgument indicates a parameter that was never supplied.
	ErrMissingArgument = errors.New("ethabi: parameter not supplied")

	// ErrDuplicateArgument indicates a parameter supplied both positionally and by name.
	ErrDuplicateArgument = errors.New("ethabi: parameter supplied more than once")

	// ErrUnknownParameter indicates a named argument matching no parameter.
	ErrUnknownParameter = errors.New("ethabi: no parameter with this name")
)

// DescriptionError indicates a malformed interface description.
// It is raised while a type or registry is being built, never at call time.
type DescriptionError struct {
	Context string // the entry being built, e.g. "uint7" or "event Transfer"
	Reason  string
}

func (e *DescriptionError) Error() string {
	return fmt.Sprintf("ethabi: invalid ABI description: %s: %s", e.Context, e.Reason)
}

// TypeMismatchError indicates a value that cannot be normalized into a
// declared ABI type. Normalization is all-or-nothing: a single mismatch
// aborts the whole call before any encoding happens.
type TypeMismatchError struct {
	Type   string // canonical name of the target type
	Value  any    // the offending value
	Reason string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("ethabi: cannot use %T as %s: %s", e.Value, e.Type, e.Reason)
}

// ArgumentError attributes a binding or normalization failure to one
// parameter of a method, event, or error signature.
type ArgumentError struct {
	Method string // empty for bare signature encodes
	Name   string // parameter name, when targeted by name
	Index  int    // parameter position, when targeted positionally
	Err    error
}

func (e *ArgumentError) Error() string {
	which := fmt.Sprintf("%d", e.Index)
	if e.Name != "" {
		which = fmt.Sprintf("%q", e.Name)
	}
	if e.Method != "" {
		return fmt.Sprintf("ethabi: argument %s for %q: %v", which, e.Method, e.Err)
	}
	return fmt.Sprintf("ethabi: argument %s: %v", which, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// DecodeError indicates malformed or truncated wire data. It carries the
// byte offset at fault and, for truncation, the expected versus available
// byte counts. Decoding never repairs malformed input.
type DecodeError struct {
	Type   string // canonical name of the type being decoded
	Offset int    // byte offset into the buffer where decoding failed
	Want   int    // bytes required at that offset
	Have   int    // bytes available
	Reason string // set instead of Want/Have for non-truncation faults
}

func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("ethabi: cannot decode %s at offset %d: %s", e.Type, e.Offset, e.Reason)
	}
	return fmt.Sprintf("ethabi: cannot decode %s at offset %d: need %d bytes, have %d", e.Type, e.Offset, e.Want, e.Have)
}

// MethodNotFoundError indicates the ABI doesn't declare the requested method.
type MethodNotFoundError struct {
	Contract common.Address // zero when the lookup wasn't address-bound
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	if e.Contract != (common.Address{}) {
		return fmt.Sprintf("ethabi: method %q not found in contract %s", e.Method, e.Contract.Hex())
	}
	return fmt.Sprintf("ethabi: method %q not found in the ABI", e.Method)
}

// NoOverloadError indicates that none of a name's overloads accepted the
// supplied arguments. It is a dispatch outcome, not a decode failure.
type NoOverloadError struct {
	Name  string
	Arity int // number of positional plus named arguments supplied
}

func (e *NoOverloadError) Error() string {
	return fmt.Sprintf("ethabi: no overload of %q matches the given %d arguments", e.Name, e.Arity)
}

// EventMismatchError indicates a log entry whose topics don't fit the event
// it was decoded against.
type EventMismatchError struct {
	Event  string
	Reason string
}

func (e *EventMismatchError) Error() string {
	return fmt.Sprintf("ethabi: log entry does not match event %q: %s", e.Event, e.Reason)
}

// UnknownEventError indicates a log entry whose topic0 matches no
// non-anonymous event in the ABI.
type UnknownEventError struct {
	Topic0 common.Hash
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("ethabi: no event with topic %s in the ABI", e.Topic0.Hex())
}

// UnknownRevertError indicates revert data whose selector matches no
// declared error and neither of the builtin Error(string)/Panic(uint256)
// selectors.
type UnknownRevertError struct {
	Selector [4]byte
}

func (e *UnknownRevertError) Error() string {
	return fmt.Sprintf("ethabi: selector 0x%x matches no known error", e.Selector)
}
