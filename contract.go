package ethabi

import (
	"fmt"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Call is one encoded invocation, ready to be placed on the wire. Call is
// immutable; Data returns a copy.
type Call struct {
	data   []byte
	method *Method // nil for constructor payloads
}

// Data returns the call payload: selector plus arguments for method calls,
// bare argument tuple for constructor payloads.
func (c *Call) Data() []byte {
	return append([]byte(nil), c.data...)
}

// Selector returns the leading 4 bytes, or false for constructor payloads,
// which have none.
func (c *Call) Selector() ([4]byte, bool) {
	if c.method == nil {
		return [4]byte{}, false
	}
	return c.method.selector, true
}

// Method returns the method this call was encoded against, or nil for
// constructor payloads.
func (c *Call) Method() *Method {
	return c.method
}

// DecodeOutput decodes return data against the called method's outputs.
func (c *Call) DecodeOutput(ret []byte) (any, error) {
	if c.method == nil {
		return nil, ErrNotMethodCall
	}
	return c.method.DecodeOutput(ret)
}

// CompiledContract pairs an interface with its creation bytecode, the form
// a contract takes before deployment.
type CompiledContract struct {
	abi      *ContractABI
	bytecode []byte
}

// NewCompiledContract wraps an interface and its creation bytecode.
func NewCompiledContract(contractABI *ContractABI, bytecode []byte) (*CompiledContract, error) {
	if contractABI == nil {
		return nil, &DescriptionError{Context: "compiled contract", Reason: "nil ABI"}
	}
	if len(bytecode) == 0 {
		return nil, &DescriptionError{Context: "compiled contract", Reason: "empty bytecode"}
	}
	return &CompiledContract{abi: contractABI, bytecode: append([]byte(nil), bytecode...)}, nil
}

// ABI returns the contract interface.
func (c *CompiledContract) ABI() *ContractABI {
	return c.abi
}

// Deploy encodes a deployment payload: the creation bytecode followed by
// the encoded constructor arguments.
func (c *CompiledContract) Deploy(args ...any) (*DeployCall, error) {
	ctor := c.abi.Constructor()
	call, err := ctor.Call(args...)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, len(c.bytecode)+len(call.data))
	data = append(data, c.bytecode...)
	data = append(data, call.data...)
	return &DeployCall{data: data, payable: ctor.mutability.Payable()}, nil
}

// DeployCall is one encoded contract deployment.
type DeployCall struct {
	data    []byte
	payable bool
}

// Data returns the deployment payload.
func (d *DeployCall) Data() []byte {
	return append([]byte(nil), d.data...)
}

// Payable reports whether the deployment may carry ether.
func (d *DeployCall) Payable() bool {
	return d.payable
}

// DeployedContract binds an interface to a chain address. Calls encoded
// through it carry the target, and log entries are checked against it.
type DeployedContract struct {
	abi     *ContractABI
	address common.Address
}

// NewDeployedContract binds an interface to the address it is deployed at.
func NewDeployedContract(contractABI *ContractABI, address common.Address) (*DeployedContract, error) {
	if contractABI == nil {
		return nil, &DescriptionError{Context: "deployed contract", Reason: "nil ABI"}
	}
	return &DeployedContract{abi: contractABI, address: address}, nil
}

// Address returns the contract address.
func (d *DeployedContract) Address() common.Address {
	return d.address
}

// ABI returns the contract interface.
func (d *DeployedContract) ABI() *ContractABI {
	return d.abi
}

// HasMethod reports whether the interface declares a method with the
// given name.
func (d *DeployedContract) HasMethod(name string) bool {
	_, ok := d.abi.Method(name)
	return ok
}

// MethodNames returns the declared method names, sorted.
func (d *DeployedContract) MethodNames() []string {
	return d.abi.MethodNames()
}

// Invoke encodes a call to the named method with positional arguments,
// resolving overloads as needed, and binds it to this contract's address.
func (d *DeployedContract) Invoke(method string, args ...any) (*BoundCall, error) {
	return d.InvokeMixed(method, args, nil)
}

// InvokeMixed is Invoke with positional arguments bound to the leading
// parameters and named arguments to the rest.
func (d *DeployedContract) InvokeMixed(method string, args []any, named map[string]any) (*BoundCall, error) {
	mm, ok := d.abi.Method(method)
	if !ok {
		return nil, &MethodNotFoundError{Contract: d.address, Method: method}
	}
	call, err := mm.CallMixed(args, named)
	if err != nil {
		return nil, err
	}
	return &BoundCall{call: call, contract: d}, nil
}

// MustInvoke is like Invoke but panics on error.
func (d *DeployedContract) MustInvoke(method string, args ...any) *BoundCall {
	call, err := d.Invoke(method, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// DecodeLog decodes a log entry emitted by this contract, rejecting
// entries recorded under a different address.
func (d *DeployedContract) DecodeLog(log *types.Log) (*Event, map[string]any, error) {
	if log.Address != d.address {
		return nil, nil, fmt.Errorf("%w: log from %s, contract is %s",
			ErrForeignContract, log.Address.Hex(), d.address.Hex())
	}
	return d.abi.MatchLog(log.Topics, log.Data)
}

// ResolveError matches revert data from this contract to a declared or
// builtin error and decodes its fields.
func (d *DeployedContract) ResolveError(data []byte) (*Error, map[string]any, error) {
	return d.abi.ResolveError(data)
}

// Filter builds an address-scoped topic filter for the named event. by is
// interpreted like Event.Filter.
func (d *DeployedContract) Filter(event string, by map[string]any) (*BoundEventFilter, error) {
	e, ok := d.abi.Event(event)
	if !ok {
		return nil, fmt.Errorf("ethabi: no event named %q", event)
	}
	f, err := e.Filter(by)
	if err != nil {
		return nil, err
	}
	return &BoundEventFilter{address: d.address, filter: f}, nil
}

// BoundCall pairs an encoded call with its target contract.
type BoundCall struct {
	call     *Call
	contract *DeployedContract
}

// Call returns the underlying encoded call.
func (b *BoundCall) Call() *Call {
	return b.call
}

// To returns the target contract address.
func (b *BoundCall) To() common.Address {
	return b.contract.address
}

// Data returns the call payload.
func (b *BoundCall) Data() []byte {
	return b.call.Data()
}

// Method returns the called method.
func (b *BoundCall) Method() *Method {
	return b.call.method
}

// Payable reports whether the call may carry ether.
func (b *BoundCall) Payable() bool {
	return b.call.method.mutability.Payable()
}

// Mutating reports whether the call may modify chain state.
func (b *BoundCall) Mutating() bool {
	return b.call.method.mutability.Mutating()
}

// DecodeOutput decodes return data against the called method's outputs.
func (b *BoundCall) DecodeOutput(ret []byte) (any, error) {
	return b.call.DecodeOutput(ret)
}

// BoundEventFilter scopes an event filter to one contract address.
type BoundEventFilter struct {
	address common.Address
	filter  *EventFilter
}

// Address returns the filtered contract address.
func (f *BoundEventFilter) Address() common.Address {
	return f.address
}

// Event returns the filtered event.
func (f *BoundEventFilter) Event() *Event {
	return f.filter.event
}

// Topics returns the filter in the eth_getLogs topics shape.
func (f *BoundEventFilter) Topics() [][]common.Hash {
	return f.filter.Topics()
}

// Query renders the filter as a geth FilterQuery, ready for a client's
// FilterLogs call. Block range fields are left unset.
func (f *BoundEventFilter) Query() ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{f.address},
		Topics:    f.filter.Topics(),
	}
}
