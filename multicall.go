package ethabi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultMulticallAddress is the canonical Multicall3 deployment, found at
// the same address on virtually every chain.
var DefaultMulticallAddress = common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

var (
	call3Type = MustStruct(
		Field{Name: "target", Type: Address},
		Field{Name: "allowFailure", Type: Bool},
		Field{Name: "callData", Type: Bytes},
	)
	call3ValueType = MustStruct(
		Field{Name: "target", Type: Address},
		Field{Name: "allowFailure", Type: Bool},
		Field{Name: "value", Type: MustUint(256)},
		Field{Name: "callData", Type: Bytes},
	)
	multicallResultType = MustStruct(
		Field{Name: "success", Type: Bool},
		Field{Name: "returnData", Type: Bytes},
	)
)

// multicall3ABI declares the two aggregate entry points of Multicall3.
var multicall3ABI = MustContractABI(Definitions{
	Methods: []*Method{
		MustMethod("aggregate3", Payable,
			MustSignature(Param{Name: "calls", Type: NewArray(call3Type)}),
			MustSignature(Param{Name: "returnData", Type: NewArray(multicallResultType)}),
		),
		MustMethod("aggregate3Value", Payable,
			MustSignature(Param{Name: "calls", Type: NewArray(call3ValueType)}),
			MustSignature(Param{Name: "returnData", Type: NewArray(multicallResultType)}),
		),
	},
})

// Multicall batches calls through a Multicall3 deployment, so one eth_call
// or transaction serves many method invocations.
type Multicall struct {
	contract *DeployedContract
}

// NewMulticall targets a Multicall3 deployment. Pass
// DefaultMulticallAddress for the canonical one.
func NewMulticall(address common.Address) *Multicall {
	return &Multicall{contract: &DeployedContract{abi: multicall3ABI, address: address}}
}

// Contract returns the bound Multicall3 contract.
func (m *Multicall) Contract() *DeployedContract {
	return m.contract
}

// Aggregate batches calls into one aggregate3 invocation. The failure
// tolerance from the options applies to every call in the batch.
func (m *Multicall) Aggregate(calls []*BoundCall, opts ...AggregateOption) (*AggregateCall, error) {
	cfg := newAggregateConfig(opts)
	entries := make([]any, len(calls))
	for i, call := range calls {
		if call == nil {
			return nil, fmt.Errorf("ethabi: nil call at index %d", i)
		}
		entries[i] = []any{call.To(), cfg.allowFailure, call.Data()}
	}
	bound, err := m.contract.Invoke("aggregate3", entries)
	if err != nil {
		return nil, err
	}
	return &AggregateCall{bound: bound, calls: append([]*BoundCall(nil), calls...)}, nil
}

// ValueCall pairs a batched call with the wei it forwards.
type ValueCall struct {
	Call  *BoundCall
	Value *big.Int // nil means zero
}

// AggregateValue batches calls that each forward ether, through
// aggregate3Value. Forwarding a nonzero value to a nonpayable method is
// rejected here rather than on chain.
func (m *Multicall) AggregateValue(calls []ValueCall, opts ...AggregateOption) (*AggregateCall, error) {
	cfg := newAggregateConfig(opts)
	entries := make([]any, len(calls))
	inner := make([]*BoundCall, len(calls))
	for i, vc := range calls {
		if vc.Call == nil {
			return nil, fmt.Errorf("ethabi: nil call at index %d", i)
		}
		value := vc.Value
		if value == nil {
			value = new(big.Int)
		}
		if value.Sign() > 0 && !vc.Call.Payable() {
			return nil, fmt.Errorf("ethabi: call %d forwards %s wei to nonpayable %s",
				i, value, vc.Call.Method().Name())
		}
		entries[i] = []any{vc.Call.To(), cfg.allowFailure, value, vc.Call.Data()}
		inner[i] = vc.Call
	}
	bound, err := m.contract.Invoke("aggregate3Value", entries)
	if err != nil {
		return nil, err
	}
	return &AggregateCall{bound: bound, calls: inner}, nil
}

// AggregateCall is one encoded batch. It remembers the batched calls so
// results can be decoded with each call's own output signature.
type AggregateCall struct {
	bound *BoundCall
	calls []*BoundCall
}

// To returns the Multicall3 address.
func (a *AggregateCall) To() common.Address {
	return a.bound.To()
}

// Data returns the aggregate call payload.
func (a *AggregateCall) Data() []byte {
	return a.bound.Data()
}

// Calls returns the batched calls in order.
func (a *AggregateCall) Calls() []*BoundCall {
	return append([]*BoundCall(nil), a.calls...)
}

// Mutating reports whether any batched call may modify chain state. A
// batch of view calls can go through eth_call; anything else needs a
// transaction.
func (a *AggregateCall) Mutating() bool {
	for _, c := range a.calls {
		if c.Mutating() {
			return true
		}
	}
	return false
}

// MulticallResult is one batched call's outcome.
type MulticallResult struct {
	// Success is the per-call flag reported by Multicall3.
	Success bool

	// Values holds the decoded outputs of a successful call, in the shape
	// the call's DecodeOutput produces.
	Values any

	// ReturnData is the raw return or revert data. For failed calls,
	// resolve it with ResolveError against the target's ABI.
	ReturnData []byte
}

// DecodeResults decodes an aggregate return into per-call results.
// Successful calls decode with their own output signatures; failed calls
// keep their raw revert bytes instead of being force-decoded.
func (a *AggregateCall) DecodeResults(ret []byte) ([]MulticallResult, error) {
	out, err := a.bound.DecodeOutput(ret)
	if err != nil {
		return nil, err
	}
	tuples := out.([]any)[0].([]any)
	if len(tuples) != len(a.calls) {
		return nil, fmt.Errorf("ethabi: %d results for %d calls", len(tuples), len(a.calls))
	}

	results := make([]MulticallResult, len(tuples))
	for i, raw := range tuples {
		fields := raw.([]any)
		r := MulticallResult{
			Success:    fields[0].(bool),
			ReturnData: fields[1].([]byte),
		}
		if r.Success {
			values, err := a.calls[i].DecodeOutput(r.ReturnData)
			if err != nil {
				return nil, err
			}
			r.Values = values
		}
		results[i] = r
	}
	return results, nil
}
