// Package ethabi models Ethereum contract ABIs: declarative interface
// descriptions, the exact call-data wire format, and content-addressed
// dispatch through 4-byte selectors and 32-byte topics.
//
// An interface is described once, programmatically or from the standard
// JSON document, and everything derived from it is computed at that point:
// canonical signatures, selectors, event topics, integer bounds, and static
// layout widths. The resulting ContractABI is immutable and safe for
// concurrent use. This library allows you to:
//   - Encode method calls, constructor payloads, and revert data byte-exactly
//   - Decode return data, log entries, and revert payloads strictly
//   - Resolve overloads and dispatch on selectors and topics
//
// # Basic Usage
//
// Parse an interface, bind it to an address, and encode calls:
//
//	// Parse the contract interface
//	erc20 := ethabi.MustParseJSON([]byte(erc20JSON))
//
//	// Bind it to a deployment
//	token, err := ethabi.NewDeployedContract(erc20, tokenAddr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode a call
//	call, err := token.Invoke("transfer", recipient, big.NewInt(1000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := call.Data() // selector followed by the encoded arguments
//
//	// Decode the return data of an eth_call against the method's outputs
//	out, err := call.DecodeOutput(ret)
//
// # Values
//
// Arguments are plain Go values, checked and converted before a single
// byte is encoded:
//
//   - Integer types accept every Go integer kind, *big.Int, and
//     *uint256.Int, range-checked against the declared width; values are
//     never silently wrapped.
//
//   - address accepts common.Address, [20]byte, or a 20-byte slice; bytesN
//     accepts []byte of exact length, shorter strings, and [N]byte arrays.
//
//   - Arrays and structs accept []any or any Go slice; a struct whose
//     fields are all named also accepts map[string]any.
//
// Decoded values always come back in fixed shapes: *big.Int, bool, string,
// []byte, common.Address, and []any for composites.
//
// # Wire Format
//
// Encoding follows the contract ABI head/tail layout: every tuple element
// owns one head slot, inline for static types and a byte offset into the
// tail for dynamic ones. Decoding is the strict inverse; malformed input
// is reported with a DecodeError naming the byte offset at fault, never
// repaired.
//
// # Dispatch
//
// Methods and errors are keyed by the leading 4 bytes of the Keccak-256
// hash of their canonical signature, events by the full 32-byte hash in
// the first log topic. MatchLog and ResolveError route incoming data
// through those tables, and Event.Filter builds eth_getLogs topic filters
// from field values.
//
// # References
//
//   - https://docs.soliditylang.org/en/latest/abi-spec.html (wire format)
//   - https://github.com/mds1/multicall (the Multicall3 deployment)
package ethabi
