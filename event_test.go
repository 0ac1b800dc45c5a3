package ethabi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	transferFrom = common.HexToAddress("0x1111111111111111111111111111111111111111")
	transferTo   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func transferEvent(t *testing.T) *Event {
	t.Helper()
	return MustEvent("Transfer", []EventField{
		{Name: "from", Type: Address, Indexed: true},
		{Name: "to", Type: Address, Indexed: true},
		{Name: "value", Type: MustUint(256)},
	}, false)
}

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func TestEventTopic0(t *testing.T) {
	e := transferEvent(t)

	assert.Equal(t, "Transfer(address,address,uint256)", e.CanonicalSignature())
	want := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	assert.Equal(t, want, e.Topic0())

	approval := MustEvent("Approval", []EventField{
		{Name: "owner", Type: Address, Indexed: true},
		{Name: "spender", Type: Address, Indexed: true},
		{Name: "value", Type: MustUint(256)},
	}, false)
	want = common.HexToHash("0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925")
	assert.Equal(t, want, approval.Topic0())
}

func TestEventCanonicalCoversAllFields(t *testing.T) {
	e := transferEvent(t)

	// Indexed and non-indexed fields hash alike; only types matter.
	assert.Equal(t, e.Topic0(), TopicOf("Transfer(address,address,uint256)"))
	assert.Equal(t, 3, e.NumTopics())
	assert.False(t, e.Anonymous())
	assert.Equal(t, "Transfer", e.Name())
	require.Len(t, e.Fields(), 3)
}

func TestEventIndexedLimits(t *testing.T) {
	field := func(name string) EventField {
		return EventField{Name: name, Type: MustUint(256), Indexed: true}
	}

	_, err := NewEvent("E", []EventField{field("a"), field("b"), field("c")}, false)
	require.NoError(t, err)

	_, err = NewEvent("E", []EventField{field("a"), field("b"), field("c"), field("d")}, false)
	var descErr *DescriptionError
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "4 indexed fields exceed the 3 available topics", descErr.Reason)

	_, err = NewEvent("E", []EventField{field("a"), field("b"), field("c"), field("d")}, true)
	require.NoError(t, err)

	_, err = NewEvent("E", []EventField{field("a"), field("b"), field("c"), field("d"), field("e")}, true)
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "5 indexed fields exceed the 4 available topics", descErr.Reason)
}

func TestNewEventValidation(t *testing.T) {
	var descErr *DescriptionError

	_, err := NewEvent("", nil, false)
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "empty name", descErr.Reason)

	_, err = NewEvent("E", []EventField{{Name: "a", Type: Bool}, {Name: "b"}}, false)
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "field 1 has no type", descErr.Reason)

	_, err = NewEvent("E", []EventField{{Name: "a", Type: Bool}, {Name: "a", Type: Bool}}, false)
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, `duplicate field name "a"`, descErr.Reason)
}

func TestEventDecodeLog(t *testing.T) {
	e := transferEvent(t)

	topics := []common.Hash{
		e.Topic0(),
		addressTopic(transferFrom),
		addressTopic(transferTo),
	}
	data := common.Hex2Bytes(leftWord("03e8"))

	fields, err := e.DecodeLog(topics, data)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, transferFrom, fields["from"])
	assert.Equal(t, transferTo, fields["to"])
	requireBigInt(t, fields["value"], 1000)
}

func TestEventDecodeLogInterleavesFields(t *testing.T) {
	e := MustEvent("Order", []EventField{
		{Name: "kind", Type: MustUint(8)},
		{Name: "maker", Type: Address, Indexed: true},
		{Name: "amount", Type: MustUint(256)},
		{Name: "taker", Type: Address, Indexed: true},
	}, false)

	data, err := MustSignature(
		Param{Name: "kind", Type: MustUint(8)},
		Param{Name: "amount", Type: MustUint(256)},
	).Encode(2, 500)
	require.NoError(t, err)

	fields, err := e.DecodeLog([]common.Hash{
		e.Topic0(),
		addressTopic(transferFrom),
		addressTopic(transferTo),
	}, data)
	require.NoError(t, err)

	// Topics fill indexed fields and data fills the rest, back in
	// declaration order.
	requireBigInt(t, fields["kind"], 2)
	assert.Equal(t, transferFrom, fields["maker"])
	requireBigInt(t, fields["amount"], 500)
	assert.Equal(t, transferTo, fields["taker"])
}

func TestEventDecodeLogIndexedDynamic(t *testing.T) {
	e := MustEvent("Named", []EventField{
		{Name: "name", Type: String, Indexed: true},
		{Name: "id", Type: MustUint(256)},
	}, false)

	nameTopic := crypto.Keccak256Hash([]byte("alice"))
	fields, err := e.DecodeLog(
		[]common.Hash{e.Topic0(), nameTopic},
		common.Hex2Bytes(leftWord("07")),
	)
	require.NoError(t, err)

	// The string itself is unrecoverable from its topic; the hash comes
	// back as-is.
	assert.Equal(t, nameTopic, fields["name"])
	requireBigInt(t, fields["id"], 7)
}

func TestEventDecodeLogAnonymous(t *testing.T) {
	e := MustEvent("Note", []EventField{
		{Name: "tag", Type: MustFixedBytes(4), Indexed: true},
		{Name: "data", Type: Bytes},
	}, true)

	assert.True(t, e.Anonymous())
	assert.Equal(t, 1, e.NumTopics())

	data, err := MustSignature(Param{Name: "data", Type: Bytes}).Encode([]byte{0xaa})
	require.NoError(t, err)

	tag := common.HexToHash("0xdeadbeef00000000000000000000000000000000000000000000000000000000")
	fields, err := e.DecodeLog([]common.Hash{tag}, data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, fields["tag"])
	assert.Equal(t, []byte{0xaa}, fields["data"])
}

func TestEventDecodeLogUnnamedFields(t *testing.T) {
	e := MustEvent("Ping", []EventField{
		{Type: Address, Indexed: true},
		{Type: MustUint(256)},
	}, false)

	fields, err := e.DecodeLog(
		[]common.Hash{e.Topic0(), addressTopic(transferFrom)},
		common.Hex2Bytes(leftWord("01")),
	)
	require.NoError(t, err)
	assert.Equal(t, transferFrom, fields["_0"])
	requireBigInt(t, fields["_1"], 1)
}

func TestEventDecodeLogMismatches(t *testing.T) {
	e := transferEvent(t)

	_, err := e.DecodeLog([]common.Hash{e.Topic0(), addressTopic(transferFrom)}, nil)
	var evErr *EventMismatchError
	require.ErrorAs(t, err, &evErr)
	assert.Equal(t, "Transfer", evErr.Event)
	assert.Equal(t, "expected 3 topics, got 2", evErr.Reason)

	_, err = e.DecodeLog([]common.Hash{
		{},
		addressTopic(transferFrom),
		addressTopic(transferTo),
	}, common.Hex2Bytes(leftWord("01")))
	require.ErrorAs(t, err, &evErr)
	assert.Contains(t, evErr.Reason, "topic0 is")
}

func TestEventDecodeLogBadData(t *testing.T) {
	e := transferEvent(t)

	_, err := e.DecodeLog([]common.Hash{
		e.Topic0(),
		addressTopic(transferFrom),
		addressTopic(transferTo),
	}, make([]byte, 16))

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "uint256", decErr.Type)
}

func TestEventFilter(t *testing.T) {
	e := transferEvent(t)

	f, err := e.Filter(map[string]any{"from": transferFrom})
	require.NoError(t, err)

	topics := f.Topics()
	require.Len(t, topics, 2, "trailing wildcards are trimmed")
	assert.Equal(t, []common.Hash{e.Topic0()}, topics[0])
	assert.Equal(t, []common.Hash{addressTopic(transferFrom)}, topics[1])
	assert.Same(t, e, f.Event())
}

func TestEventFilterKeepsInnerWildcards(t *testing.T) {
	e := transferEvent(t)

	f, err := e.Filter(map[string]any{"to": transferTo})
	require.NoError(t, err)

	topics := f.Topics()
	require.Len(t, topics, 3)
	assert.Nil(t, topics[1], "unfiltered positions stay wildcards")
	assert.Equal(t, []common.Hash{addressTopic(transferTo)}, topics[2])
}

func TestEventFilterAlternatives(t *testing.T) {
	e := transferEvent(t)

	f, err := e.Filter(map[string]any{
		"from": EitherOf(transferFrom, transferTo),
	})
	require.NoError(t, err)

	topics := f.Topics()
	require.Len(t, topics, 2)
	assert.Equal(t, []common.Hash{
		addressTopic(transferFrom),
		addressTopic(transferTo),
	}, topics[1])
}

func TestEventFilterNoConstraints(t *testing.T) {
	e := transferEvent(t)

	f, err := e.Filter(nil)
	require.NoError(t, err)
	assert.Equal(t, [][]common.Hash{{e.Topic0()}}, f.Topics())

	anon := MustEvent("Note", []EventField{
		{Name: "tag", Type: MustFixedBytes(4), Indexed: true},
	}, true)
	f, err = anon.Filter(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Topics(), "anonymous events have no topic0 to pin")
}

func TestEventFilterErrors(t *testing.T) {
	e := transferEvent(t)

	_, err := e.Filter(map[string]any{"sender": transferFrom})
	require.ErrorIs(t, err, ErrUnknownParameter)

	_, err = e.Filter(map[string]any{"value": 1000})
	require.Error(t, err)
	assert.Equal(t, `ethabi: cannot filter on "value": not an indexed field of Transfer`, err.Error())

	_, err = e.Filter(map[string]any{"from": "not an address"})
	var tmErr *TypeMismatchError
	require.ErrorAs(t, err, &tmErr)
	assert.Equal(t, "address", tmErr.Type)
}

func TestEventFilterTopicsIsACopy(t *testing.T) {
	e := transferEvent(t)

	f, err := e.Filter(map[string]any{"from": transferFrom})
	require.NoError(t, err)

	topics := f.Topics()
	topics[0][0] = common.Hash{}

	assert.Equal(t, []common.Hash{e.Topic0()}, f.Topics()[0])
}
