package ethabi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenAddr = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")

func deployedToken(t *testing.T) *DeployedContract {
	t.Helper()
	d, err := NewDeployedContract(tokenABI(t), tokenAddr)
	require.NoError(t, err)
	return d
}

func TestNewCompiledContractValidation(t *testing.T) {
	var descErr *DescriptionError

	_, err := NewCompiledContract(nil, []byte{0x60})
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "nil ABI", descErr.Reason)

	_, err = NewCompiledContract(tokenABI(t), nil)
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "empty bytecode", descErr.Reason)
}

func TestCompiledContractDeploy(t *testing.T) {
	bytecode := common.Hex2Bytes("6080604052348015600e575f5ffd5b50")
	c, err := NewCompiledContract(tokenABI(t), bytecode)
	require.NoError(t, err)
	assert.NotNil(t, c.ABI())

	deploy, err := c.Deploy(21_000_000)
	require.NoError(t, err)

	// Creation bytecode first, constructor arguments directly behind it.
	want := append(append([]byte(nil), bytecode...), common.Hex2Bytes(leftWord("1406f40"))...)
	assert.Equal(t, want, deploy.Data())
	assert.False(t, deploy.Payable())
}

func TestCompiledContractDeployNoArgs(t *testing.T) {
	abi, err := NewContractABI(Definitions{
		Constructor: MustConstructor(nil, Payable),
	})
	require.NoError(t, err)

	bytecode := []byte{0x60, 0x80}
	c, err := NewCompiledContract(abi, bytecode)
	require.NoError(t, err)

	deploy, err := c.Deploy()
	require.NoError(t, err)
	assert.Equal(t, bytecode, deploy.Data(), "no constructor arguments, bare bytecode")
	assert.True(t, deploy.Payable())
}

func TestCompiledContractDeployBindFailure(t *testing.T) {
	c, err := NewCompiledContract(tokenABI(t), []byte{0x60})
	require.NoError(t, err)

	_, err = c.Deploy()
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = c.Deploy(1, 2)
	assert.ErrorIs(t, err, ErrTooManyArguments)
}

func TestNewDeployedContractValidation(t *testing.T) {
	_, err := NewDeployedContract(nil, tokenAddr)

	var descErr *DescriptionError
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "nil ABI", descErr.Reason)
}

func TestDeployedContractAccessors(t *testing.T) {
	d := deployedToken(t)

	assert.Equal(t, tokenAddr, d.Address())
	assert.NotNil(t, d.ABI())
	assert.True(t, d.HasMethod("transfer"))
	assert.False(t, d.HasMethod("mint"))
	assert.Equal(t, []string{"balanceOf", "deposit", "transfer"}, d.MethodNames())
}

func TestDeployedContractInvoke(t *testing.T) {
	d := deployedToken(t)
	to := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	bound, err := d.Invoke("transfer", to, 1000)
	require.NoError(t, err)

	assert.Equal(t, tokenAddr, bound.To())
	assert.Equal(t, "transfer", bound.Method().Name())
	assert.True(t, bound.Mutating())
	assert.False(t, bound.Payable())

	want := "a9059cbb" +
		leftWord("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed") +
		leftWord("03e8")
	assert.Equal(t, want, common.Bytes2Hex(bound.Data()))

	sel, ok := bound.Call().Selector()
	require.True(t, ok)
	assert.Equal(t, SelectorOf("transfer(address,uint256)"), sel)
}

func TestDeployedContractInvokeView(t *testing.T) {
	d := deployedToken(t)

	bound, err := d.Invoke("balanceOf", tokenAddr)
	require.NoError(t, err)
	assert.False(t, bound.Mutating())

	// balanceOf was declared with a scalar output; the bound call decodes
	// straight to the bare value.
	out, err := bound.DecodeOutput(common.Hex2Bytes(leftWord("64")))
	require.NoError(t, err)
	requireBigInt(t, out, 100)
}

func TestDeployedContractInvokeResolvesOverloads(t *testing.T) {
	d := deployedToken(t)

	bound, err := d.Invoke("deposit", 5)
	require.NoError(t, err)
	assert.Equal(t, "deposit(uint256)", bound.Method().CanonicalSignature())

	bound, err = d.InvokeMixed("deposit", []any{5}, map[string]any{"to": tokenAddr})
	require.NoError(t, err)
	assert.Equal(t, "deposit(uint256,address)", bound.Method().CanonicalSignature())
}

func TestDeployedContractInvokeUnknownMethod(t *testing.T) {
	d := deployedToken(t)

	_, err := d.Invoke("mint", 1)

	var nfErr *MethodNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, tokenAddr, nfErr.Contract)
	assert.Equal(t,
		`ethabi: method "mint" not found in contract 0x6B175474E89094C44Da98b954EedeAC495271d0F`,
		err.Error())
}

func TestDeployedContractMustInvoke(t *testing.T) {
	d := deployedToken(t)

	bound := d.MustInvoke("transfer", common.Address{}, 1)
	assert.NotNil(t, bound)

	assert.Panics(t, func() { d.MustInvoke("mint", 1) })
}

func TestDeployedContractDecodeLog(t *testing.T) {
	d := deployedToken(t)
	e := transferEvent(t)

	log := &types.Log{
		Address: tokenAddr,
		Topics: []common.Hash{
			e.Topic0(),
			addressTopic(transferFrom),
			addressTopic(transferTo),
		},
		Data: common.Hex2Bytes(leftWord("03e8")),
	}

	matched, fields, err := d.DecodeLog(log)
	require.NoError(t, err)
	assert.Equal(t, "Transfer", matched.Name())
	assert.Equal(t, transferFrom, fields["from"])
	requireBigInt(t, fields["value"], 1000)
}

func TestDeployedContractDecodeLogForeignAddress(t *testing.T) {
	d := deployedToken(t)
	e := transferEvent(t)

	log := &types.Log{
		Address: common.HexToAddress("0x00000000000000000000000000000000000000ee"),
		Topics:  []common.Hash{e.Topic0(), addressTopic(transferFrom), addressTopic(transferTo)},
		Data:    common.Hex2Bytes(leftWord("01")),
	}

	_, _, err := d.DecodeLog(log)
	require.ErrorIs(t, err, ErrForeignContract)
	assert.Contains(t, err.Error(), d.Address().Hex())
}

func TestDeployedContractResolveError(t *testing.T) {
	d := deployedToken(t)

	data, err := insufficientBalance(t).Encode(1, 2)
	require.NoError(t, err)

	e, fields, err := d.ResolveError(data)
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance", e.Name())
	requireBigInt(t, fields["required"], 2)
}

func TestDeployedContractFilter(t *testing.T) {
	d := deployedToken(t)

	f, err := d.Filter("Transfer", map[string]any{"from": transferFrom})
	require.NoError(t, err)

	assert.Equal(t, tokenAddr, f.Address())
	assert.Equal(t, "Transfer", f.Event().Name())

	topics := f.Topics()
	require.Len(t, topics, 2)
	assert.Equal(t, []common.Hash{addressTopic(transferFrom)}, topics[1])

	q := f.Query()
	assert.Equal(t, []common.Address{tokenAddr}, q.Addresses)
	assert.Equal(t, topics, q.Topics)
	assert.Nil(t, q.FromBlock)
	assert.Nil(t, q.ToBlock)
}

func TestDeployedContractFilterUnknownEvent(t *testing.T) {
	d := deployedToken(t)

	_, err := d.Filter("Burn", nil)
	require.Error(t, err)
	assert.Equal(t, `ethabi: no event named "Burn"`, err.Error())
}

func TestCallDataIsACopy(t *testing.T) {
	d := deployedToken(t)

	bound := d.MustInvoke("transfer", common.Address{}, 1)
	data := bound.Data()
	data[0] = 0xff

	assert.NotEqual(t, byte(0xff), bound.Data()[0])
}
