package txencoder_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/model"
	"github.com/pass-wallet/enclave/internal/txencoder"
)

func TestEncodeSignRecoverRoundTrip(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := model.Address(crypto.PubkeyToAddress(priv.PublicKey))

	dest, err := model.ParseAddress("0x00000000000000000000000000000000000000de")
	require.NoError(t, err)

	const chainID = 11155111 // sepolia
	gasPrice := big.NewInt(int64(txencoder.DefaultGasPriceWei))
	value := big.NewInt(1_000_000_000_000_000_000)

	unsigned, err := txencoder.EncodeUnsigned(0, gasPrice, txencoder.DefaultGasLimitETH, dest, value, nil, chainID)
	require.NoError(t, err)

	digest := txencoder.SigningDigest(unsigned)
	sig, err := crypto.Sign(digest, priv)
	require.NoError(t, err)
	r := sig[0:32]
	s := sig[32:64]
	recoveryID := sig[64]

	signed, err := txencoder.EncodeSigned(0, gasPrice, txencoder.DefaultGasLimitETH, dest, value, nil, chainID, recoveryID, r, s)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	recovered, err := txencoder.RecoverSender(0, gasPrice, txencoder.DefaultGasLimitETH, dest, value, nil, chainID, recoveryID, r, s)
	require.NoError(t, err)
	assert.Equal(t, wallet, recovered)
}

func TestEIP155VBinding(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)

	dest, err := model.ParseAddress("0x00000000000000000000000000000000000000de")
	require.NoError(t, err)

	const chainID = 11155111
	gasPrice := big.NewInt(int64(txencoder.DefaultGasPriceWei))
	value := big.NewInt(1)

	unsigned, err := txencoder.EncodeUnsigned(3, gasPrice, txencoder.DefaultGasLimitETH, dest, value, nil, chainID)
	require.NoError(t, err)
	digest := txencoder.SigningDigest(unsigned)
	sig, err := crypto.Sign(digest, priv)
	require.NoError(t, err)

	expectedV := chainID*2 + 35 + int(sig[64])
	assert.Contains(t, []int{22310257, 22310258}, expectedV)
}

func TestERC20CalldataSelectorAndLayout(t *testing.T) {
	contract, err := model.ParseAddress("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	dest, err := model.ParseAddress("0x0000000000000000000000000000000000000002")
	require.NoError(t, err)

	to, value, data := txencoder.ERC20Calldata(contract, dest, big.NewInt(42))
	assert.Equal(t, contract, to)
	assert.Equal(t, 0, value.Sign())
	require.Len(t, data, 4+32+32)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
	assert.Equal(t, dest[:], trimLeadingZeros(data[4:36], 20))
	assert.Equal(t, big.NewInt(42), new(big.Int).SetBytes(data[36:68]))
}

func TestERC721CalldataSelectorAndLayout(t *testing.T) {
	contract, err := model.ParseAddress("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	wallet, err := model.ParseAddress("0x0000000000000000000000000000000000000003")
	require.NoError(t, err)
	dest, err := model.ParseAddress("0x0000000000000000000000000000000000000002")
	require.NoError(t, err)

	to, value, data := txencoder.ERC721Calldata(contract, wallet, dest, big.NewInt(7))
	assert.Equal(t, contract, to)
	assert.Equal(t, 0, value.Sign())
	require.Len(t, data, 4+32+32+32)
	assert.Equal(t, "42842e0e", hex.EncodeToString(data[:4]))
}

func TestERC1155CalldataSelectorAndLayout(t *testing.T) {
	contract, err := model.ParseAddress("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	wallet, err := model.ParseAddress("0x0000000000000000000000000000000000000003")
	require.NoError(t, err)
	dest, err := model.ParseAddress("0x0000000000000000000000000000000000000002")
	require.NoError(t, err)

	to, value, data := txencoder.ERC1155Calldata(contract, wallet, dest, big.NewInt(7), big.NewInt(9))
	assert.Equal(t, contract, to)
	assert.Equal(t, 0, value.Sign())
	require.Len(t, data, 4+32*6)
	assert.Equal(t, "f242432a", hex.EncodeToString(data[:4]))
	offsetWord := data[4+32*4 : 4+32*5]
	assert.Equal(t, big.NewInt(0x80), new(big.Int).SetBytes(offsetWord))
	lengthWord := data[4+32*5 : 4+32*6]
	assert.Equal(t, 0, new(big.Int).SetBytes(lengthWord).Sign())
}

func trimLeadingZeros(word []byte, n int) []byte {
	return word[len(word)-n:]
}
