// Package txencoder implements pure, side-effect-free EIP-155 legacy
// transaction encoding and per-asset calldata construction. Nothing here
// performs network or key-manager calls.
package txencoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pass-wallet/enclave/internal/model"
)

// Advisory gas defaults. These are rough planning numbers, not a live fee
// oracle, and may not reflect current network conditions; callers should
// prefer explicit values where one is available.
const (
	DefaultGasPriceWei uint64 = 20_000_000_000 // 20 gwei
	DefaultGasLimitETH uint64 = 21_000
	DefaultGasLimitERC20 uint64 = 65_000
	DefaultGasLimitNFT uint64 = 100_000
)

// legacyTxFields is the exact 9-item field order of an EIP-155 legacy
// transaction, used both for the unsigned RLP list (with v=chainID, r=0,
// s=0 per EIP-155) and the signed list (with the real v,r,s).
type legacyTxFields struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       []byte
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

// EncodeUnsigned RLP-encodes the 9-item legacy transaction list used for
// EIP-155 replay-protected signing: [nonce, gasPrice, gasLimit, to, value,
// data, chainId, 0, 0]. Integers are minimally encoded per RLP rules; to is
// 20 raw bytes.
func EncodeUnsigned(nonce uint64, gasPrice *big.Int, gasLimit uint64, to model.Address, value *big.Int, data []byte, chainID uint64) ([]byte, error) {
	fields := legacyTxFields{
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		To:       to[:],
		Value:    value,
		Data:     data,
		V:        new(big.Int).SetUint64(chainID),
		R:        big.NewInt(0),
		S:        big.NewInt(0),
	}
	return rlp.EncodeToBytes(&fields)
}

// SigningDigest is keccak256 of the unsigned RLP encoding.
func SigningDigest(encodedUnsigned []byte) []byte {
	return crypto.Keccak256(encodedUnsigned)
}

// EncodeSigned RLP-encodes the final 9-item list with v = chainId*2+35+recid
// and the ECDSA (r,s) trailing, matching the digest that SigningDigest
// produced for the same nonce/gasPrice/gasLimit/to/value/data/chainID.
func EncodeSigned(nonce uint64, gasPrice *big.Int, gasLimit uint64, to model.Address, value *big.Int, data []byte, chainID uint64, recoveryID byte, r, s []byte) ([]byte, error) {
	v := new(big.Int).SetUint64(chainID)
	v.Mul(v, big.NewInt(2))
	v.Add(v, big.NewInt(35+int64(recoveryID)))

	fields := legacyTxFields{
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		To:       to[:],
		Value:    value,
		Data:     data,
		V:        v,
		R:        new(big.Int).SetBytes(r),
		S:        new(big.Int).SetBytes(s),
	}
	return rlp.EncodeToBytes(&fields)
}

// RecoverSender recovers the signer address from a signed legacy-transaction
// encoding produced by EncodeSigned, for bit-exact-compatibility testing
// (testable property 9: "recovering the public key ... yields the wallet's
// own address").
func RecoverSender(nonce uint64, gasPrice *big.Int, gasLimit uint64, to model.Address, value *big.Int, data []byte, chainID uint64, recoveryID byte, r, s []byte) (model.Address, error) {
	unsigned, err := EncodeUnsigned(nonce, gasPrice, gasLimit, to, value, data, chainID)
	if err != nil {
		return model.Address{}, err
	}
	digest := SigningDigest(unsigned)

	sig := make([]byte, 65)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[64] = recoveryID

	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return model.Address{}, err
	}
	return model.Address(crypto.PubkeyToAddress(*pub)), nil
}
