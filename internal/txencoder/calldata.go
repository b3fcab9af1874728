package txencoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/pass-wallet/enclave/internal/model"
)

// selector returns the 4-byte function selector for a Solidity signature
// string, i.e. keccak256(signature)[:4], the standard hand-rolled ABI
// encoding for a fixed, known call.
func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func pad32Address(a model.Address) []byte {
	return common.LeftPadBytes(a[:], 32)
}

func pad32BigInt(n *big.Int) []byte {
	return common.LeftPadBytes(n.Bytes(), 32)
}

// ETHCalldata returns the (to, value, data) triple for a native ETH
// withdrawal: a plain value transfer with empty calldata.
func ETHCalldata(destination model.Address, amount *big.Int) (to model.Address, value *big.Int, data []byte) {
	return destination, amount, nil
}

// ERC20Calldata builds calldata for transfer(address,uint256) against the
// token contract; the transaction's value field is always zero.
func ERC20Calldata(contract, destination model.Address, amount *big.Int) (to model.Address, value *big.Int, data []byte) {
	sel := selector("transfer(address,uint256)")
	data = append(append([]byte{}, sel...), pad32Address(destination)...)
	data = append(data, pad32BigInt(amount)...)
	return contract, big.NewInt(0), data
}

// ERC721Calldata builds calldata for
// safeTransferFrom(address,address,uint256) moving tokenID from the wallet
// address to destination.
func ERC721Calldata(contract, wallet, destination model.Address, tokenID *big.Int) (to model.Address, value *big.Int, data []byte) {
	sel := selector("safeTransferFrom(address,address,uint256)")
	data = append(append([]byte{}, sel...), pad32Address(wallet)...)
	data = append(data, pad32Address(destination)...)
	data = append(data, pad32BigInt(tokenID)...)
	return contract, big.NewInt(0), data
}

// ERC1155Calldata builds calldata for
// safeTransferFrom(address,address,uint256,uint256,bytes) moving amount of
// tokenID from the wallet address to destination with an empty bytes
// payload, using the standard ABI offset/length word layout for a trailing
// empty bytes argument (offset 0x80, length 0).
func ERC1155Calldata(contract, wallet, destination model.Address, tokenID, amount *big.Int) (to model.Address, value *big.Int, data []byte) {
	sel := selector("safeTransferFrom(address,address,uint256,uint256,bytes)")
	data = append(append([]byte{}, sel...), pad32Address(wallet)...)
	data = append(data, pad32Address(destination)...)
	data = append(data, pad32BigInt(tokenID)...)
	data = append(data, pad32BigInt(amount)...)
	data = append(data, pad32BigInt(big.NewInt(0x80))...)
	data = append(data, pad32BigInt(big.NewInt(0))...)
	return contract, big.NewInt(0), data
}
