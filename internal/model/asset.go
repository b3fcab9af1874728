package model

import "github.com/pass-wallet/enclave/internal/coreerr"

// TokenType enumerates the asset kinds the ledger custodies balances for.
type TokenType string

const (
	TokenETH     TokenType = "ETH"
	TokenERC20   TokenType = "ERC20"
	TokenERC721  TokenType = "ERC721"
	TokenERC1155 TokenType = "ERC1155"
)

// Asset describes one registered token under a wallet. AssetID is the
// externally chosen key; (TokenType, ContractAddress, TokenID) is its
// semantic key.
type Asset struct {
	AssetID         string    `json:"asset_id"`
	TokenType       TokenType `json:"token_type"`
	ContractAddress *Address  `json:"contract_address,omitempty"`
	TokenID         *string   `json:"token_id,omitempty"`
	Symbol          string    `json:"symbol"`
	Name            string    `json:"name"`
	Decimals        uint8     `json:"decimals"`
}

// Validate enforces the ETH/ERC-* shape invariants from the data model.
func (a Asset) Validate() error {
	if a.AssetID == "" {
		return coreerr.New(coreerr.KindInvalidAsset, "asset_id must not be empty")
	}
	switch a.TokenType {
	case TokenETH:
		if a.ContractAddress != nil {
			return coreerr.New(coreerr.KindInvalidAsset, "ETH assets must not carry a contract_address")
		}
		if a.TokenID != nil {
			return coreerr.New(coreerr.KindInvalidAsset, "ETH assets must not carry a token_id")
		}
	case TokenERC20:
		if a.ContractAddress == nil {
			return coreerr.New(coreerr.KindInvalidAsset, "ERC20 assets require a contract_address")
		}
	case TokenERC721, TokenERC1155:
		if a.ContractAddress == nil {
			return coreerr.New(coreerr.KindInvalidAsset, "NFT assets require a contract_address")
		}
		if a.TokenID == nil {
			return coreerr.New(coreerr.KindInvalidAsset, "NFT assets require a token_id")
		}
	default:
		return coreerr.New(coreerr.KindInvalidAsset, "unknown token_type: "+string(a.TokenType))
	}
	return nil
}

// Equals reports whether two assets are identical in every field, following
// pointer fields by value rather than by address.
func (a Asset) Equals(other Asset) bool {
	if a.AssetID != other.AssetID || a.TokenType != other.TokenType ||
		a.Symbol != other.Symbol || a.Name != other.Name || a.Decimals != other.Decimals {
		return false
	}
	if !addressPtrEqual(a.ContractAddress, other.ContractAddress) {
		return false
	}
	if !stringPtrEqual(a.TokenID, other.TokenID) {
		return false
	}
	return true
}

func addressPtrEqual(a, b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
