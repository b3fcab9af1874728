// Package dispatch implements the Command Dispatcher: it decodes a tagged
// command envelope, routes wallet-scoped commands through the registry's
// exclusive-lock discipline, and serializes a tagged response envelope. It
// holds no state of its own.
package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/pass-wallet/enclave/internal/model"
)

// Command is implemented by every concrete payload type in the tagged
// command variant. The string it returns is the outer JSON key used to
// tag an encoded command.
type Command interface {
	commandName() string
}

type KeygenCmd struct{}

func (KeygenCmd) commandName() string { return "Keygen" }

type SignCmd struct {
	Address model.Address `json:"address"`
	Message []byte        `json:"message"`
}

func (SignCmd) commandName() string { return "Sign" }

type ListCmd struct{}

func (ListCmd) commandName() string { return "List" }

type CreateWalletCmd struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

func (CreateWalletCmd) commandName() string { return "CreateWallet" }

type ListWalletsCmd struct{}

func (ListWalletsCmd) commandName() string { return "ListWallets" }

type WalletStateCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
}

func (WalletStateCmd) commandName() string { return "WalletState" }

type AddAssetCmd struct {
	WalletAddress   model.Address   `json:"wallet_address"`
	AssetID         string          `json:"asset_id"`
	TokenType       model.TokenType `json:"token_type"`
	ContractAddress *model.Address  `json:"contract_address,omitempty"`
	TokenID         *string         `json:"token_id,omitempty"`
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	Decimals        uint8           `json:"decimals"`
}

func (AddAssetCmd) commandName() string { return "AddAsset" }

type ListAssetsCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
}

func (ListAssetsCmd) commandName() string { return "ListAssets" }

type AddSubaccountCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	SubaccountID  string        `json:"subaccount_id"`
	Label         string        `json:"label"`
	Address       model.Address `json:"address"`
}

func (AddSubaccountCmd) commandName() string { return "AddSubaccount" }

type InboxDepositCmd struct {
	WalletAddress   model.Address `json:"wallet_address"`
	AssetID         string        `json:"asset_id"`
	Amount          model.Amount  `json:"amount"`
	DepositID       string        `json:"deposit_id"`
	TransactionHash string        `json:"transaction_hash"`
	BlockNumber     string        `json:"block_number"`
	FromAddress     model.Address `json:"from_address"`
	ToAddress       model.Address `json:"to_address"`
}

func (InboxDepositCmd) commandName() string { return "InboxDeposit" }

type ClaimCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	DepositID     string        `json:"deposit_id"`
	SubaccountID  string        `json:"subaccount_id"`
}

func (ClaimCmd) commandName() string { return "Claim" }

type TransferCmd struct {
	WalletAddress  model.Address `json:"wallet_address"`
	AssetID        string        `json:"asset_id"`
	Amount         model.Amount  `json:"amount"`
	FromSubaccount string        `json:"from_subaccount"`
	ToSubaccount   string        `json:"to_subaccount"`
}

func (TransferCmd) commandName() string { return "Transfer" }

type WithdrawCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	AssetID       string        `json:"asset_id"`
	Amount        model.Amount  `json:"amount"`
	SubaccountID  string        `json:"subaccount_id"`
	Destination   model.Address `json:"destination"`
	ChainID       uint64        `json:"chain_id"`
	GasPrice      *uint64       `json:"gas_price,omitempty"`
	GasLimit      *uint64       `json:"gas_limit,omitempty"`
}

func (WithdrawCmd) commandName() string { return "Withdraw" }

type ListOutboxCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
}

func (ListOutboxCmd) commandName() string { return "ListOutbox" }

type RemoveOutboxCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	OutboxID      uint64        `json:"outbox_id"`
}

func (RemoveOutboxCmd) commandName() string { return "RemoveOutbox" }

type BalanceCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	SubaccountID  string        `json:"subaccount_id"`
	AssetID       string        `json:"asset_id"`
}

func (BalanceCmd) commandName() string { return "Balance" }

type SubaccountBalancesCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	SubaccountID  string        `json:"subaccount_id"`
}

func (SubaccountBalancesCmd) commandName() string { return "SubaccountBalances" }

type SignGsmCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	Domain        string        `json:"domain"`
	Message       string        `json:"message"`
}

func (SignGsmCmd) commandName() string { return "SignGsm" }

type ProvenanceCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
}

func (ProvenanceCmd) commandName() string { return "Provenance" }

type ProvenanceByAssetCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	AssetID       string        `json:"asset_id"`
}

func (ProvenanceByAssetCmd) commandName() string { return "ProvenanceByAsset" }

type ProvenanceBySubaccountCmd struct {
	WalletAddress model.Address `json:"wallet_address"`
	SubaccountID  string        `json:"subaccount_id"`
}

func (ProvenanceBySubaccountCmd) commandName() string { return "ProvenanceBySubaccount" }

// commandFactories maps an outer JSON key to a zero-value instance whose
// concrete type the payload should be decoded into.
var commandFactories = map[string]func() Command{
	"Keygen":                 func() Command { return &KeygenCmd{} },
	"Sign":                   func() Command { return &SignCmd{} },
	"List":                   func() Command { return &ListCmd{} },
	"CreateWallet":           func() Command { return &CreateWalletCmd{} },
	"ListWallets":            func() Command { return &ListWalletsCmd{} },
	"WalletState":            func() Command { return &WalletStateCmd{} },
	"AddAsset":               func() Command { return &AddAssetCmd{} },
	"ListAssets":             func() Command { return &ListAssetsCmd{} },
	"AddSubaccount":          func() Command { return &AddSubaccountCmd{} },
	"InboxDeposit":           func() Command { return &InboxDepositCmd{} },
	"Claim":                  func() Command { return &ClaimCmd{} },
	"Transfer":               func() Command { return &TransferCmd{} },
	"Withdraw":               func() Command { return &WithdrawCmd{} },
	"ListOutbox":             func() Command { return &ListOutboxCmd{} },
	"RemoveOutbox":           func() Command { return &RemoveOutboxCmd{} },
	"Balance":                func() Command { return &BalanceCmd{} },
	"SubaccountBalances":     func() Command { return &SubaccountBalancesCmd{} },
	"SignGsm":                func() Command { return &SignGsmCmd{} },
	"Provenance":             func() Command { return &ProvenanceCmd{} },
	"ProvenanceByAsset":      func() Command { return &ProvenanceByAssetCmd{} },
	"ProvenanceBySubaccount": func() Command { return &ProvenanceBySubaccountCmd{} },
}

// DecodeCommand unmarshals a single-key tagged command envelope, e.g.
// {"Withdraw": {"wallet_address": "0x...", ...}}, into the matching
// concrete Command type. An unrecognized or missing tag returns
// ErrInvalidCommand.
func DecodeCommand(data []byte) (Command, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one command tag, got %d", ErrInvalidCommand, len(envelope))
	}

	var tag string
	var payload json.RawMessage
	for k, v := range envelope {
		tag, payload = k, v
	}

	factory, ok := commandFactories[tag]
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized command %q", ErrInvalidCommand, tag)
	}

	cmd := factory()
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, cmd); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
	}
	return derefCommand(cmd), nil
}

// derefCommand returns the pointee of the pointer decoded into by
// DecodeCommand, so callers can type-switch on value types as declared
// above.
func derefCommand(cmd Command) Command {
	switch c := cmd.(type) {
	case *KeygenCmd:
		return *c
	case *SignCmd:
		return *c
	case *ListCmd:
		return *c
	case *CreateWalletCmd:
		return *c
	case *ListWalletsCmd:
		return *c
	case *WalletStateCmd:
		return *c
	case *AddAssetCmd:
		return *c
	case *ListAssetsCmd:
		return *c
	case *AddSubaccountCmd:
		return *c
	case *InboxDepositCmd:
		return *c
	case *ClaimCmd:
		return *c
	case *TransferCmd:
		return *c
	case *WithdrawCmd:
		return *c
	case *ListOutboxCmd:
		return *c
	case *RemoveOutboxCmd:
		return *c
	case *BalanceCmd:
		return *c
	case *SubaccountBalancesCmd:
		return *c
	case *SignGsmCmd:
		return *c
	case *ProvenanceCmd:
		return *c
	case *ProvenanceByAssetCmd:
		return *c
	case *ProvenanceBySubaccountCmd:
		return *c
	default:
		return cmd
	}
}
