package model

import "time"

// OutboxEntry is a signed-but-not-yet-broadcast withdrawal. Outbox entries
// are append-only; OutboxID is an append-only sequence per wallet.
type OutboxEntry struct {
	OutboxID             uint64    `json:"outbox_id"`
	AssetID              string    `json:"asset_id"`
	Amount               Amount    `json:"amount"`
	SubaccountID         string    `json:"subaccount_id"`
	Destination          Address   `json:"destination"`
	ChainID              uint64    `json:"chain_id"`
	Nonce                uint64    `json:"nonce"`
	GasPrice             uint64    `json:"gas_price"`
	GasLimit             uint64    `json:"gas_limit"`
	SignedRawTransaction string    `json:"signed_raw_transaction"`
	CreatedAt            time.Time `json:"created_at"`
}
