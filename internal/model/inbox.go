package model

// InboxEntry is an observed deposit awaiting assignment to a sub-account.
// Once Claimed is true it is immutable and cannot be claimed a second time.
type InboxEntry struct {
	DepositID   string  `json:"deposit_id"`
	AssetID     string  `json:"asset_id"`
	Amount      Amount  `json:"amount"`
	FromAddress Address `json:"from_address"`
	ToAddress   Address `json:"to_address"`
	TxHash      string  `json:"tx_hash"`
	BlockNumber string  `json:"block_number"`
	Claimed     bool    `json:"claimed"`
}
