package model

import "time"

// Wallet is the full aggregate for one PASS wallet. The registry owns the
// lock that serializes access to a Wallet; nothing in this package is
// itself safe for concurrent use without that external lock, by design (see
// internal/registry).
type Wallet struct {
	Address   Address   `json:"address"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`

	Nonce uint64 `json:"nonce"`

	Assets       map[string]Asset      `json:"assets"`
	AssetOrder   []string              `json:"-"`
	Subaccounts  map[string]Subaccount `json:"subaccounts"`
	SubOrder     []string              `json:"-"`
	Inbox        map[string]InboxEntry `json:"inbox"`
	InboxOrder   []string              `json:"-"`
	Outbox       []OutboxEntry         `json:"outbox"`
	NextOutboxID uint64                `json:"-"`

	Balances BalanceMap `json:"balances"`

	Provenance []ProvenanceRecord `json:"provenance"`
	NextSeq    uint64             `json:"-"`
}

// NewWallet builds an empty wallet for a freshly generated address.
func NewWallet(address Address, name, owner string, createdAt time.Time) *Wallet {
	return &Wallet{
		Address:     address,
		Name:        name,
		Owner:       owner,
		CreatedAt:   createdAt,
		Assets:      make(map[string]Asset),
		Subaccounts: make(map[string]Subaccount),
		Inbox:       make(map[string]InboxEntry),
		Balances:    NewBalanceMap(),
	}
}

// AppendProvenance assigns the next sequence number and appends a record.
// Callers must hold the wallet's external lock.
func (w *Wallet) AppendProvenance(timestamp uint64, blockNumber *string, op Operation) ProvenanceRecord {
	rec := ProvenanceRecord{
		Seq:         w.NextSeq,
		Timestamp:   timestamp,
		BlockNumber: blockNumber,
		Operation:   op,
	}
	w.NextSeq++
	w.Provenance = append(w.Provenance, rec)
	return rec
}
