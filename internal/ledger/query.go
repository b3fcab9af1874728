package ledger

import "github.com/pass-wallet/enclave/internal/model"

// Balance returns the balance of a single (subaccount, asset) pair, zero if
// none is recorded.
func (l *Ledger) Balance(subaccountID, assetID string) model.Amount {
	return l.Wallet.Balances.Get(model.BalanceKey{SubaccountID: subaccountID, AssetID: assetID})
}

// BalancesForSubaccount returns every non-zero asset balance held by
// subaccountID, keyed by asset_id.
func (l *Ledger) BalancesForSubaccount(subaccountID string) map[string]model.Amount {
	out := make(map[string]model.Amount)
	for key, amount := range l.Wallet.Balances {
		if key.SubaccountID == subaccountID && !amount.IsZero() {
			out[key.AssetID] = amount
		}
	}
	return out
}

// AssetSummary reports an asset's wallet-wide total balance and its
// breakdown across sub-accounts.
type AssetSummary struct {
	Asset         model.Asset
	TotalBalance  model.Amount
	PerSubaccount map[string]model.Amount
}

// Assets returns a summary for every asset registered on the wallet, in
// registration order.
func (l *Ledger) Assets() []AssetSummary {
	out := make([]AssetSummary, 0, len(l.Wallet.AssetOrder))
	for _, assetID := range l.Wallet.AssetOrder {
		asset := l.Wallet.Assets[assetID]
		summary := AssetSummary{
			Asset:         asset,
			TotalBalance:  model.ZeroAmount(),
			PerSubaccount: make(map[string]model.Amount),
		}
		for key, amount := range l.Wallet.Balances {
			if key.AssetID != assetID {
				continue
			}
			summary.PerSubaccount[key.SubaccountID] = amount
			summary.TotalBalance = summary.TotalBalance.Add(amount)
		}
		out = append(out, summary)
	}
	return out
}

// ProvenanceFilter narrows Provenance to records touching a given asset or
// sub-account. An empty filter matches every record.
type ProvenanceFilter struct {
	AssetID      string
	SubaccountID string
}

func (f ProvenanceFilter) matches(op model.Operation) bool {
	switch o := op.(type) {
	case model.ClaimOp:
		return (f.AssetID == "" || f.AssetID == o.AssetID) &&
			(f.SubaccountID == "" || f.SubaccountID == o.SubaccountID)
	case model.TransferOp:
		return (f.AssetID == "" || f.AssetID == o.AssetID) &&
			(f.SubaccountID == "" || f.SubaccountID == o.FromSubaccount || f.SubaccountID == o.ToSubaccount)
	case model.WithdrawOp:
		return (f.AssetID == "" || f.AssetID == o.AssetID) &&
			(f.SubaccountID == "" || f.SubaccountID == o.SubaccountID)
	default:
		return false
	}
}

// Provenance returns the wallet's append-only operation log in sequence
// order, optionally narrowed by filter.
func (l *Ledger) Provenance(filter ProvenanceFilter) []model.ProvenanceRecord {
	if filter.AssetID == "" && filter.SubaccountID == "" {
		out := make([]model.ProvenanceRecord, len(l.Wallet.Provenance))
		copy(out, l.Wallet.Provenance)
		return out
	}
	out := make([]model.ProvenanceRecord, 0, len(l.Wallet.Provenance))
	for _, rec := range l.Wallet.Provenance {
		if filter.matches(rec.Operation) {
			out = append(out, rec)
		}
	}
	return out
}
