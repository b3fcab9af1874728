package ledger

import (
	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/model"
)

// RecordDeposit appends entry to the inbox, unclaimed. No balance change, no
// provenance record — provenance is written on claim, not on deposit.
func (l *Ledger) RecordDeposit(entry model.InboxEntry) error {
	if _, exists := l.Wallet.Inbox[entry.DepositID]; exists {
		return coreerr.New(coreerr.KindDuplicateDeposit, entry.DepositID)
	}
	entry.Claimed = false
	l.Wallet.Inbox[entry.DepositID] = entry
	l.Wallet.InboxOrder = append(l.Wallet.InboxOrder, entry.DepositID)
	return nil
}

// Claim assigns an unclaimed deposit to subaccountID, crediting its balance
// and appending a Claim provenance record.
func (l *Ledger) Claim(depositID, subaccountID string) error {
	entry, ok := l.Wallet.Inbox[depositID]
	if !ok {
		return coreerr.New(coreerr.KindUnknownDeposit, depositID)
	}
	if entry.Claimed {
		return coreerr.New(coreerr.KindAlreadyClaimed, depositID)
	}
	if _, ok := l.Wallet.Subaccounts[subaccountID]; !ok {
		return coreerr.New(coreerr.KindUnknownSubaccount, subaccountID)
	}
	if _, ok := l.Wallet.Assets[entry.AssetID]; !ok {
		return coreerr.New(coreerr.KindUnknownAsset, entry.AssetID)
	}

	entry.Claimed = true
	l.Wallet.Inbox[depositID] = entry

	key := model.BalanceKey{SubaccountID: subaccountID, AssetID: entry.AssetID}
	l.Wallet.Balances.Add(key, entry.Amount)

	l.Wallet.AppendProvenance(l.timestamp(), nil, model.ClaimOp{
		DepositID:    depositID,
		SubaccountID: subaccountID,
		AssetID:      entry.AssetID,
		Amount:       entry.Amount,
	})
	return nil
}
