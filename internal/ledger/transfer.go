package ledger

import (
	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/model"
)

// Transfer moves amount of assetID from one sub-account to another within
// the same wallet. It never touches KM and has no on-chain effect.
func (l *Ledger) Transfer(fromSubaccount, toSubaccount, assetID string, amount model.Amount) error {
	if amount.Sign() <= 0 {
		return coreerr.New(coreerr.KindInvalidAmount, "amount must be positive")
	}
	if fromSubaccount == toSubaccount {
		return coreerr.New(coreerr.KindInvalidAmount, "from and to sub-accounts must differ")
	}
	if _, ok := l.Wallet.Subaccounts[fromSubaccount]; !ok {
		return coreerr.New(coreerr.KindUnknownSubaccount, fromSubaccount)
	}
	if _, ok := l.Wallet.Subaccounts[toSubaccount]; !ok {
		return coreerr.New(coreerr.KindUnknownSubaccount, toSubaccount)
	}
	if _, ok := l.Wallet.Assets[assetID]; !ok {
		return coreerr.New(coreerr.KindUnknownAsset, assetID)
	}

	fromKey := model.BalanceKey{SubaccountID: fromSubaccount, AssetID: assetID}
	current := l.Wallet.Balances.Get(fromKey)
	if current.Cmp(amount) < 0 {
		return coreerr.New(coreerr.KindInsufficientFunds, fromSubaccount+"/"+assetID)
	}

	toKey := model.BalanceKey{SubaccountID: toSubaccount, AssetID: assetID}
	l.Wallet.Balances.Sub(fromKey, amount)
	l.Wallet.Balances.Add(toKey, amount)

	l.Wallet.AppendProvenance(l.timestamp(), nil, model.TransferOp{
		FromSubaccount: fromSubaccount,
		ToSubaccount:   toSubaccount,
		AssetID:        assetID,
		Amount:         amount,
	})
	return nil
}
