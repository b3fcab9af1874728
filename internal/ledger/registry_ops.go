package ledger

import (
	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/model"
)

// AddAsset registers asset under the wallet. Idempotent on an identical
// asset_id with an identical definition: a resubmission of the exact same
// asset succeeds without mutation. A second asset_id with a conflicting
// definition (different token_type/contract_address/token_id/...) fails
// with DuplicateAsset rather than silently overwriting the original. No
// provenance record is written either way.
func (l *Ledger) AddAsset(asset model.Asset) error {
	if existing, ok := l.Wallet.Assets[asset.AssetID]; ok {
		if existing.Equals(asset) {
			return nil
		}
		return coreerr.New(coreerr.KindDuplicateAsset, asset.AssetID)
	}
	if err := asset.Validate(); err != nil {
		return err
	}
	l.Wallet.Assets[asset.AssetID] = asset
	l.Wallet.AssetOrder = append(l.Wallet.AssetOrder, asset.AssetID)
	return nil
}

// AddSubaccount registers sub under the wallet. Idempotent on an identical
// subaccount_id with an identical definition; a conflicting redefinition of
// an existing subaccount_id fails with DuplicateSubaccount. No provenance
// record is written either way.
func (l *Ledger) AddSubaccount(sub model.Subaccount) error {
	if existing, ok := l.Wallet.Subaccounts[sub.SubaccountID]; ok {
		if existing.Equals(sub) {
			return nil
		}
		return coreerr.New(coreerr.KindDuplicateSubacct, sub.SubaccountID)
	}
	l.Wallet.Subaccounts[sub.SubaccountID] = sub
	l.Wallet.SubOrder = append(l.Wallet.SubOrder, sub.SubaccountID)
	return nil
}
