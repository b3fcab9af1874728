// Package replay implements the provenance-faithfulness property: given a
// wallet's provenance log, recompute the balance map from scratch without
// consulting the wallet's own stored balances or its inbox. It never
// mutates anything and never touches KM.
package replay

import (
	"fmt"

	"github.com/pass-wallet/enclave/internal/model"
)

// Replay folds provenance, in seq order, over an empty balance map and
// returns the result. Every ClaimOp record already carries the asset_id
// and amount it credited, so no separate inbox lookup is needed to
// reproduce balances from the log alone.
func Replay(provenance []model.ProvenanceRecord) (model.BalanceMap, error) {
	balances := model.NewBalanceMap()
	claimed := make(map[string]bool)

	ordered := make([]model.ProvenanceRecord, len(provenance))
	copy(ordered, provenance)
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Seq < ordered[i-1].Seq {
			return nil, fmt.Errorf("replay: provenance record at index %d is out of seq order", i)
		}
	}

	for _, rec := range ordered {
		switch op := rec.Operation.(type) {
		case model.ClaimOp:
			if claimed[op.DepositID] {
				return nil, fmt.Errorf("replay: duplicate claim of deposit %q at seq %d", op.DepositID, rec.Seq)
			}
			claimed[op.DepositID] = true
			key := model.BalanceKey{SubaccountID: op.SubaccountID, AssetID: op.AssetID}
			balances.Add(key, op.Amount)

		case model.TransferOp:
			fromKey := model.BalanceKey{SubaccountID: op.FromSubaccount, AssetID: op.AssetID}
			toKey := model.BalanceKey{SubaccountID: op.ToSubaccount, AssetID: op.AssetID}
			balances.Sub(fromKey, op.Amount)
			balances.Add(toKey, op.Amount)

		case model.WithdrawOp:
			key := model.BalanceKey{SubaccountID: op.SubaccountID, AssetID: op.AssetID}
			balances.Sub(key, op.Amount)

		default:
			return nil, fmt.Errorf("replay: unrecognized operation at seq %d", rec.Seq)
		}
	}

	return balances, nil
}
