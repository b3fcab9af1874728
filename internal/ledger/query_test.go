package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/ledger"
	"github.com/pass-wallet/enclave/internal/model"
)

func TestAssetsSummarizesPerSubaccountBalances(t *testing.T) {
	l, _, _ := newTestWallet(t)
	require.NoError(t, l.AddAsset(ethAsset()))
	require.NoError(t, l.AddSubaccount(model.Subaccount{SubaccountID: "sub-1"}))
	require.NoError(t, l.AddSubaccount(model.Subaccount{SubaccountID: "sub-2"}))
	require.NoError(t, l.RecordDeposit(model.InboxEntry{DepositID: "dep-1", AssetID: "eth", Amount: model.NewAmount(70)}))
	require.NoError(t, l.Claim("dep-1", "sub-1"))
	require.NoError(t, l.Transfer("sub-1", "sub-2", "eth", model.NewAmount(30)))

	summaries := l.Assets()
	require.Len(t, summaries, 1)
	assert.Equal(t, "eth", summaries[0].Asset.AssetID)
	assert.Equal(t, 0, summaries[0].TotalBalance.Cmp(model.NewAmount(70)))
	assert.Equal(t, 0, summaries[0].PerSubaccount["sub-1"].Cmp(model.NewAmount(40)))
	assert.Equal(t, 0, summaries[0].PerSubaccount["sub-2"].Cmp(model.NewAmount(30)))
}

func TestProvenanceFilterBySubaccount(t *testing.T) {
	l, _, _ := newTestWallet(t)
	require.NoError(t, l.AddAsset(ethAsset()))
	require.NoError(t, l.AddSubaccount(model.Subaccount{SubaccountID: "sub-1"}))
	require.NoError(t, l.AddSubaccount(model.Subaccount{SubaccountID: "sub-2"}))
	require.NoError(t, l.RecordDeposit(model.InboxEntry{DepositID: "dep-1", AssetID: "eth", Amount: model.NewAmount(70)}))
	require.NoError(t, l.Claim("dep-1", "sub-1"))
	require.NoError(t, l.Transfer("sub-1", "sub-2", "eth", model.NewAmount(30)))

	full := l.Provenance(ledger.ProvenanceFilter{})
	assert.Len(t, full, 2)

	sub2Only := l.Provenance(ledger.ProvenanceFilter{SubaccountID: "sub-2"})
	require.Len(t, sub2Only, 1)
	_, ok := sub2Only[0].Operation.(model.TransferOp)
	assert.True(t, ok)
}

func TestBalancesForSubaccountOmitsOtherSubaccounts(t *testing.T) {
	l, _, _ := newTestWallet(t)
	require.NoError(t, l.AddAsset(ethAsset()))
	require.NoError(t, l.AddSubaccount(model.Subaccount{SubaccountID: "sub-1"}))
	require.NoError(t, l.AddSubaccount(model.Subaccount{SubaccountID: "sub-2"}))
	require.NoError(t, l.RecordDeposit(model.InboxEntry{DepositID: "dep-1", AssetID: "eth", Amount: model.NewAmount(5)}))
	require.NoError(t, l.Claim("dep-1", "sub-1"))

	balances := l.BalancesForSubaccount("sub-1")
	require.Contains(t, balances, "eth")
	assert.Equal(t, 0, balances["eth"].Cmp(model.NewAmount(5)))

	assert.Empty(t, l.BalancesForSubaccount("sub-2"))
}
