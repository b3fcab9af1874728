package replay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/model"
	"github.com/pass-wallet/enclave/internal/replay"
)

func TestReplayReproducesLedgerBalances(t *testing.T) {
	addr := model.Address{0x01}
	wallet := model.NewWallet(addr, "w", "owner", time.Now())
	wallet.Subaccounts["main"] = model.Subaccount{SubaccountID: "main", Address: addr}
	wallet.Subaccounts["trade"] = model.Subaccount{SubaccountID: "trade", Address: addr}
	wallet.Assets["eth_mainnet"] = model.Asset{AssetID: "eth_mainnet", TokenType: model.TokenETH, Symbol: "ETH", Name: "Ether", Decimals: 18}

	wallet.AppendProvenance(1, nil, model.ClaimOp{
		DepositID:    "d1",
		SubaccountID: "main",
		AssetID:      "eth_mainnet",
		Amount:       model.NewAmount(1_000_000_000_000_000_000),
	})
	wallet.AppendProvenance(2, nil, model.TransferOp{
		FromSubaccount: "main",
		ToSubaccount:   "trade",
		AssetID:        "eth_mainnet",
		Amount:         model.NewAmount(400_000_000_000_000_000),
	})
	wallet.AppendProvenance(3, nil, model.WithdrawOp{
		SubaccountID: "main",
		AssetID:      "eth_mainnet",
		Amount:       model.NewAmount(100_000_000_000_000_000),
		Destination:  model.Address{0xde, 0xad},
		Nonce:        0,
		GasPrice:     20_000_000_000,
		GasLimit:     21_000,
		ChainID:      11155111,
	})
	wallet.Balances.Add(model.BalanceKey{SubaccountID: "main", AssetID: "eth_mainnet"}, model.NewAmount(500_000_000_000_000_000))
	wallet.Balances.Add(model.BalanceKey{SubaccountID: "trade", AssetID: "eth_mainnet"}, model.NewAmount(400_000_000_000_000_000))

	got, err := replay.Replay(wallet.Provenance)
	require.NoError(t, err)

	assert.Equal(t, 0, got.Get(model.BalanceKey{SubaccountID: "main", AssetID: "eth_mainnet"}).Cmp(
		wallet.Balances.Get(model.BalanceKey{SubaccountID: "main", AssetID: "eth_mainnet"})))
	assert.Equal(t, 0, got.Get(model.BalanceKey{SubaccountID: "trade", AssetID: "eth_mainnet"}).Cmp(
		wallet.Balances.Get(model.BalanceKey{SubaccountID: "trade", AssetID: "eth_mainnet"})))
}

func TestReplayRejectsDuplicateClaim(t *testing.T) {
	recs := []model.ProvenanceRecord{
		{Seq: 0, Operation: model.ClaimOp{DepositID: "d1", SubaccountID: "main", AssetID: "eth", Amount: model.NewAmount(1)}},
		{Seq: 1, Operation: model.ClaimOp{DepositID: "d1", SubaccountID: "main", AssetID: "eth", Amount: model.NewAmount(1)}},
	}
	_, err := replay.Replay(recs)
	require.Error(t, err)
}
