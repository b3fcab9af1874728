package ledger

import (
	"encoding/hex"
	"math/big"

	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/model"
	"github.com/pass-wallet/enclave/internal/txencoder"
)

// WithdrawRequest carries every caller-supplied field for a withdrawal.
// GasPrice always falls back to the advisory default in internal/txencoder
// when nil. GasLimit falls back to the advisory per-asset default when nil,
// unless the ledger was constructed with strict gas limits, in which case
// an omitted GasLimit on a non-ETH withdrawal is a validation error.
type WithdrawRequest struct {
	SubaccountID string
	AssetID      string
	Amount       model.Amount
	Destination  model.Address
	ChainID      uint64
	GasPrice     *uint64
	GasLimit     *uint64
}

// Withdraw debits subaccountID's balance, builds and signs an EIP-155
// legacy transaction for the requested asset, and appends it to the
// outbox. On any failure — including a KM signing failure — no wallet
// state changes: the nonce increment in particular must never be observed
// if signing fails.
func (l *Ledger) Withdraw(req WithdrawRequest) (model.OutboxEntry, error) {
	if req.Amount.Sign() <= 0 {
		return model.OutboxEntry{}, coreerr.New(coreerr.KindInvalidAmount, "amount must be positive")
	}
	if req.Destination.IsZero() {
		return model.OutboxEntry{}, coreerr.New(coreerr.KindInvalidAddress, "destination must not be the zero address")
	}
	if _, ok := l.Wallet.Subaccounts[req.SubaccountID]; !ok {
		return model.OutboxEntry{}, coreerr.New(coreerr.KindUnknownSubaccount, req.SubaccountID)
	}
	asset, ok := l.Wallet.Assets[req.AssetID]
	if !ok {
		return model.OutboxEntry{}, coreerr.New(coreerr.KindUnknownAsset, req.AssetID)
	}

	balKey := model.BalanceKey{SubaccountID: req.SubaccountID, AssetID: req.AssetID}
	if l.Wallet.Balances.Get(balKey).Cmp(req.Amount) < 0 {
		return model.OutboxEntry{}, coreerr.New(coreerr.KindInsufficientFunds, req.SubaccountID+"/"+req.AssetID)
	}

	if l.strictGasLimit && asset.TokenType != model.TokenETH && req.GasLimit == nil {
		return model.OutboxEntry{}, coreerr.New(coreerr.KindInvalidAmount, "gas_limit is required for non-ETH withdrawals in strict mode")
	}

	to, value, data, gasLimit, err := buildCallFields(asset, l.Wallet.Address, req.Destination, req.Amount.Int(), req.GasLimit)
	if err != nil {
		return model.OutboxEntry{}, err
	}
	gasPrice := txencoder.DefaultGasPriceWei
	if req.GasPrice != nil {
		gasPrice = *req.GasPrice
	}

	// Stage everything computable before touching wallet state: the nonce
	// we are about to try is the wallet's current nonce, but it is not
	// committed to the wallet until KM has produced a signature.
	stagedNonce := l.Wallet.Nonce

	unsigned, err := txencoder.EncodeUnsigned(stagedNonce, new(big.Int).SetUint64(gasPrice), gasLimit, to, value, data, req.ChainID)
	if err != nil {
		return model.OutboxEntry{}, coreerr.Wrap(coreerr.KindKmsFailure, "failed to encode unsigned transaction", err)
	}
	digest := txencoder.SigningDigest(unsigned)

	r, s, recoveryID, err := l.signer.SignDigest(l.Wallet.Address, digest)
	if err != nil {
		// Signing failed: the nonce must not advance. Return without any
		// mutation below this point.
		return model.OutboxEntry{}, coreerr.Wrap(coreerr.KindKmsFailure, "failed to sign withdrawal digest", err)
	}

	signed, err := txencoder.EncodeSigned(stagedNonce, new(big.Int).SetUint64(gasPrice), gasLimit, to, value, data, req.ChainID, recoveryID, r, s)
	if err != nil {
		return model.OutboxEntry{}, coreerr.Wrap(coreerr.KindKmsFailure, "failed to encode signed transaction", err)
	}
	signedHex := "0x" + hex.EncodeToString(signed)

	// Commit: every step below this line is infallible bookkeeping, so the
	// wallet is never observed in a state where the nonce advanced but the
	// outbox/balance/provenance did not (or vice versa).
	l.Wallet.Nonce = stagedNonce + 1

	outboxID := l.Wallet.NextOutboxID
	l.Wallet.NextOutboxID++
	entry := model.OutboxEntry{
		OutboxID:             outboxID,
		AssetID:              req.AssetID,
		Amount:               req.Amount,
		SubaccountID:         req.SubaccountID,
		Destination:          req.Destination,
		ChainID:              req.ChainID,
		Nonce:                stagedNonce,
		GasPrice:             gasPrice,
		GasLimit:             gasLimit,
		SignedRawTransaction: signedHex,
		CreatedAt:            l.now(),
	}
	l.Wallet.Outbox = append(l.Wallet.Outbox, entry)

	l.Wallet.Balances.Sub(balKey, req.Amount)

	l.Wallet.AppendProvenance(l.timestamp(), nil, model.WithdrawOp{
		SubaccountID:         req.SubaccountID,
		AssetID:              req.AssetID,
		Amount:               req.Amount,
		Destination:          req.Destination,
		Nonce:                stagedNonce,
		GasPrice:             gasPrice,
		GasLimit:             gasLimit,
		ChainID:              req.ChainID,
		SignedRawTransaction: signedHex,
	})

	return entry, nil
}

// buildCallFields maps an asset to the (to, value, data, gasLimit) tuple
// per the asset-to-calldata mapping in the design. gasLimitOverride, when
// non-nil, wins over the per-asset default.
func buildCallFields(asset model.Asset, wallet, destination model.Address, amount *big.Int, gasLimitOverride *uint64) (to model.Address, value *big.Int, data []byte, gasLimit uint64, err error) {
	switch asset.TokenType {
	case model.TokenETH:
		to, value, data = txencoder.ETHCalldata(destination, amount)
		gasLimit = txencoder.DefaultGasLimitETH
	case model.TokenERC20:
		if asset.ContractAddress == nil {
			return model.Address{}, nil, nil, 0, coreerr.New(coreerr.KindInvalidAsset, "ERC20 asset missing contract_address")
		}
		to, value, data = txencoder.ERC20Calldata(*asset.ContractAddress, destination, amount)
		gasLimit = txencoder.DefaultGasLimitERC20
	case model.TokenERC721:
		contract, tokenID, terr := nftFields(asset)
		if terr != nil {
			return model.Address{}, nil, nil, 0, terr
		}
		to, value, data = txencoder.ERC721Calldata(contract, wallet, destination, tokenID)
		gasLimit = txencoder.DefaultGasLimitNFT
	case model.TokenERC1155:
		contract, tokenID, terr := nftFields(asset)
		if terr != nil {
			return model.Address{}, nil, nil, 0, terr
		}
		to, value, data = txencoder.ERC1155Calldata(contract, wallet, destination, tokenID, amount)
		gasLimit = txencoder.DefaultGasLimitNFT
	default:
		return model.Address{}, nil, nil, 0, coreerr.New(coreerr.KindInvalidAsset, "unknown token_type")
	}

	if gasLimitOverride != nil {
		gasLimit = *gasLimitOverride
	}
	return to, value, data, gasLimit, nil
}

func nftFields(asset model.Asset) (contract model.Address, tokenID *big.Int, err error) {
	if asset.ContractAddress == nil || asset.TokenID == nil {
		return model.Address{}, nil, coreerr.New(coreerr.KindInvalidAsset, "NFT asset missing contract_address or token_id")
	}
	id, ok := new(big.Int).SetString(*asset.TokenID, 10)
	if !ok {
		return model.Address{}, nil, coreerr.New(coreerr.KindInvalidAsset, "token_id is not a valid integer")
	}
	return *asset.ContractAddress, id, nil
}

// RemoveOutbox deletes a specific outbox entry, invoked by a host after a
// confirmed broadcast. No balance change; not recorded in provenance.
func (l *Ledger) RemoveOutbox(outboxID uint64) error {
	for i, entry := range l.Wallet.Outbox {
		if entry.OutboxID == outboxID {
			l.Wallet.Outbox = append(l.Wallet.Outbox[:i], l.Wallet.Outbox[i+1:]...)
			return nil
		}
	}
	return coreerr.New(coreerr.KindUnknownDeposit, "no such outbox entry")
}
