// Package ledger implements the Wallet Ledger: per-wallet state and the
// claim/transfer/withdraw state machine. Every exported method here assumes
// its caller already holds the wallet's exclusive lock (see
// internal/registry.WithWallet) — nothing in this package synchronizes
// itself.
package ledger

import (
	"time"

	"github.com/pass-wallet/enclave/internal/kms"
	"github.com/pass-wallet/enclave/internal/model"
)

// Ledger wraps one wallet aggregate and the signer it calls into for
// withdraw signing. TE's pure functions are used directly by Withdraw; they
// need no injected dependency.
type Ledger struct {
	Wallet *model.Wallet
	signer kms.Signer
	now    func() time.Time

	// strictGasLimit, when true, requires callers to supply an explicit
	// gas_limit on every non-ETH withdrawal instead of silently applying
	// the txencoder advisory defaults.
	strictGasLimit bool
}

// New wraps an existing wallet aggregate with the signer it should use for
// withdrawals. strictGasLimit gates whether Withdraw may fall back to the
// advisory per-asset gas limit defaults for non-ETH assets.
func New(wallet *model.Wallet, signer kms.Signer, strictGasLimit bool) *Ledger {
	return &Ledger{Wallet: wallet, signer: signer, now: time.Now, strictGasLimit: strictGasLimit}
}

func (l *Ledger) timestamp() uint64 {
	return uint64(l.now().Unix())
}
