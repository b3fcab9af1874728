package ledger

import "github.com/pass-wallet/enclave/internal/kms"

// SignPersonalMessage signs message as an EIP-191 personal_sign digest
// under the wallet's own address. It never touches balances or provenance.
func (l *Ledger) SignPersonalMessage(message []byte) (kms.Signature65, error) {
	return l.signer.SignPersonalMessage(l.Wallet.Address, message)
}
