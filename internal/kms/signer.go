package kms

import "github.com/pass-wallet/enclave/internal/model"

// Signer is the subset of Manager the ledger needs for withdraw signing. It
// lets internal/ledger depend on an interface instead of the concrete KM,
// matching the component boundary in the design (WL calls KM, never the
// reverse).
type Signer interface {
	SignDigest(addr model.Address, digest []byte) (r, s []byte, recoveryID byte, err error)
	SignPersonalMessage(addr model.Address, message []byte) (Signature65, error)
}

var _ Signer = (*Manager)(nil)
