package kms

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/metrics"
	"github.com/pass-wallet/enclave/internal/model"
)

// Signature65 is a 65-byte r||s||v Ethereum signature. go-ethereum's
// crypto.Sign always returns a canonical low-s signature (EIP-2), so no
// additional canonicalization is needed here.
type Signature65 [65]byte

func (s Signature65) Bytes() []byte { return s[:] }

// SignPersonalMessage computes the EIP-191 "personal_sign" digest for
// message and signs it with address's key. v is 27+recovery_id as Ethereum
// tooling expects at the wire boundary.
func (m *Manager) SignPersonalMessage(addr model.Address, message []byte) (Signature65, error) {
	priv, err := m.unseal(addr)
	if err != nil {
		return Signature65{}, err
	}
	digest := PersonalSignDigest(message)
	sig, err := crypto.Sign(digest, priv)
	if err != nil {
		metrics.IncKmsFailure("sign_personal_message")
		return Signature65{}, coreerr.Wrap(coreerr.KindKmsFailure, "sign failed", err)
	}
	var out Signature65
	copy(out[:], sig[:65])
	out[64] = sig[64] + 27
	return out, nil
}

// PersonalSignDigest computes keccak256("\x19Ethereum Signed Message:\n" ||
// decimal(len(message)) || message), the EIP-191 personal-sign digest.
func PersonalSignDigest(message []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	return crypto.Keccak256([]byte(prefix), message)
}

// SignDigest is the low-level primitive the transaction encoder calls into:
// it signs an arbitrary 32-byte digest and returns (r, s, recoveryID) with a
// mandatory canonical low-s signature.
func (m *Manager) SignDigest(addr model.Address, digest []byte) (r, s []byte, recoveryID byte, err error) {
	if len(digest) != 32 {
		return nil, nil, 0, coreerr.New(coreerr.KindKmsFailure, "digest must be 32 bytes")
	}
	priv, uerr := m.unseal(addr)
	if uerr != nil {
		return nil, nil, 0, uerr
	}
	sig, serr := crypto.Sign(digest, priv)
	if serr != nil {
		metrics.IncKmsFailure("sign_digest")
		return nil, nil, 0, coreerr.Wrap(coreerr.KindKmsFailure, "sign failed", serr)
	}
	// crypto.Sign's output is [R(32) || S(32) || V(1)] with V in {0,1} and S
	// already canonicalized to the lower half of the curve order.
	r = append([]byte(nil), sig[0:32]...)
	s = append([]byte(nil), sig[32:64]...)
	recoveryID = sig[64]
	return r, s, recoveryID, nil
}
