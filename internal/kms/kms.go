// Package kms is the enclave's Key Manager: the only component that ever
// touches plaintext secp256k1 material. Keys are encrypted at rest under a
// process-wide key-encryption key derived once from a startup secret.
package kms

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"

	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/metrics"
	"github.com/pass-wallet/enclave/internal/model"
)

const kekInfo = "pass-wallet-enclave-kek-v1"

// encryptedKey is the at-rest representation of one account's secret key.
// Ciphertext includes the AEAD tag; Nonce is the 96-bit GCM nonce used to
// seal it. Once stored, these bytes are never mutated.
type encryptedKey struct {
	ciphertext []byte
	nonce      []byte
}

// Manager custodies encrypted private keys for every address it has
// generated. It never logs key material, and decrypts transiently only for
// the duration of a single sign operation.
type Manager struct {
	mu   sync.RWMutex
	keys map[model.Address]encryptedKey
	// order preserves insertion order for ListAddresses' "deterministic
	// tests" requirement; the map above is unordered by construction.
	order []model.Address

	kek []byte
	log zerolog.Logger
}

// NewManager derives the process KEK from secretPhrase via HKDF-SHA256 and
// returns an empty key manager. secretPhrase is the ENCLAVE_SECRET the host
// process is configured with; rotation is out of scope.
func NewManager(secretPhrase string, log zerolog.Logger) (*Manager, error) {
	if secretPhrase == "" {
		return nil, coreerr.New(coreerr.KindKmsFailure, "ENCLAVE_SECRET must not be empty")
	}
	kek, err := deriveKEK(secretPhrase)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.KindKmsFailure, "failed to derive KEK", err)
	}
	return &Manager{
		keys: make(map[model.Address]encryptedKey),
		kek:  kek,
		log:  log.With().Str("component", "kms").Logger(),
	}, nil
}

func deriveKEK(secretPhrase string) ([]byte, error) {
	salt := []byte(kekInfo)
	reader := hkdf.New(sha256.New, []byte(secretPhrase), salt, nil)
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("hkdf expand: %w", err)
	}
	return key, nil
}

func newGCM(kek []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("new aes cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// GenerateAccount creates a new secp256k1 keypair, derives its Ethereum
// address, seals the secret under the process KEK, and stores it. The
// plaintext scalar is zeroized before this function returns.
func (m *Manager) GenerateAccount() (model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for attempt := 0; attempt < 8; attempt++ {
		priv, err := crypto.GenerateKey()
		if err != nil {
			return model.Address{}, coreerr.Wrap(coreerr.KindKmsFailure, "rng failure generating key", err)
		}

		addr := model.Address(crypto.PubkeyToAddress(priv.PublicKey))
		if _, exists := m.keys[addr]; exists {
			// Astronomically unlikely; retry with a fresh key instead of
			// overwriting existing material.
			zeroize(priv)
			continue
		}

		sealed, err := m.seal(priv)
		zeroize(priv)
		if err != nil {
			metrics.IncKmsFailure("generate")
			return model.Address{}, coreerr.Wrap(coreerr.KindKmsFailure, "failed to seal generated key", err)
		}

		m.keys[addr] = sealed
		m.order = append(m.order, addr)
		m.log.Info().Str("address", addr.String()).Msg("generated account")
		return addr, nil
	}
	return model.Address{}, coreerr.New(coreerr.KindKmsFailure, "failed to generate a non-colliding address")
}

func (m *Manager) seal(priv *ecdsa.PrivateKey) (encryptedKey, error) {
	gcm, err := newGCM(m.kek)
	if err != nil {
		return encryptedKey{}, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return encryptedKey{}, fmt.Errorf("generate nonce: %w", err)
	}
	plaintext := crypto.FromECDSA(priv)
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	zeroizeBytes(plaintext)
	return encryptedKey{ciphertext: ciphertext, nonce: nonce}, nil
}

func (m *Manager) unseal(addr model.Address) (*ecdsa.PrivateKey, error) {
	m.mu.RLock()
	enc, ok := m.keys[addr]
	m.mu.RUnlock()
	if !ok {
		return nil, coreerr.New(coreerr.KindUnknownAddress, addr.String())
	}

	gcm, err := newGCM(m.kek)
	if err != nil {
		metrics.IncKmsFailure("unseal")
		return nil, coreerr.Wrap(coreerr.KindKmsFailure, "cipher setup failed", err)
	}
	plaintext, err := gcm.Open(nil, enc.nonce, enc.ciphertext, nil)
	if err != nil {
		metrics.IncKmsFailure("unseal")
		return nil, coreerr.Wrap(coreerr.KindKmsFailure, "decryption failed", err)
	}
	defer zeroizeBytes(plaintext)

	priv, err := crypto.ToECDSA(plaintext)
	if err != nil {
		metrics.IncKmsFailure("unseal")
		return nil, coreerr.Wrap(coreerr.KindKmsFailure, "stored key material is invalid", err)
	}
	return priv, nil
}

// ListAddresses returns every generated address in insertion order.
func (m *Manager) ListAddresses() []model.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Address, len(m.order))
	copy(out, m.order)
	return out
}

// Has reports whether addr has a stored key.
func (m *Manager) Has(addr model.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.keys[addr]
	return ok
}

func zeroize(priv *ecdsa.PrivateKey) {
	if priv == nil || priv.D == nil {
		return
	}
	priv.D.SetInt64(0)
}

func zeroizeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
