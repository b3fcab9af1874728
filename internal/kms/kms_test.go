package kms_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/kms"
)

func newTestManager(t *testing.T) *kms.Manager {
	t.Helper()
	m, err := kms.NewManager("test-secret-phrase-not-for-production", zerolog.Nop())
	require.NoError(t, err)
	return m
}

func TestNewManagerRejectsEmptySecret(t *testing.T) {
	_, err := kms.NewManager("", zerolog.Nop())
	require.Error(t, err)
}

func TestGenerateAccountProducesUniqueAddresses(t *testing.T) {
	m := newTestManager(t)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		addr, err := m.GenerateAccount()
		require.NoError(t, err)
		require.False(t, seen[addr.String()])
		seen[addr.String()] = true
		assert.True(t, m.Has(addr))
	}
	assert.Len(t, m.ListAddresses(), 10)
}

func TestSignPersonalMessageRecoversToOwnAddress(t *testing.T) {
	m := newTestManager(t)
	addr, err := m.GenerateAccount()
	require.NoError(t, err)

	message := []byte("hello enclave")
	sig, err := m.SignPersonalMessage(addr, message)
	require.NoError(t, err)

	digest := kms.PersonalSignDigest(message)
	recoverable := append([]byte(nil), sig.Bytes()...)
	recoverable[64] -= 27

	pub, err := crypto.SigToPub(digest, recoverable)
	require.NoError(t, err)
	recovered := crypto.PubkeyToAddress(*pub)
	assert.Equal(t, addr.String(), strings.ToLower(recovered.Hex()))
}

func TestSignDigestProducesCanonicalLowS(t *testing.T) {
	m := newTestManager(t)
	addr, err := m.GenerateAccount()
	require.NoError(t, err)

	digest := crypto.Keccak256([]byte("arbitrary payload"))
	r, s, recoveryID, err := m.SignDigest(addr, digest)
	require.NoError(t, err)
	assert.Len(t, r, 32)
	assert.Len(t, s, 32)
	assert.LessOrEqual(t, recoveryID, byte(1))

	sig := append(append(append([]byte(nil), r...), s...), recoveryID)
	pub, err := crypto.SigToPub(digest, sig)
	require.NoError(t, err)
	recovered := crypto.PubkeyToAddress(*pub)
	assert.Equal(t, addr.String(), strings.ToLower(recovered.Hex()))
}

func TestSignDigestRejectsWrongLength(t *testing.T) {
	m := newTestManager(t)
	addr, err := m.GenerateAccount()
	require.NoError(t, err)

	_, _, _, err = m.SignDigest(addr, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestSignUnknownAddressFails(t *testing.T) {
	m := newTestManager(t)
	var unknown [20]byte
	unknown[0] = 0xAB
	_, err := m.SignPersonalMessage(unknown, []byte("x"))
	require.Error(t, err)
}

func TestPersonalSignDigestKnownVector(t *testing.T) {
	// go-ethereum's accounts.TextHash / SignHash test vector: message "hello".
	digest := kms.PersonalSignDigest([]byte("hello"))
	expected := crypto.Keccak256([]byte("\x19Ethereum Signed Message:\n5hello"))
	assert.Equal(t, expected, digest)
}
