package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/kms"
	"github.com/pass-wallet/enclave/internal/ledger"
	"github.com/pass-wallet/enclave/internal/model"
	"github.com/pass-wallet/enclave/internal/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	km, err := kms.NewManager("test-secret-phrase-not-for-production", zerolog.Nop())
	require.NoError(t, err)
	return registry.New(km, zerolog.Nop(), false)
}

func TestCreateAndList(t *testing.T) {
	reg := newTestRegistry(t)

	addr, err := reg.Create("alice", "owner-1")
	require.NoError(t, err)
	assert.False(t, addr.IsZero())

	addrs := reg.List()
	require.Len(t, addrs, 1)
	assert.Equal(t, addr, addrs[0])
}

func TestWithWalletUnknownAddress(t *testing.T) {
	reg := newTestRegistry(t)
	err := reg.WithWallet(context.Background(), model.Address{}, func(l *ledger.Ledger) error {
		t.Fatal("fn must not be invoked for an unknown wallet")
		return nil
	})
	require.Error(t, err)
}

func TestWithWalletMutatesUnderLock(t *testing.T) {
	reg := newTestRegistry(t)
	addr, err := reg.Create("bob", "owner-2")
	require.NoError(t, err)

	err = reg.WithWallet(context.Background(), addr, func(l *ledger.Ledger) error {
		return l.AddSubaccount(model.Subaccount{SubaccountID: "default", Address: addr})
	})
	require.NoError(t, err)

	err = reg.WithWallet(context.Background(), addr, func(l *ledger.Ledger) error {
		assert.Contains(t, l.Wallet.Subaccounts, "default")
		return nil
	})
	require.NoError(t, err)
}

func TestWithWalletSerializesConcurrentCallers(t *testing.T) {
	reg := newTestRegistry(t)
	addr, err := reg.Create("carol", "owner-3")
	require.NoError(t, err)

	var active int32
	var maxObserved int32
	done := make(chan error, 4)

	for i := 0; i < 4; i++ {
		go func() {
			done <- reg.WithWallet(context.Background(), addr, func(l *ledger.Ledger) error {
				cur := incr(&active)
				if cur > maxObserved {
					maxObserved = cur
				}
				time.Sleep(5 * time.Millisecond)
				decr(&active)
				return nil
			})
		}()
	}

	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}
	assert.LessOrEqual(t, maxObserved, int32(1))
}

func TestWithWalletPoisonsOnPanic(t *testing.T) {
	reg := newTestRegistry(t)
	addr, err := reg.Create("dave", "owner-4")
	require.NoError(t, err)

	err = reg.WithWallet(context.Background(), addr, func(l *ledger.Ledger) error {
		panic("simulated fatal corruption")
	})
	require.Error(t, err)

	err = reg.WithWallet(context.Background(), addr, func(l *ledger.Ledger) error {
		t.Fatal("fn must not run against a poisoned wallet")
		return nil
	})
	require.Error(t, err)
}

func TestWithWalletTimesOutWhenLocked(t *testing.T) {
	reg := newTestRegistry(t)
	addr, err := reg.Create("erin", "owner-5")
	require.NoError(t, err)

	release := make(chan struct{})
	holding := make(chan struct{})
	go func() {
		_ = reg.WithWallet(context.Background(), addr, func(l *ledger.Ledger) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = reg.WithWallet(ctx, addr, func(l *ledger.Ledger) error {
		t.Fatal("fn must not run while the lock is held")
		return nil
	})
	require.Error(t, err)
	close(release)
}

func incr(p *int32) int32 {
	*p++
	return *p
}

func decr(p *int32) int32 {
	*p--
	return *p
}
