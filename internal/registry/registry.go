// Package registry implements the Wallet Registry: the address-keyed map
// of wallets and the per-wallet exclusive lock that every ledger mutation
// must run inside of.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/rs/zerolog"

	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/kms"
	"github.com/pass-wallet/enclave/internal/ledger"
	"github.com/pass-wallet/enclave/internal/metrics"
	"github.com/pass-wallet/enclave/internal/model"
)

// DefaultLockTimeout is the wait applied when a caller does not supply its
// own deadline via ctx.
const DefaultLockTimeout = 5 * time.Second

// walletSlot pairs a wallet aggregate with the semaphore that serializes
// access to it. semaphore.Weighted gives FIFO-fair, context-cancellable
// acquisition that a bare sync.Mutex cannot express.
type walletSlot struct {
	wallet *model.Wallet
	sem    *semaphore.Weighted

	mu           sync.Mutex
	poisoned     bool
	poisonReason string
}

// Registry owns every wallet known to this enclave process.
type Registry struct {
	mu      sync.RWMutex
	wallets map[model.Address]*walletSlot
	order   []model.Address

	kms            *kms.Manager
	log            zerolog.Logger
	strictGasLimit bool
}

// New builds a Registry. strictGasLimit is forwarded to every Ledger handed
// to WithWallet callbacks; see ledger.New.
func New(keyManager *kms.Manager, log zerolog.Logger, strictGasLimit bool) *Registry {
	return &Registry{
		wallets:        make(map[model.Address]*walletSlot),
		kms:            keyManager,
		log:            log,
		strictGasLimit: strictGasLimit,
	}
}

// Create provisions a fresh wallet: a new key pair in KM, and an empty
// wallet aggregate keyed by the resulting address.
func (r *Registry) Create(name, owner string) (model.Address, error) {
	addr, err := r.kms.GenerateAccount()
	if err != nil {
		return model.Address{}, coreerr.Wrap(coreerr.KindKmsFailure, "failed to generate wallet key", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[addr] = &walletSlot{
		wallet: model.NewWallet(addr, name, owner, time.Now()),
		sem:    semaphore.NewWeighted(1),
	}
	r.order = append(r.order, addr)
	metrics.SetWalletsActive(len(r.order))

	r.log.Info().Str("address", addr.String()).Str("name", name).Msg("wallet created")
	return addr, nil
}

// List returns every known wallet address in creation order.
func (r *Registry) List() []model.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Address, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) lookup(addr model.Address) (*walletSlot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.wallets[addr]
	return slot, ok
}

// WithWallet acquires addr's exclusive lock, within the deadline carried by
// ctx (or DefaultLockTimeout if ctx carries none), and runs fn against a
// Ledger wrapping that wallet. A panic inside fn poisons the slot: every
// subsequent call against the same address fails fast without attempting
// to acquire the lock, since the wallet's invariants can no longer be
// trusted after a partial mutation.
func (r *Registry) WithWallet(ctx context.Context, addr model.Address, fn func(*ledger.Ledger) error) (err error) {
	slot, ok := r.lookup(addr)
	if !ok {
		return coreerr.New(coreerr.KindUnknownWallet, addr.String())
	}

	slot.mu.Lock()
	if slot.poisoned {
		reason := slot.poisonReason
		slot.mu.Unlock()
		return coreerr.New(coreerr.KindFatalWallet, fmt.Sprintf("wallet %s is poisoned: %s", addr, reason))
	}
	slot.mu.Unlock()

	acquireCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, DefaultLockTimeout)
		defer cancel()
	}

	waitStart := time.Now()
	if err := slot.sem.Acquire(acquireCtx, 1); err != nil {
		return coreerr.Wrap(coreerr.KindTimeout, fmt.Sprintf("timed out acquiring lock for wallet %s", addr), err)
	}
	metrics.ObserveLockWait(time.Since(waitStart))
	defer slot.sem.Release(1)

	defer func() {
		if rec := recover(); rec != nil {
			slot.mu.Lock()
			slot.poisoned = true
			slot.poisonReason = fmt.Sprintf("panic: %v", rec)
			slot.mu.Unlock()
			r.log.Error().Str("address", addr.String()).Interface("panic", rec).Msg("wallet slot poisoned by panic")
			err = coreerr.New(coreerr.KindFatalWallet, fmt.Sprintf("internal error handling wallet %s", addr))
		}
	}()

	l := ledger.New(slot.wallet, r.kms, r.strictGasLimit)
	return fn(l)
}
