// Package bank provides the runtime capabilities the burner processor
// executes against: a transactional account ledger, the rent model, the
// cluster clock, and the token program's mint/burn/close capabilities.
package bank

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
)

// Rent parameters matching the cluster defaults.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/rent.rs
const (
	lamportsPerByteYear     = 3480
	exemptionThresholdYears = 2
	accountStorageOverhead  = 128
)

type Bank struct {
	store ledger.Store
	clock func() int64
}

// New creates a Bank over the provided ledger store, using the wall clock.
func New(store ledger.Store) *Bank {
	return NewWithClock(store, func() int64 {
		return time.Now().Unix()
	})
}

// NewWithClock creates a Bank with an explicit clock, which tests use to
// pin timestamps.
func NewWithClock(store ledger.Store, clock func() int64) *Bank {
	return &Bank{
		store: store,
		clock: clock,
	}
}

func (b *Bank) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return b.store.Update(ctx, fn)
}

func (b *Bank) View(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return b.store.View(ctx, fn)
}

// MinimumBalance returns the rent-exempt reserve for a record of the given
// data length.
func (b *Bank) MinimumBalance(dataLen int) uint64 {
	return (accountStorageOverhead + uint64(dataLen)) * lamportsPerByteYear * exemptionThresholdYears
}

// Unix returns the current cluster time.
func (b *Bank) Unix() int64 {
	return b.clock()
}

// CreateWallet funds a system-owned account at the given address. Used to
// set up fee payers.
func (b *Bank) CreateWallet(ctx context.Context, address ed25519.PublicKey, lamports uint64) error {
	return b.store.Update(ctx, func(tx ledger.Tx) error {
		return tx.Put(address, &ledger.Account{
			Lamports: lamports,
			Owner:    systemOwner(),
		})
	})
}

// Balance returns the lamport balance of the account at the given address,
// or zero if it doesn't exist.
func (b *Bank) Balance(ctx context.Context, address ed25519.PublicKey) (uint64, error) {
	var balance uint64
	err := b.store.View(ctx, func(tx ledger.Tx) error {
		account, err := tx.Get(address)
		if err == ledger.ErrAccountNotFound {
			return nil
		} else if err != nil {
			return err
		}

		balance = account.Lamports
		return nil
	})
	return balance, err
}

func systemOwner() ed25519.PublicKey {
	return make(ed25519.PublicKey, ed25519.PublicKeySize)
}
