// Package ledger defines the durable account records the burner program
// executes against, and the transactional store interface backing them.
package ledger

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	// ErrAccountNotFound is returned when an account doesn't exist.
	ErrAccountNotFound = errors.New("account not found")
)

// Account is a single durable record: a lamport balance, opaque data laid
// out by the owning program, and the owning program's id. Only the owning
// program's logic may mutate the data.
type Account struct {
	Lamports uint64
	Data     []byte
	Owner    ed25519.PublicKey
}

// Clone creates a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}

	dataCopy := make([]byte, len(a.Data))
	copy(dataCopy, a.Data)

	ownerCopy := make(ed25519.PublicKey, len(a.Owner))
	copy(ownerCopy, a.Owner)

	return &Account{
		Lamports: a.Lamports,
		Data:     dataCopy,
		Owner:    ownerCopy,
	}
}

// Tx is the view of the ledger inside one atomic unit of work. Reads
// observe prior writes within the same Tx.
type Tx interface {
	// Get finds the record at the given address.
	//
	// Returns ErrAccountNotFound if no record exists.
	Get(address ed25519.PublicKey) (*Account, error)

	// Put creates or updates the record at the given address.
	Put(address ed25519.PublicKey, account *Account) error

	// Delete removes the record at the given address. Deleting a missing
	// record is a no-op.
	Delete(address ed25519.PublicKey) error
}

// Store is a transactional account store. All mutations staged by the
// function passed to Update are committed together, or not at all if the
// function returns an error.
type Store interface {
	// Update executes fn within a read-write transaction.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// View executes fn within a read-only transaction. Writes made through
	// the Tx are discarded.
	View(ctx context.Context, fn func(tx Tx) error) error
}
