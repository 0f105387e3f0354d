package burner

import (
	"context"
	"crypto/ed25519"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
)

// TokenAuthority exposes the token program's burn and close capabilities.
// Both are restricted to the token account's registered owner; the
// implementation enforces that independently of the processor's own
// checks.
type TokenAuthority interface {
	// Burn removes amount tokens from the account against the stated
	// mint, reducing supply.
	Burn(tx ledger.Tx, account, mint, authority ed25519.PublicKey, amount uint64) error

	// CloseAccount deallocates an empty token account, releasing its
	// whole lamport balance to the destination.
	CloseAccount(tx ledger.Tx, account, destination, authority ed25519.PublicKey) error
}

// Host is the set of runtime capabilities the processor executes against.
// Transaction signature verification is a host concern: by the time an
// operation reaches the processor, the signer key it receives has been
// authenticated.
type Host interface {
	TokenAuthority

	// Update executes fn within a read-write ledger transaction. All
	// staged mutations commit together iff fn returns nil.
	Update(ctx context.Context, fn func(tx ledger.Tx) error) error

	// View executes fn within a read-only ledger transaction.
	View(ctx context.Context, fn func(tx ledger.Tx) error) error

	// MinimumBalance returns the rent-exempt reserve for a record of the
	// given data length.
	MinimumBalance(dataLen int) uint64

	// Unix returns the current cluster time.
	Unix() int64
}
