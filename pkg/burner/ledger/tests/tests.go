package tests

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
)

func RunTests(t *testing.T, s ledger.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s ledger.Store){
		testRoundTrip,
		testIsolation,
		testDelete,
		testRollback,
		testViewDiscardsWrites,
	} {
		tf(t, s)
		teardown()
	}
}

func generateAddress(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func testRoundTrip(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	address := generateAddress(t)
	owner := generateAddress(t)

	err := s.View(ctx, func(tx ledger.Tx) error {
		_, err := tx.Get(address)
		return err
	})
	assert.Equal(t, ledger.ErrAccountNotFound, errors.Cause(err))

	expected := &ledger.Account{
		Lamports: 1_000_000,
		Data:     []byte("account data"),
		Owner:    owner,
	}
	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		return tx.Put(address, expected)
	}))

	require.NoError(t, s.View(ctx, func(tx ledger.Tx) error {
		actual, err := tx.Get(address)
		require.NoError(t, err)
		assert.Equal(t, expected.Lamports, actual.Lamports)
		assert.Equal(t, expected.Data, actual.Data)
		assert.EqualValues(t, expected.Owner, actual.Owner)
		return nil
	}))
}

func testIsolation(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	address := generateAddress(t)
	owner := generateAddress(t)

	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		return tx.Put(address, &ledger.Account{Lamports: 100, Data: []byte{1, 2, 3}, Owner: owner})
	}))

	// Mutating a record returned by Get must not affect the store.
	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		account, err := tx.Get(address)
		require.NoError(t, err)

		account.Lamports = 0
		account.Data[0] = 42
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx ledger.Tx) error {
		account, err := tx.Get(address)
		require.NoError(t, err)
		assert.EqualValues(t, 100, account.Lamports)
		assert.Equal(t, []byte{1, 2, 3}, account.Data)
		return nil
	}))
}

func testDelete(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	address := generateAddress(t)
	owner := generateAddress(t)

	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		return tx.Put(address, &ledger.Account{Lamports: 100, Owner: owner})
	}))

	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		require.NoError(t, tx.Delete(address))

		// Reads within the same transaction observe the delete.
		_, err := tx.Get(address)
		assert.Equal(t, ledger.ErrAccountNotFound, errors.Cause(err))
		return nil
	}))

	err := s.View(ctx, func(tx ledger.Tx) error {
		_, err := tx.Get(address)
		return err
	})
	assert.Equal(t, ledger.ErrAccountNotFound, errors.Cause(err))

	// Deleting a missing record is a no-op.
	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		return tx.Delete(address)
	}))
}

func testRollback(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	address := generateAddress(t)
	other := generateAddress(t)
	owner := generateAddress(t)

	require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
		return tx.Put(address, &ledger.Account{Lamports: 100, Owner: owner})
	}))

	// A failed transaction commits nothing.
	errFailed := errors.New("precondition failed")
	err := s.Update(ctx, func(tx ledger.Tx) error {
		require.NoError(t, tx.Put(other, &ledger.Account{Lamports: 1, Owner: owner}))
		require.NoError(t, tx.Delete(address))
		return errFailed
	})
	assert.Equal(t, errFailed, err)

	require.NoError(t, s.View(ctx, func(tx ledger.Tx) error {
		account, err := tx.Get(address)
		require.NoError(t, err)
		assert.EqualValues(t, 100, account.Lamports)

		_, err = tx.Get(other)
		assert.Equal(t, ledger.ErrAccountNotFound, errors.Cause(err))
		return nil
	}))
}

func testViewDiscardsWrites(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	address := generateAddress(t)
	owner := generateAddress(t)

	_ = s.View(ctx, func(tx ledger.Tx) error {
		_ = tx.Put(address, &ledger.Account{Lamports: 1, Owner: owner})
		return nil
	})

	err := s.View(ctx, func(tx ledger.Tx) error {
		_, err := tx.Get(address)
		return err
	})
	assert.Equal(t, ledger.ErrAccountNotFound, errors.Cause(err))
}
