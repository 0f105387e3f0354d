package bank

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
	"github.com/plinko-labs/token-burner/pkg/solana/token"
)

// CreateMint allocates an initialized mint record with zero supply.
func (b *Bank) CreateMint(ctx context.Context, mint, authority ed25519.PublicKey, decimals uint8) error {
	return b.store.Update(ctx, func(tx ledger.Tx) error {
		if _, err := tx.Get(mint); err == nil {
			return token.ErrorAlreadyInUse
		} else if err != ledger.ErrAccountNotFound {
			return err
		}

		state := token.Mint{
			MintAuthority: authority,
			Decimals:      decimals,
			IsInitialized: true,
		}

		return tx.Put(mint, &ledger.Account{
			Lamports: b.MinimumBalance(token.MintSize),
			Data:     state.Marshal(),
			Owner:    token.ProgramKey,
		})
	})
}

// CreateTokenAccount allocates an initialized token account holding its
// rent-exempt reserve.
func (b *Bank) CreateTokenAccount(ctx context.Context, address, mint, owner ed25519.PublicKey) error {
	return b.store.Update(ctx, func(tx ledger.Tx) error {
		if _, err := tx.Get(address); err == nil {
			return token.ErrorAlreadyInUse
		} else if err != ledger.ErrAccountNotFound {
			return err
		}

		if _, err := getMint(tx, mint); err != nil {
			return err
		}

		state := token.Account{
			Mint:  mint,
			Owner: owner,
			State: token.AccountStateInitialized,
		}

		return tx.Put(address, &ledger.Account{
			Lamports: b.MinimumBalance(token.AccountSize),
			Data:     state.Marshal(),
			Owner:    token.ProgramKey,
		})
	})
}

// MintTo mints new tokens into the destination account, increasing the
// mint's supply.
func (b *Bank) MintTo(ctx context.Context, mint, dest ed25519.PublicKey, amount uint64) error {
	return b.store.Update(ctx, func(tx ledger.Tx) error {
		mintRecord, mintState, err := getMintRecord(tx, mint)
		if err != nil {
			return err
		}

		destRecord, destState, err := getTokenAccountRecord(tx, dest)
		if err != nil {
			return err
		}
		if !bytes.Equal(destState.Mint, mint) {
			return token.ErrorMintMismatch
		}

		mintState.Supply += amount
		destState.Amount += amount

		mintRecord.Data = mintState.Marshal()
		if err := tx.Put(mint, mintRecord); err != nil {
			return err
		}

		destRecord.Data = destState.Marshal()
		return tx.Put(dest, destRecord)
	})
}

// Burn removes tokens from an account and reduces the mint's supply. The
// authority must be the token account's registered owner.
func (b *Bank) Burn(tx ledger.Tx, account, mint, authority ed25519.PublicKey, amount uint64) error {
	record, state, err := getTokenAccountRecord(tx, account)
	if err != nil {
		return err
	}

	if !bytes.Equal(state.Owner, authority) {
		return token.ErrorOwnerMismatch
	}
	if !bytes.Equal(state.Mint, mint) {
		return token.ErrorMintMismatch
	}
	if state.Amount < amount {
		return token.ErrorInsufficientFunds
	}

	mintRecord, mintState, err := getMintRecord(tx, mint)
	if err != nil {
		return err
	}

	state.Amount -= amount
	mintState.Supply -= amount

	record.Data = state.Marshal()
	if err := tx.Put(account, record); err != nil {
		return err
	}

	mintRecord.Data = mintState.Marshal()
	return tx.Put(mint, mintRecord)
}

// CloseAccount deallocates an empty token account and releases its whole
// lamport balance to the destination. The authority must be the token
// account's registered owner.
func (b *Bank) CloseAccount(tx ledger.Tx, account, destination, authority ed25519.PublicKey) error {
	record, state, err := getTokenAccountRecord(tx, account)
	if err != nil {
		return err
	}

	if !bytes.Equal(state.Owner, authority) {
		return token.ErrorOwnerMismatch
	}
	if state.Amount != 0 {
		return token.ErrorNonNativeHasBalance
	}

	destRecord, err := tx.Get(destination)
	if err == ledger.ErrAccountNotFound {
		destRecord = &ledger.Account{Owner: systemOwner()}
	} else if err != nil {
		return err
	}

	destRecord.Lamports += record.Lamports

	if err := tx.Put(destination, destRecord); err != nil {
		return err
	}
	return tx.Delete(account)
}

func getTokenAccountRecord(tx ledger.Tx, address ed25519.PublicKey) (*ledger.Account, *token.Account, error) {
	record, err := tx.Get(address)
	if err != nil {
		return nil, nil, err
	}

	if !bytes.Equal(record.Owner, token.ProgramKey) {
		return nil, nil, errors.New("not a token account")
	}

	var state token.Account
	if !state.Unmarshal(record.Data) {
		return nil, nil, errors.New("invalid token account state")
	}

	return record, &state, nil
}

func getMintRecord(tx ledger.Tx, address ed25519.PublicKey) (*ledger.Account, *token.Mint, error) {
	record, err := tx.Get(address)
	if err != nil {
		return nil, nil, err
	}

	if !bytes.Equal(record.Owner, token.ProgramKey) {
		return nil, nil, errors.New("not a mint account")
	}

	var state token.Mint
	if !state.Unmarshal(record.Data) || !state.IsInitialized {
		return nil, nil, errors.New("invalid mint state")
	}

	return record, &state, nil
}

func getMint(tx ledger.Tx, address ed25519.PublicKey) (*token.Mint, error) {
	_, state, err := getMintRecord(tx, address)
	return state, err
}
