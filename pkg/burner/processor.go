// Package burner implements the account-lifecycle operations of the token
// burner program: one-shot state initialization, per-user vault creation
// and withdrawal, and validation/closing/burning of the caller's token
// accounts with rent routed into the caller's vault.
package burner

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
	"github.com/sirupsen/logrus"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
	burner_token "github.com/plinko-labs/token-burner/pkg/solana/burner"
	"github.com/plinko-labs/token-burner/pkg/solana/token"
)

type Processor struct {
	log  *logrus.Entry
	host Host
}

func NewProcessor(host Host) *Processor {
	return &Processor{
		log:  logrus.StandardLogger().WithField("type", "burner/processor"),
		host: host,
	}
}

// Initialize creates the singleton state record at its canonical address.
// The authority funds the record's rent-exempt reserve and is recorded as
// the administrator.
func (p *Processor) Initialize(ctx context.Context, authority ed25519.PublicKey) (*burner_token.StateAccount, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":    "Initialize",
		"authority": base58.Encode(authority),
	})

	stateAddress, _, err := burner_token.GetStateAddress()
	if err != nil {
		log.WithError(err).Warn("failure deriving state address")
		return nil, err
	}

	var state *burner_token.StateAccount
	err = p.host.Update(ctx, func(tx ledger.Tx) error {
		if _, err := tx.Get(stateAddress); err == nil {
			return ErrAlreadyInitialized
		} else if err != ledger.ErrAccountNotFound {
			return err
		}

		reserve := p.host.MinimumBalance(burner_token.StateAccountSize)
		if err := debit(tx, authority, reserve); err != nil {
			return err
		}

		state = burner_token.NewStateAccount(authority, true, p.host.Unix())

		return tx.Put(stateAddress, &ledger.Account{
			Lamports: reserve,
			Data:     state.Marshal(),
			Owner:    burner_token.PROGRAM_ID,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info("burner state initialized")
	return state, nil
}

// CreateVault allocates the user's vault record at its canonical per-user
// address. The user funds the record's rent-exempt reserve.
func (p *Processor) CreateVault(ctx context.Context, user ed25519.PublicKey) (*burner_token.VaultAccount, error) {
	log := p.log.WithFields(logrus.Fields{
		"method": "CreateVault",
		"user":   base58.Encode(user),
	})

	vaultAddress, bump, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{
		Owner: user,
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving vault address")
		return nil, err
	}

	var vault *burner_token.VaultAccount
	err = p.host.Update(ctx, func(tx ledger.Tx) error {
		if _, err := tx.Get(vaultAddress); err == nil {
			return ErrVaultAlreadyExists
		} else if err != ledger.ErrAccountNotFound {
			return err
		}

		reserve := p.host.MinimumBalance(burner_token.VaultAccountSize)
		if err := debit(tx, user, reserve); err != nil {
			return err
		}

		vault = burner_token.NewVaultAccount(user, bump, 0)

		return tx.Put(vaultAddress, &ledger.Account{
			Lamports: reserve,
			Data:     vault.Marshal(),
			Owner:    burner_token.PROGRAM_ID,
		})
	})
	if err != nil {
		return nil, err
	}

	log.WithField("vault", base58.Encode(vaultAddress)).Info("vault created")
	return vault, nil
}

// WithdrawVault moves everything above the vault's rent-exempt reserve to
// the owner's wallet. The vault address is re-derived from the signer, so
// the destination is always the verified owner; the record itself is never
// deallocated. Returns the amount withdrawn, which is zero when the
// balance already equals the reserve.
func (p *Processor) WithdrawVault(ctx context.Context, user, vault ed25519.PublicKey) (uint64, error) {
	log := p.log.WithFields(logrus.Fields{
		"method": "WithdrawVault",
		"user":   base58.Encode(user),
	})

	var withdrawn uint64
	err := p.host.Update(ctx, func(tx ledger.Tx) error {
		record, _, err := p.getVaultChecked(tx, user, vault)
		if err != nil {
			return err
		}

		reserve := p.host.MinimumBalance(len(record.Data))
		if record.Lamports <= reserve {
			return nil
		}
		withdrawn = record.Lamports - reserve

		wallet, err := tx.Get(user)
		if err == ledger.ErrAccountNotFound {
			wallet = &ledger.Account{Owner: make(ed25519.PublicKey, ed25519.PublicKeySize)}
		} else if err != nil {
			return err
		}

		// Single bounded movement, vault to owner wallet.
		record.Lamports -= withdrawn
		wallet.Lamports += withdrawn

		if err := tx.Put(vault, record); err != nil {
			return err
		}
		return tx.Put(user, wallet)
	})
	if err != nil {
		return 0, err
	}

	if withdrawn == 0 {
		log.Info("no lamports to withdraw")
	} else {
		log.WithField("lamports", withdrawn).Info("withdrew lamports to user")
	}
	return withdrawn, nil
}

// GetStateAccount returns the burner state record, or
// ledger.ErrAccountNotFound before initialization.
func (p *Processor) GetStateAccount(ctx context.Context) (*burner_token.StateAccount, error) {
	stateAddress, _, err := burner_token.GetStateAddress()
	if err != nil {
		return nil, err
	}

	var state burner_token.StateAccount
	err = p.host.View(ctx, func(tx ledger.Tx) error {
		record, err := tx.Get(stateAddress)
		if err != nil {
			return err
		}
		return state.Unmarshal(record.Data)
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GetVaultAccount returns the user's vault record, or
// ledger.ErrAccountNotFound if no vault has been created.
func (p *Processor) GetVaultAccount(ctx context.Context, user ed25519.PublicKey) (*burner_token.VaultAccount, error) {
	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{
		Owner: user,
	})
	if err != nil {
		return nil, err
	}

	var vault burner_token.VaultAccount
	err = p.host.View(ctx, func(tx ledger.Tx) error {
		record, err := tx.Get(vaultAddress)
		if err != nil {
			return err
		}
		return vault.Unmarshal(record.Data)
	})
	if err != nil {
		return nil, err
	}
	return &vault, nil
}

// Diagnostic is the read-only record emitted by ValidateTokenAccount.
type Diagnostic struct {
	Mint    ed25519.PublicKey
	Owner   ed25519.PublicKey
	Amount  uint64
	IsEmpty bool
}

// ValidateTokenAccount inspects a token account on behalf of the signer:
// it must deserialize as a token account and be owned by the signer. No
// state is mutated.
func (p *Processor) ValidateTokenAccount(ctx context.Context, user, tokenAccount ed25519.PublicKey) (*Diagnostic, error) {
	log := p.log.WithFields(logrus.Fields{
		"method": "ValidateTokenAccount",
		"user":   base58.Encode(user),
	})

	var diagnostic *Diagnostic
	err := p.host.View(ctx, func(tx ledger.Tx) error {
		state, err := getTokenAccountChecked(tx, user, tokenAccount)
		if err != nil {
			return err
		}

		diagnostic = &Diagnostic{
			Mint:    state.Mint,
			Owner:   state.Owner,
			Amount:  state.Amount,
			IsEmpty: state.Amount == 0,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"mint":     base58.Encode(diagnostic.Mint),
		"amount":   diagnostic.Amount,
		"is_empty": diagnostic.IsEmpty,
	}).Info("valid token account")
	return diagnostic, nil
}

// CloseTokenAccount destroys an empty token account owned by the signer.
// The released rent goes to the signer's vault, never to a caller-supplied
// destination, and the vault's collected tally is credited by the same
// amount. Returns the reclaimed lamports.
func (p *Processor) CloseTokenAccount(ctx context.Context, user, tokenAccount, vault ed25519.PublicKey) (uint64, error) {
	log := p.log.WithFields(logrus.Fields{
		"method": "CloseTokenAccount",
		"user":   base58.Encode(user),
	})

	var reclaimed uint64
	err := p.host.Update(ctx, func(tx ledger.Tx) error {
		state, err := getTokenAccountChecked(tx, user, tokenAccount)
		if err != nil {
			return err
		}

		if state.Amount != 0 {
			return ErrAccountNotEmpty
		}

		reclaimed, err = p.closeIntoVault(tx, user, tokenAccount, vault)
		return err
	})
	if err != nil {
		return 0, err
	}

	log.WithField("lamports", reclaimed).Info("token account closed, rent sent to vault")
	return reclaimed, nil
}

// BurnAndCloseTokenAccount burns the full balance of the signer's token
// account (if any), then destroys the account and routes the released rent
// to the signer's vault. Returns the burned amount and the reclaimed
// lamports.
func (p *Processor) BurnAndCloseTokenAccount(ctx context.Context, user, tokenAccount, mint, vault ed25519.PublicKey) (uint64, uint64, error) {
	log := p.log.WithFields(logrus.Fields{
		"method": "BurnAndCloseTokenAccount",
		"user":   base58.Encode(user),
	})

	var burned, reclaimed uint64
	err := p.host.Update(ctx, func(tx ledger.Tx) error {
		state, err := getTokenAccountChecked(tx, user, tokenAccount)
		if err != nil {
			return err
		}

		if !bytes.Equal(state.Mint, mint) {
			return ErrInvalidMint
		}

		if state.Amount > 0 {
			burned = state.Amount
			if err := p.host.Burn(tx, tokenAccount, mint, user, burned); err != nil {
				return err
			}
		}

		reclaimed, err = p.closeIntoVault(tx, user, tokenAccount, vault)
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	log.WithFields(logrus.Fields{
		"burned":   burned,
		"lamports": reclaimed,
	}).Info("token account burned and closed")
	return burned, reclaimed, nil
}

// closeIntoVault verifies the vault against its derivation and recorded
// owner, closes the token account with the vault as destination, and
// credits the vault's collected tally.
func (p *Processor) closeIntoVault(tx ledger.Tx, user, tokenAccount, vault ed25519.PublicKey) (uint64, error) {
	record, state, err := p.getVaultChecked(tx, user, vault)
	if err != nil {
		return 0, err
	}

	tokenRecord, err := tx.Get(tokenAccount)
	if err != nil {
		return 0, err
	}
	reclaimed := tokenRecord.Lamports

	if err := p.host.CloseAccount(tx, tokenAccount, vault, user); err != nil {
		return 0, err
	}

	// The close credited the vault's balance; refresh the record before
	// updating the tally so the lamports aren't lost.
	record, err = tx.Get(vault)
	if err != nil {
		return 0, err
	}

	state.LamportsCollected += reclaimed
	record.Data = state.Marshal()

	return reclaimed, tx.Put(vault, record)
}

// getVaultChecked re-derives the signer's canonical vault address,
// verifies the supplied address against it, and checks the recorded owner.
func (p *Processor) getVaultChecked(tx ledger.Tx, user, vault ed25519.PublicKey) (*ledger.Account, *burner_token.VaultAccount, error) {
	derived, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{
		Owner: user,
	})
	if err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(derived, vault) {
		return nil, nil, ErrAddressMismatch
	}

	record, err := tx.Get(vault)
	if err != nil {
		return nil, nil, err
	}

	var state burner_token.VaultAccount
	if err := state.Unmarshal(record.Data); err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(state.Owner, user) {
		return nil, nil, ErrInvalidOwner
	}

	return record, &state, nil
}

// getTokenAccountChecked runs the validator checks: the record must
// deserialize as a token account and its recorded owner must equal the
// signer.
func getTokenAccountChecked(tx ledger.Tx, user, tokenAccount ed25519.PublicKey) (*token.Account, error) {
	record, err := tx.Get(tokenAccount)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(record.Owner, token.ProgramKey) {
		return nil, ErrInvalidTokenAccount
	}

	var state token.Account
	if !state.Unmarshal(record.Data) {
		return nil, ErrInvalidTokenAccount
	}

	if !bytes.Equal(state.Owner, user) {
		return nil, ErrInvalidOwner
	}

	return &state, nil
}

// debit removes lamports from a system-owned wallet, failing when the
// balance can't cover the amount.
func debit(tx ledger.Tx, address ed25519.PublicKey, amount uint64) error {
	wallet, err := tx.Get(address)
	if err == ledger.ErrAccountNotFound {
		return ErrInsufficientFunds
	} else if err != nil {
		return err
	}

	if wallet.Lamports < amount {
		return ErrInsufficientFunds
	}

	wallet.Lamports -= amount
	return tx.Put(address, wallet)
}
