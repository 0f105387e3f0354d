package burner

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plinko-labs/token-burner/pkg/burner/bank"
	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
	"github.com/plinko-labs/token-burner/pkg/burner/ledger/memory"
	burner_token "github.com/plinko-labs/token-burner/pkg/solana/burner"
	"github.com/plinko-labs/token-burner/pkg/solana/token"
)

const testUnixTime = 1700000000

type testEnv struct {
	ctx       context.Context
	bank      *bank.Bank
	processor *Processor
}

func setup(t *testing.T) *testEnv {
	b := bank.NewWithClock(memory.New(), func() int64 { return testUnixTime })
	return &testEnv{
		ctx:       context.Background(),
		bank:      b,
		processor: NewProcessor(b),
	}
}

func TestProcessor_Initialize(t *testing.T) {
	env := setup(t)

	authority := generateKey(t)
	fundWallet(t, env, authority, 10_000_000)

	state, err := env.processor.Initialize(env.ctx, authority)
	require.NoError(t, err)
	require.EqualValues(t, authority, state.Authority)
	require.True(t, state.IsInitialized)
	require.EqualValues(t, testUnixTime, state.CreatedAt)

	stateAddress, _, err := burner_token.GetStateAddress()
	require.NoError(t, err)

	record := getRecord(t, env, stateAddress)
	require.Equal(t, env.bank.MinimumBalance(burner_token.StateAccountSize), record.Lamports)
	require.EqualValues(t, burner_token.PROGRAM_ID, record.Owner)

	balance, err := env.bank.Balance(env.ctx, authority)
	require.NoError(t, err)
	require.Equal(t, 10_000_000-env.bank.MinimumBalance(burner_token.StateAccountSize), balance)

	// A second attempt fails and leaves the original record untouched,
	// regardless of who signs it.
	other := generateKey(t)
	fundWallet(t, env, other, 10_000_000)

	_, err = env.processor.Initialize(env.ctx, other)
	require.Equal(t, ErrAlreadyInitialized, err)

	stored, err := env.processor.GetStateAccount(env.ctx)
	require.NoError(t, err)
	require.EqualValues(t, authority, stored.Authority)
	require.EqualValues(t, testUnixTime, stored.CreatedAt)
}

func TestProcessor_Initialize_InsufficientFunds(t *testing.T) {
	env := setup(t)

	authority := generateKey(t)
	fundWallet(t, env, authority, 1)

	_, err := env.processor.Initialize(env.ctx, authority)
	require.Equal(t, ErrInsufficientFunds, err)

	stateAddress, _, err := burner_token.GetStateAddress()
	require.NoError(t, err)
	requireNoRecord(t, env, stateAddress)
}

func TestProcessor_CreateVault(t *testing.T) {
	env := setup(t)

	user1 := generateKey(t)
	user2 := generateKey(t)
	fundWallet(t, env, user1, 10_000_000)
	fundWallet(t, env, user2, 10_000_000)

	vault1, err := env.processor.CreateVault(env.ctx, user1)
	require.NoError(t, err)
	vault2, err := env.processor.CreateVault(env.ctx, user2)
	require.NoError(t, err)

	require.EqualValues(t, user1, vault1.Owner)
	require.EqualValues(t, user2, vault2.Owner)
	require.EqualValues(t, 0, vault1.LamportsCollected)

	address1, bump1, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user1})
	require.NoError(t, err)
	address2, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user2})
	require.NoError(t, err)

	require.NotEqualValues(t, address1, address2)
	require.Equal(t, bump1, vault1.Bump)

	record := getRecord(t, env, address1)
	require.Equal(t, env.bank.MinimumBalance(burner_token.VaultAccountSize), record.Lamports)

	_, err = env.processor.CreateVault(env.ctx, user1)
	require.Equal(t, ErrVaultAlreadyExists, err)

	unfunded := generateKey(t)
	_, err = env.processor.CreateVault(env.ctx, unfunded)
	require.Equal(t, ErrInsufficientFunds, err)
}

func TestProcessor_WithdrawVault(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	fundWallet(t, env, user, 10_000_000)

	_, err := env.processor.CreateVault(env.ctx, user)
	require.NoError(t, err)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	// Top the vault up past its reserve.
	require.NoError(t, env.bank.Update(env.ctx, func(tx ledger.Tx) error {
		record, err := tx.Get(vaultAddress)
		if err != nil {
			return err
		}
		record.Lamports += 5000
		return tx.Put(vaultAddress, record)
	}))

	before, err := env.bank.Balance(env.ctx, user)
	require.NoError(t, err)

	withdrawn, err := env.processor.WithdrawVault(env.ctx, user, vaultAddress)
	require.NoError(t, err)
	require.EqualValues(t, 5000, withdrawn)

	record := getRecord(t, env, vaultAddress)
	require.Equal(t, env.bank.MinimumBalance(burner_token.VaultAccountSize), record.Lamports)

	after, err := env.bank.Balance(env.ctx, user)
	require.NoError(t, err)
	require.Equal(t, before+5000, after)

	// Nothing above the reserve now.
	withdrawn, err = env.processor.WithdrawVault(env.ctx, user, vaultAddress)
	require.NoError(t, err)
	require.EqualValues(t, 0, withdrawn)

	// Another signer can't target this vault.
	attacker := generateKey(t)
	fundWallet(t, env, attacker, 10_000_000)
	_, err = env.processor.WithdrawVault(env.ctx, attacker, vaultAddress)
	require.Equal(t, ErrAddressMismatch, err)
}

func TestProcessor_WithdrawVault_InvalidOwner(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	forged := burner_token.NewVaultAccount(generateKey(t), 0, 0)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	require.NoError(t, env.bank.Update(env.ctx, func(tx ledger.Tx) error {
		return tx.Put(vaultAddress, &ledger.Account{
			Lamports: 1_000_000,
			Data:     forged.Marshal(),
			Owner:    burner_token.PROGRAM_ID,
		})
	}))

	_, err = env.processor.WithdrawVault(env.ctx, user, vaultAddress)
	require.Equal(t, ErrInvalidOwner, err)
}

func TestProcessor_ValidateTokenAccount(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	mint := generateKey(t)
	tokenAccount := generateKey(t)

	require.NoError(t, env.bank.CreateMint(env.ctx, mint, generateKey(t), 6))
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, tokenAccount, mint, user))
	require.NoError(t, env.bank.MintTo(env.ctx, mint, tokenAccount, 42))

	diagnostic, err := env.processor.ValidateTokenAccount(env.ctx, user, tokenAccount)
	require.NoError(t, err)
	require.EqualValues(t, mint, diagnostic.Mint)
	require.EqualValues(t, user, diagnostic.Owner)
	require.EqualValues(t, 42, diagnostic.Amount)
	require.False(t, diagnostic.IsEmpty)

	// Validation is pure, so repeating it yields the same result.
	repeated, err := env.processor.ValidateTokenAccount(env.ctx, user, tokenAccount)
	require.NoError(t, err)
	require.Equal(t, diagnostic, repeated)

	empty := generateKey(t)
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, empty, mint, user))

	diagnostic, err = env.processor.ValidateTokenAccount(env.ctx, user, empty)
	require.NoError(t, err)
	require.True(t, diagnostic.IsEmpty)

	// A different signer is rejected even though the account is valid.
	_, err = env.processor.ValidateTokenAccount(env.ctx, generateKey(t), tokenAccount)
	require.Equal(t, ErrInvalidOwner, err)

	// A system-owned wallet is not a token account.
	wallet := generateKey(t)
	fundWallet(t, env, wallet, 1000)
	_, err = env.processor.ValidateTokenAccount(env.ctx, user, wallet)
	require.Equal(t, ErrInvalidTokenAccount, err)

	_, err = env.processor.ValidateTokenAccount(env.ctx, user, generateKey(t))
	require.Equal(t, ledger.ErrAccountNotFound, err)
}

func TestProcessor_CloseTokenAccount(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	mint := generateKey(t)
	tokenAccount := generateKey(t)
	fundWallet(t, env, user, 10_000_000)

	require.NoError(t, env.bank.CreateMint(env.ctx, mint, generateKey(t), 6))
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, tokenAccount, mint, user))

	_, err := env.processor.CreateVault(env.ctx, user)
	require.NoError(t, err)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	vaultReserve := env.bank.MinimumBalance(burner_token.VaultAccountSize)
	tokenRent := env.bank.MinimumBalance(token.AccountSize)

	reclaimed, err := env.processor.CloseTokenAccount(env.ctx, user, tokenAccount, vaultAddress)
	require.NoError(t, err)
	require.Equal(t, tokenRent, reclaimed)

	record := getRecord(t, env, vaultAddress)
	require.Equal(t, vaultReserve+tokenRent, record.Lamports)

	var vault burner_token.VaultAccount
	require.NoError(t, vault.Unmarshal(record.Data))
	require.Equal(t, tokenRent, vault.LamportsCollected)

	requireNoRecord(t, env, tokenAccount)

	// A second close can't double-credit the vault.
	_, err = env.processor.CloseTokenAccount(env.ctx, user, tokenAccount, vaultAddress)
	require.Equal(t, ledger.ErrAccountNotFound, err)

	stored, err := env.processor.GetVaultAccount(env.ctx, user)
	require.NoError(t, err)
	require.Equal(t, tokenRent, stored.LamportsCollected)
}

func TestProcessor_CloseTokenAccount_NotEmpty(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	mint := generateKey(t)
	tokenAccount := generateKey(t)
	fundWallet(t, env, user, 10_000_000)

	require.NoError(t, env.bank.CreateMint(env.ctx, mint, generateKey(t), 6))
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, tokenAccount, mint, user))
	require.NoError(t, env.bank.MintTo(env.ctx, mint, tokenAccount, 1))

	_, err := env.processor.CreateVault(env.ctx, user)
	require.NoError(t, err)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	_, err = env.processor.CloseTokenAccount(env.ctx, user, tokenAccount, vaultAddress)
	require.Equal(t, ErrAccountNotEmpty, err)

	// Neither the token account nor the vault moved.
	diagnostic, err := env.processor.ValidateTokenAccount(env.ctx, user, tokenAccount)
	require.NoError(t, err)
	require.EqualValues(t, 1, diagnostic.Amount)

	record := getRecord(t, env, vaultAddress)
	require.Equal(t, env.bank.MinimumBalance(burner_token.VaultAccountSize), record.Lamports)

	var vault burner_token.VaultAccount
	require.NoError(t, vault.Unmarshal(record.Data))
	require.EqualValues(t, 0, vault.LamportsCollected)
}

func TestProcessor_BurnAndCloseTokenAccount(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	mint := generateKey(t)
	tokenAccount := generateKey(t)
	fundWallet(t, env, user, 10_000_000)

	require.NoError(t, env.bank.CreateMint(env.ctx, mint, generateKey(t), 6))
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, tokenAccount, mint, user))
	require.NoError(t, env.bank.MintTo(env.ctx, mint, tokenAccount, 5000))

	_, err := env.processor.CreateVault(env.ctx, user)
	require.NoError(t, err)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	// Naming the wrong mint fails before anything is burned.
	_, _, err = env.processor.BurnAndCloseTokenAccount(env.ctx, user, tokenAccount, generateKey(t), vaultAddress)
	require.Equal(t, ErrInvalidMint, err)

	burned, reclaimed, err := env.processor.BurnAndCloseTokenAccount(env.ctx, user, tokenAccount, mint, vaultAddress)
	require.NoError(t, err)
	require.EqualValues(t, 5000, burned)
	require.Equal(t, env.bank.MinimumBalance(token.AccountSize), reclaimed)

	// The burn reduced the mint's supply to zero.
	var mintState token.Mint
	require.True(t, mintState.Unmarshal(getRecord(t, env, mint).Data))
	require.EqualValues(t, 0, mintState.Supply)

	var vault burner_token.VaultAccount
	require.NoError(t, vault.Unmarshal(getRecord(t, env, vaultAddress).Data))
	require.Equal(t, reclaimed, vault.LamportsCollected)

	requireNoRecord(t, env, tokenAccount)
}

func TestProcessor_BurnAndCloseTokenAccount_EmptyAccount(t *testing.T) {
	env := setup(t)

	user := generateKey(t)
	mint := generateKey(t)
	tokenAccount := generateKey(t)
	fundWallet(t, env, user, 10_000_000)

	require.NoError(t, env.bank.CreateMint(env.ctx, mint, generateKey(t), 6))
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, tokenAccount, mint, user))

	_, err := env.processor.CreateVault(env.ctx, user)
	require.NoError(t, err)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	burned, reclaimed, err := env.processor.BurnAndCloseTokenAccount(env.ctx, user, tokenAccount, mint, vaultAddress)
	require.NoError(t, err)
	require.EqualValues(t, 0, burned)
	require.Equal(t, env.bank.MinimumBalance(token.AccountSize), reclaimed)
}

func TestProcessor_Lifecycle(t *testing.T) {
	env := setup(t)

	authority := generateKey(t)
	user := generateKey(t)
	mint := generateKey(t)
	tokenAccount := generateKey(t)
	fundWallet(t, env, authority, 10_000_000)
	fundWallet(t, env, user, 10_000_000)

	_, err := env.processor.Initialize(env.ctx, authority)
	require.NoError(t, err)

	_, err = env.processor.CreateVault(env.ctx, user)
	require.NoError(t, err)

	vaultAddress, _, err := burner_token.GetVaultAddress(&burner_token.GetVaultAddressArgs{Owner: user})
	require.NoError(t, err)

	require.NoError(t, env.bank.CreateMint(env.ctx, mint, generateKey(t), 5))
	require.NoError(t, env.bank.CreateTokenAccount(env.ctx, tokenAccount, mint, user))
	require.NoError(t, env.bank.MintTo(env.ctx, mint, tokenAccount, 5000))

	diagnostic, err := env.processor.ValidateTokenAccount(env.ctx, user, tokenAccount)
	require.NoError(t, err)
	require.False(t, diagnostic.IsEmpty)

	burned, reclaimed, err := env.processor.BurnAndCloseTokenAccount(env.ctx, user, tokenAccount, mint, vaultAddress)
	require.NoError(t, err)
	require.EqualValues(t, 5000, burned)

	balanceBefore, err := env.bank.Balance(env.ctx, user)
	require.NoError(t, err)

	withdrawn, err := env.processor.WithdrawVault(env.ctx, user, vaultAddress)
	require.NoError(t, err)
	require.Equal(t, reclaimed, withdrawn)

	balanceAfter, err := env.bank.Balance(env.ctx, user)
	require.NoError(t, err)
	require.Equal(t, balanceBefore+reclaimed, balanceAfter)

	// The vault survives the withdrawal at exactly its reserve, with the
	// lifetime tally intact.
	record := getRecord(t, env, vaultAddress)
	require.Equal(t, env.bank.MinimumBalance(burner_token.VaultAccountSize), record.Lamports)

	var vault burner_token.VaultAccount
	require.NoError(t, vault.Unmarshal(record.Data))
	require.Equal(t, reclaimed, vault.LamportsCollected)
}

func generateKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub
}

func fundWallet(t *testing.T, env *testEnv, address ed25519.PublicKey, lamports uint64) {
	require.NoError(t, env.bank.CreateWallet(env.ctx, address, lamports))
}

func getRecord(t *testing.T, env *testEnv, address ed25519.PublicKey) *ledger.Account {
	var record *ledger.Account
	require.NoError(t, env.bank.View(env.ctx, func(tx ledger.Tx) error {
		var err error
		record, err = tx.Get(address)
		return err
	}))
	return record
}

func requireNoRecord(t *testing.T, env *testEnv, address ed25519.PublicKey) {
	err := env.bank.View(env.ctx, func(tx ledger.Tx) error {
		_, err := tx.Get(address)
		return err
	})
	require.Equal(t, ledger.ErrAccountNotFound, err)
}
