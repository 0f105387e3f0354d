package token

import (
	"crypto/ed25519"
	"encoding/binary"
	"math"

	"github.com/plinko-labs/token-burner/pkg/solana"
	"github.com/plinko-labs/token-burner/pkg/solana/system"
)

// ProgramKey is the address of the token program that should be used.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

type Command byte

const (
	CommandInitializeMint Command = iota
	CommandInitializeAccount
	CommandInitializeMultisig
	CommandTransfer
	CommandApprove
	CommandRevoke
	CommandSetAuthority
	CommandMintTo
	CommandBurn
	CommandCloseAccount
	CommandFreezeAccount
	CommandThawAccount

	CommandUnknown = Command(math.MaxUint8)
)

const (
	ErrorNotRentExempt solana.CustomError = iota
	ErrorInsufficientFunds
	ErrorInvalidMint
	ErrorMintMismatch
	ErrorOwnerMismatch
	ErrorFixedSupply
	ErrorAlreadyInUse
	ErrorInvalidNumberOfProvidedSigners
	ErrorInvalidNumberOfRequiredSigners
	ErrorUninitializedState
	ErrorNativeNotSupported
	ErrorNonNativeHasBalance
	ErrorInvalidInstruction
	ErrorInvalidState
	ErrorOverflow
	ErrorAuthorityTypeNotSupported
	ErrorMintCannotFreeze
	ErrorAccountFrozen
	ErrorMintDecimalsMismatch
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L41-L55
func InitializeAccount(account, mint, owner ed25519.PublicKey) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The account to initialize.
	//   1. `[]` The mint this account will be associated with.
	//   2. `[]` The new account's owner/multisignature.
	//   3. `[]` Rent sysvar.
	return solana.NewInstruction(
		ProgramKey,
		[]byte{byte(CommandInitializeAccount)},
		solana.NewAccountMeta(account, true),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(owner, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L134-L145
func MintTo(mint, dest, authority ed25519.PublicKey, amount uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   * Single authority
	//   0. `[writable]` The mint.
	//   1. `[writable]` The account to mint tokens to.
	//   2. `[signer]` The mint's minting authority.
	data := make([]byte, 1+8)
	data[0] = byte(CommandMintTo)
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(authority, true),
	)
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L146-L160
func Burn(account, mint, owner ed25519.PublicKey, amount uint64) solana.Instruction {
	// Burns tokens by removing them from an account.
	//
	// Accounts expected by this instruction:
	//
	//   * Single owner/delegate
	//   0. `[writable]` The account to burn from.
	//   1. `[writable]` The token mint.
	//   2. `[signer]` The account's owner/delegate.
	data := make([]byte, 1+8)
	data[0] = byte(CommandBurn)
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(account, false),
		solana.NewAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L161-L175
func CloseAccount(account, dest, owner ed25519.PublicKey) solana.Instruction {
	// Close an account by transferring all its SOL to the destination
	// account. Non-native accounts may only be closed if its token amount
	// is zero.
	//
	// Accounts expected by this instruction:
	//
	//   * Single owner
	//   0. `[writable]` The account to close.
	//   1. `[writable]` The destination account.
	//   2. `[signer]` The account's owner.
	return solana.NewInstruction(
		ProgramKey,
		[]byte{byte(CommandCloseAccount)},
		solana.NewAccountMeta(account, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}
