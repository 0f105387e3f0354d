package system

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/plinko-labs/token-burner/pkg/solana"
)

// ProgramKey is the address of the system program. The native system
// program id is the zero key.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var ProgramKey [32]byte

const (
	commandCreateAccount uint32 = iota
	// nolint:varcheck,deadcode,unused
	commandAssign
	commandTransfer
)

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	//
	// CreateAccount {
	//   lamports: u64, // Number of lamports to transfer to the new account
	//   space: u64,    // Number of bytes of memory to allocate
	//   owner: Pubkey, // Address of program that will own the new account
	// }
	data := make([]byte, 4+8+8+32)
	binary.LittleEndian.PutUint32(data, commandCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], size)
	copy(data[20:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L82-L86
func Transfer(sender, dest ed25519.PublicKey, lamports uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(sender, true),
		solana.NewAccountMeta(dest, false),
	)
}
