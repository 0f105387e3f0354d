package burner_token

import (
	"bytes"
	"crypto/ed25519"
)

var withdrawVaultInstructionDiscriminator = []byte{
	135, 7, 237, 120, 149, 94, 95, 7,
}

const (
	WithdrawVaultInstructionAccountsSize = (32 + // user
		32) // vault

	WithdrawVaultInstructionSize = (8 + // discriminator
		WithdrawVaultInstructionAccountsSize) // accounts
)

type WithdrawVaultInstructionAccounts struct {
	User  ed25519.PublicKey
	Vault ed25519.PublicKey
}

func NewWithdrawVaultInstruction(
	accounts *WithdrawVaultInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, len(withdrawVaultInstructionDiscriminator))

	putDiscriminator(data, withdrawVaultInstructionDiscriminator, &offset)

	return Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

func WithdrawVaultInstructionFromBinary(data []byte) (*WithdrawVaultInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < WithdrawVaultInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, withdrawVaultInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts WithdrawVaultInstructionAccounts

	getKey(data, &accounts.User, &offset)
	getKey(data, &accounts.Vault, &offset)

	return &accounts, nil
}
