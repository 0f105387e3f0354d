package burner_token

import (
	"bytes"
	"crypto/ed25519"
)

var validateTokenAccountInstructionDiscriminator = []byte{
	80, 112, 149, 140, 115, 65, 13, 177,
}

const (
	ValidateTokenAccountInstructionAccountsSize = (32 + // user
		32) // tokenAccount

	ValidateTokenAccountInstructionSize = (8 + // discriminator
		ValidateTokenAccountInstructionAccountsSize) // accounts
)

type ValidateTokenAccountInstructionAccounts struct {
	User         ed25519.PublicKey
	TokenAccount ed25519.PublicKey
}

func NewValidateTokenAccountInstruction(
	accounts *ValidateTokenAccountInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, len(validateTokenAccountInstructionDiscriminator))

	putDiscriminator(data, validateTokenAccountInstructionDiscriminator, &offset)

	return Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		// Read-only operation: neither account is writable.
		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.TokenAccount,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func ValidateTokenAccountInstructionFromBinary(data []byte) (*ValidateTokenAccountInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < ValidateTokenAccountInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, validateTokenAccountInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts ValidateTokenAccountInstructionAccounts

	getKey(data, &accounts.User, &offset)
	getKey(data, &accounts.TokenAccount, &offset)

	return &accounts, nil
}
