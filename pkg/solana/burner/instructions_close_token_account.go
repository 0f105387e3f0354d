package burner_token

import (
	"bytes"
	"crypto/ed25519"
)

var closeTokenAccountInstructionDiscriminator = []byte{
	132, 172, 24, 60, 100, 156, 135, 97,
}

const (
	CloseTokenAccountInstructionAccountsSize = (32 + // user
		32 + // tokenAccount
		32 + // vault
		32) // tokenProgram

	CloseTokenAccountInstructionSize = (8 + // discriminator
		CloseTokenAccountInstructionAccountsSize) // accounts
)

type CloseTokenAccountInstructionAccounts struct {
	User         ed25519.PublicKey
	TokenAccount ed25519.PublicKey
	Vault        ed25519.PublicKey
}

func NewCloseTokenAccountInstruction(
	accounts *CloseTokenAccountInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, len(closeTokenAccountInstructionDiscriminator))

	putDiscriminator(data, closeTokenAccountInstructionDiscriminator, &offset)

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
				PublicKey:  accounts.TokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func CloseTokenAccountInstructionFromBinary(data []byte) (*CloseTokenAccountInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < CloseTokenAccountInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, closeTokenAccountInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts CloseTokenAccountInstructionAccounts

	getKey(data, &accounts.User, &offset)
	getKey(data, &accounts.TokenAccount, &offset)
	getKey(data, &accounts.Vault, &offset)

	return &accounts, nil
}
