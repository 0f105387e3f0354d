package burner_token

import (
	"bytes"
	"crypto/ed25519"
)

var createVaultInstructionDiscriminator = []byte{
	29, 237, 247, 208, 193, 82, 54, 135,
}

const (
	CreateVaultInstructionAccountsSize = (32 + // user
		32 + // vault
		32) // systemProgram

	CreateVaultInstructionSize = (8 + // discriminator
		CreateVaultInstructionAccountsSize) // accounts
)

type CreateVaultInstructionAccounts struct {
	User  ed25519.PublicKey
	Vault ed25519.PublicKey
}

func NewCreateVaultInstruction(
	accounts *CreateVaultInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, len(createVaultInstructionDiscriminator))

	putDiscriminator(data, createVaultInstructionDiscriminator, &offset)

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
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func CreateVaultInstructionFromBinary(data []byte) (*CreateVaultInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < CreateVaultInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, createVaultInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts CreateVaultInstructionAccounts

	getKey(data, &accounts.User, &offset)
	getKey(data, &accounts.Vault, &offset)

	return &accounts, nil
}
