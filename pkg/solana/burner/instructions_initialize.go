package burner_token

import (
	"bytes"
	"crypto/ed25519"
)

var initializeInstructionDiscriminator = []byte{
	175, 175, 109, 31, 13, 152, 155, 237,
}

const (
	InitializeInstructionAccountsSize = (32 + // authority
		32 + // state
		32) // systemProgram

	InitializeInstructionSize = (8 + // discriminator
		InitializeInstructionAccountsSize) // accounts
)

type InitializeInstructionAccounts struct {
	Authority ed25519.PublicKey
	State     ed25519.PublicKey
}

func NewInitializeInstruction(
	accounts *InitializeInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, len(initializeInstructionDiscriminator))

	putDiscriminator(data, initializeInstructionDiscriminator, &offset)

	return Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.State,
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

func InitializeInstructionFromBinary(data []byte) (*InitializeInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < InitializeInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, initializeInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts InitializeInstructionAccounts

	getKey(data, &accounts.Authority, &offset)
	getKey(data, &accounts.State, &offset)

	return &accounts, nil
}
