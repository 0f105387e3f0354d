package burner_token

import (
	"bytes"
	"crypto/ed25519"
)

var burnAndCloseTokenAccountInstructionDiscriminator = []byte{
	201, 226, 245, 46, 68, 145, 174, 229,
}

const (
	BurnAndCloseTokenAccountInstructionAccountsSize = (32 + // user
		32 + // tokenAccount
		32 + // mint
		32 + // vault
		32) // tokenProgram

	BurnAndCloseTokenAccountInstructionSize = (8 + // discriminator
		BurnAndCloseTokenAccountInstructionAccountsSize) // accounts
)

type BurnAndCloseTokenAccountInstructionAccounts struct {
	User         ed25519.PublicKey
	TokenAccount ed25519.PublicKey
	Mint         ed25519.PublicKey
	Vault        ed25519.PublicKey
}

func NewBurnAndCloseTokenAccountInstruction(
	accounts *BurnAndCloseTokenAccountInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, len(burnAndCloseTokenAccountInstructionDiscriminator))

	putDiscriminator(data, burnAndCloseTokenAccountInstructionDiscriminator, &offset)

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
				PublicKey:  accounts.Mint,
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

func BurnAndCloseTokenAccountInstructionFromBinary(data []byte) (*BurnAndCloseTokenAccountInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < BurnAndCloseTokenAccountInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, burnAndCloseTokenAccountInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts BurnAndCloseTokenAccountInstructionAccounts

	getKey(data, &accounts.User, &offset)
	getKey(data, &accounts.TokenAccount, &offset)
	getKey(data, &accounts.Mint, &offset)
	getKey(data, &accounts.Vault, &offset)

	return &accounts, nil
}
