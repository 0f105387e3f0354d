package burner_token

import (
	"github.com/plinko-labs/token-burner/pkg/solana"
)

// ToLegacyInstruction converts to the instruction representation used by
// the base solana package for transaction building.
func (i Instruction) ToLegacyInstruction() solana.Instruction {
	legacyAccountMeta := make([]solana.AccountMeta, len(i.Accounts))
	for i, accountMeta := range i.Accounts {
		legacyAccountMeta[i] = solana.AccountMeta{
			PublicKey:  accountMeta.PublicKey,
			IsSigner:   accountMeta.IsSigner,
			IsWritable: accountMeta.IsWritable,
		}
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Accounts: legacyAccountMeta,
		Data:     i.Data,
	}
}
