package burner_token

import (
	"crypto/ed25519"

	"github.com/plinko-labs/token-burner/pkg/solana"
)

var (
	statePrefix = []byte("state")
	vaultPrefix = []byte("vault")
)

type GetVaultAddressArgs struct {
	Owner ed25519.PublicKey
}

// GetStateAddress derives the singleton burner state address. The seed is
// fixed, so exactly one state account exists per program deployment.
func GetStateAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		statePrefix,
	)
}

// GetVaultAddress derives the vault address for a given owner. Each owner
// maps to exactly one vault.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		vaultPrefix,
		args.Owner,
	)
}
