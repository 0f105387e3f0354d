package burner

import "errors"

var (
	// ErrAlreadyInitialized is returned when initialization is attempted
	// and the state record already exists.
	ErrAlreadyInitialized = errors.New("state already initialized")

	// ErrVaultAlreadyExists is returned when vault creation is attempted
	// and the user's vault record already exists.
	ErrVaultAlreadyExists = errors.New("vault already exists")

	// ErrInvalidOwner is returned when the signer doesn't match the
	// recorded owner of the account being operated on.
	ErrInvalidOwner = errors.New("invalid owner")

	// ErrAddressMismatch is returned when a supplied address fails
	// re-derivation against its canonical seeds.
	ErrAddressMismatch = errors.New("address mismatch")

	// ErrInvalidTokenAccount is returned when the referenced account
	// doesn't deserialize as a token account.
	ErrInvalidTokenAccount = errors.New("invalid token account")

	// ErrInvalidMint is returned when the supplied mint doesn't match the
	// token account's recorded mint.
	ErrInvalidMint = errors.New("invalid mint")

	// ErrAccountNotEmpty is returned when closing is attempted on a token
	// account that still holds tokens.
	ErrAccountNotEmpty = errors.New("token account is not empty")

	// ErrInsufficientFunds is returned when the payer can't fund the
	// rent-exempt reserve of a new record.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
