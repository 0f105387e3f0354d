package burner_token

type BurnerTokenError uint32

const (
	// Invalid owner
	ErrInvalidOwner BurnerTokenError = iota + 0x1770

	// Token account not owned by user
	ErrUnauthorizedAccount

	// Token account is not empty
	ErrAccountNotEmpty
)
