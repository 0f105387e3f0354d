package burner_token

import (
	"bytes"
	"crypto/ed25519"
	"strconv"

	"github.com/mr-tron/base58/base58"
)

// StateAccount is the singleton configuration record for the burner
// program.
type StateAccount struct {
	Authority     ed25519.PublicKey
	IsInitialized bool
	CreatedAt     int64
}

const StateAccountSize = (8 + // discriminator
	32 + // authority
	1 + // is_initialized
	8) // created_at

var stateAccountDiscriminator = []byte{78, 65, 26, 104, 232, 227, 242, 64}

func NewStateAccount(
	authority ed25519.PublicKey,
	isInitialized bool,
	createdAt int64,
) *StateAccount {
	return &StateAccount{
		Authority:     authority,
		IsInitialized: isInitialized,
		CreatedAt:     createdAt,
	}
}

// Clone returns a deep copy of a {@link StateAccount} instance.
func (obj *StateAccount) Clone() *StateAccount {
	return NewStateAccount(
		obj.Authority,
		obj.IsInitialized,
		obj.CreatedAt,
	)
}

func (obj *StateAccount) String() string {
	var authority string
	if obj.Authority != nil {
		authority = base58.Encode(obj.Authority)
	}

	return "StateAccount {" +
		"  authority='" + authority + "'" +
		", is_initialized='" + strconv.FormatBool(obj.IsInitialized) + "'" +
		", created_at='" + strconv.FormatInt(obj.CreatedAt, 10) + "'" +
		"}"
}

// Marshal serializes the {@link StateAccount} into a Buffer.
func (obj *StateAccount) Marshal() []byte {
	data := make([]byte, StateAccountSize)

	var offset int

	putDiscriminator(data, stateAccountDiscriminator, &offset)
	putKey(data, obj.Authority, &offset)
	putBool(data, obj.IsInitialized, &offset)
	putInt64(data, obj.CreatedAt, &offset)

	return data
}

// Unmarshal deserializes the {@link StateAccount} from the provided data
// Buffer.
func (obj *StateAccount) Unmarshal(data []byte) error {
	if len(data) != StateAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, stateAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Authority, &offset)
	getBool(data, &obj.IsInitialized, &offset)
	getInt64(data, &obj.CreatedAt, &offset)

	return nil
}
