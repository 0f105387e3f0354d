package burner_token

import (
	"bytes"
	"crypto/ed25519"
	"strconv"

	"github.com/mr-tron/base58/base58"
)

// VaultAccount is the per-user rent-collection vault. It mainly holds
// lamports; the record tracks ownership and a running tally of what was
// reclaimed into it.
type VaultAccount struct {
	Owner             ed25519.PublicKey
	Bump              uint8
	LamportsCollected uint64
}

const VaultAccountSize = (8 + // discriminator
	32 + // owner
	1 + // bump
	8) // lamports_collected

var vaultAccountDiscriminator = []byte{230, 251, 241, 83, 139, 202, 93, 28}

func NewVaultAccount(
	owner ed25519.PublicKey,
	bump uint8,
	lamportsCollected uint64,
) *VaultAccount {
	return &VaultAccount{
		Owner:             owner,
		Bump:              bump,
		LamportsCollected: lamportsCollected,
	}
}

// Clone returns a deep copy of a {@link VaultAccount} instance.
func (obj *VaultAccount) Clone() *VaultAccount {
	return NewVaultAccount(
		obj.Owner,
		obj.Bump,
		obj.LamportsCollected,
	)
}

func (obj *VaultAccount) String() string {
	var owner string
	if obj.Owner != nil {
		owner = base58.Encode(obj.Owner)
	}

	return "VaultAccount {" +
		"  owner='" + owner + "'" +
		", bump='" + strconv.Itoa(int(obj.Bump)) + "'" +
		", lamports_collected='" + strconv.FormatUint(obj.LamportsCollected, 10) + "'" +
		"}"
}

// Marshal serializes the {@link VaultAccount} into a Buffer.
func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int

	putDiscriminator(data, vaultAccountDiscriminator, &offset)
	putKey(data, obj.Owner, &offset)
	putUint8(data, obj.Bump, &offset)
	putUint64(data, obj.LamportsCollected, &offset)

	return data
}

// Unmarshal deserializes the {@link VaultAccount} from the provided data
// Buffer.
func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) != VaultAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, vaultAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Owner, &offset)
	getUint8(data, &obj.Bump, &offset)
	getUint64(data, &obj.LamportsCollected, &offset)

	return nil
}
