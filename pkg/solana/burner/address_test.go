package burner_token

import (
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStateAddress(t *testing.T) {
	address, bump, err := GetStateAddress()
	require.NoError(t, err)
	assert.Equal(t, "DdyfNixbFdKwjzFsWJszSjcn5ysM1anNJse15GtZPaZW", base58.Encode(address))
	assert.EqualValues(t, 255, bump)

	// Fixed seed, so the derivation is stable across calls.
	again, _, err := GetStateAddress()
	require.NoError(t, err)
	assert.Equal(t, address, again)
}

func TestGetVaultAddress(t *testing.T) {
	address, bump, err := GetVaultAddress(&GetVaultAddressArgs{
		Owner: mustBase58Decode("22WK1EHR7ZAi5mxsqfBj3VdEqJUSAiij3kQtrcXhKdW1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "HBvmCezRd4vEusWj99L4hb18rzZNbj8RzvowRrtG4WJj", base58.Encode(address))
	assert.EqualValues(t, 254, bump)

	other, bump, err := GetVaultAddress(&GetVaultAddressArgs{
		Owner: mustBase58Decode("CTwy7Rbr1eijRisFpxJtBun6dDb723wobvSK9PwgEzUz"),
	})
	require.NoError(t, err)
	assert.Equal(t, "AdgdqvMPj81MYEu87bc2EFJdTMLppuDCUbF5idWpVzzG", base58.Encode(other))
	assert.EqualValues(t, 252, bump)

	assert.NotEqual(t, address, other)
}
