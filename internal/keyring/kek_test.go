package keyring

import (
	"testing"

	"github.com/kapish505/CipherVault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKEK_Deterministic(t *testing.T) {
	key1, err := DeriveKEK("0xAbCd1234")
	require.NoError(t, err)
	key2, err := DeriveKEK("0xAbCd1234")
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, kekLength)
}

func TestDeriveKEK_CaseInsensitive(t *testing.T) {
	upper, err := DeriveKEK("0xABC123")
	require.NoError(t, err)
	lower, err := DeriveKEK("0xabc123")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
}

func TestDeriveKEK_DistinctIdentities(t *testing.T) {
	key1, err := DeriveKEK("0xaaa")
	require.NoError(t, err)
	key2, err := DeriveKEK("0xbbb")
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestDeriveKEK_EmptyIdentity(t *testing.T) {
	_, err := DeriveKEK("   ")
	assert.ErrorIs(t, err, common.ErrKeyDerivationFailed)
}

func TestNormalizeIdentity(t *testing.T) {
	assert.Equal(t, "0xabc", NormalizeIdentity("  0xABC "))
}
