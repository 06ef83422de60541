package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)
}

func TestComparePassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
}

func TestComparePassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)

	err = ComparePassword(hash, "wrong-pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestComparePassword_CorruptHashIsNotMismatch(t *testing.T) {
	t.Parallel()

	err := ComparePassword("not-a-bcrypt-hash", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestHashPassword_CostFloor(t *testing.T) {
	t.Parallel()

	// A nonsensical cost falls back to the default rather than producing a
	// cheap hash.
	hash, err := HashPassword("pass", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 10)
}
