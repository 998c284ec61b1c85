package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesFreshDigests(t *testing.T) {
	first, err := HashPassword("secret12", 4)
	require.NoError(t, err)
	second, err := HashPassword("secret12", 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt salts per call")
	assert.True(t, VerifyPassword(first, "secret12"))
	assert.True(t, VerifyPassword(second, "secret12"))
}

func TestVerifyPasswordMismatch(t *testing.T) {
	digest, err := HashPassword("secret12", 4)
	require.NoError(t, err)

	assert.False(t, VerifyPassword(digest, "wrong-password"))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-digest", "secret12"))
	assert.False(t, VerifyPassword("", "secret12"))
}
