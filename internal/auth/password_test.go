package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	credential, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEmpty(t, credential)
	assert.NotEqual(t, "secret", credential, "credential must not be the plaintext")

	assert.True(t, CheckPassword(credential, "secret"))
	assert.False(t, CheckPassword(credential, "wrong"))
	assert.False(t, CheckPassword(credential, ""))
}

func TestCheckPassword_GarbageCredential(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "secret"))
}
