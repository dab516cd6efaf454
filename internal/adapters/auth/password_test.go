package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(10)

	hash, err := h.Hash("my-secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "my-secret-password", hash)

	require.NoError(t, h.Compare(hash, "my-secret-password"))
}

func TestBcryptHasher_Compare_wrong_password(t *testing.T) {
	h := NewBcryptHasher(10)
	hash, err := h.Hash("correct")
	require.NoError(t, err)

	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	h := NewBcryptHasher(10)
	h1, err := h.Hash("password")
	require.NoError(t, err)
	h2, err := h.Hash("password")
	require.NoError(t, err)

	// bcrypt embeds a fresh salt per hash.
	assert.NotEqual(t, h1, h2)
}
