package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := BcryptPasswordHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)

	assert.True(t, hasher.Verify(hash, "Secret123"))
	assert.False(t, hasher.Verify(hash, "secret123"))
	assert.False(t, hasher.Verify("", "Secret123"))
}

func TestBcryptPasswordHasher_RejectsLongPassword(t *testing.T) {
	_, err := BcryptPasswordHasher{Cost: bcrypt.MinCost}.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
