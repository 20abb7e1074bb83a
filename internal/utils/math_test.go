package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureRandomInt(t *testing.T) {
	for i := 0; i < 500; i++ {
		n, err := SecureRandomInt(1, 20)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 20)
	}

	n, err := SecureRandomInt(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = SecureRandomInt(2, 1)
	assert.Error(t, err)
}

func TestSecureRandomString(t *testing.T) {
	const alphabet = "ABC123"
	s, err := SecureRandomString(alphabet, 32)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}

	_, err = SecureRandomString("", 4)
	assert.Error(t, err)
}
