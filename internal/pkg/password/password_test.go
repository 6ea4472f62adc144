//go:build unit

package password_test

import (
	"testing"

	"fin-approvals/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := password.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, password.ComparePassword(hash, "correct horse battery staple"))
	})

	t.Run("wrong password is a comparison failure", func(t *testing.T) {
		hash, err := password.HashPassword("secret-one")
		require.NoError(t, err)

		err = password.ComparePassword(hash, "secret-two")
		assert.ErrorIs(t, err, password.ErrComparisonFailed)
	})

	t.Run("empty inputs are rejected", func(t *testing.T) {
		_, err := password.HashPassword("")
		assert.ErrorIs(t, err, password.ErrInvalidPassword)

		assert.ErrorIs(t, password.ComparePassword("", "pw"), password.ErrInvalidPassword)
		assert.ErrorIs(t, password.ComparePassword("hash", ""), password.ErrInvalidPassword)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		first, err := password.HashPassword("same input")
		require.NoError(t, err)
		second, err := password.HashPassword("same input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
