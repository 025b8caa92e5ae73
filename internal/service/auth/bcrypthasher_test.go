package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fznajm/ngobrol-auth/internal/apperrors"
)

func Test_BcryptHasher(t *testing.T) {
	t.Parallel()

	h := BcryptHasher{}

	t.Run("hash password", func(t *testing.T) {
		got, err := h.Hash("password")
		require.NoError(t, err)

		require.Len(t, got, 60, "bcrypt length is 60 letters as far as i know")
		require.Equal(t, "$2a$", got[:4], "bcrypt hash should have prefix '$2a$'")
	})

	t.Run("hash is salted", func(t *testing.T) {
		first, err := h.Hash("password")
		require.NoError(t, err)

		second, err := h.Hash("password")
		require.NoError(t, err)

		require.NotEqual(t, first, second, "two hashes of the same password should differ")
		require.NoError(t, h.Compare(first, "password"), "first hash should still match")
		require.NoError(t, h.Compare(second, "password"), "second hash should still match")
	})

	t.Run("compare password ok", func(t *testing.T) {
		hash, err := h.Hash("password")
		require.NoError(t, err)

		err = h.Compare(hash, "password")

		require.NoError(t, err)
	})

	t.Run("fail compare if wrong password", func(t *testing.T) {
		hash, err := h.Hash("password")
		require.NoError(t, err)

		err = h.Compare(hash, "wrong")

		require.Error(t, err)
		require.NotErrorIs(t, err, apperrors.ErrCorruptHash, "plain mismatch is not corruption")
	})

	t.Run("corrupt digest reported as such", func(t *testing.T) {
		err := h.Compare("not-a-bcrypt-digest", "password")

		require.Error(t, err)
		require.ErrorIs(t, err, apperrors.ErrCorruptHash)
	})
}
