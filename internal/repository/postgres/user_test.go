package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/fznajm/ngobrol-auth/internal/apperrors"
	"github.com/fznajm/ngobrol-auth/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create user ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			user, err := repo.CreateUser(t.Context(), "nk@example.com", "hashed-password")

			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, user.ID, "id should be generated")
			require.Equal(t, "nk@example.com", user.Email)
			require.Equal(t, "hashed-password", user.HashedPassword)
			require.False(t, user.CreatedAt.IsZero(), "created at should be set by db")
		})
	})

	t.Run("create duplicate email fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.CreateUser(t.Context(), "nk@example.com", "hashed-password")
			require.NoError(t, err)

			_, err = repo.CreateUser(t.Context(), "nk@example.com", "other-hash")

			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})
	})

	t.Run("email is case sensitive", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.CreateUser(t.Context(), "nk@example.com", "hashed-password")
			require.NoError(t, err)

			_, err = repo.CreateUser(t.Context(), "NK@example.com", "hashed-password")
			require.NoError(t, err, "differently cased email is a different account")

			_, err = repo.GetUserByEmail(t.Context(), "Nk@example.com")
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})

	t.Run("get user by email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			created, err := repo.CreateUser(t.Context(), "nk@example.com", "hashed-password")
			require.NoError(t, err)

			got, err := repo.GetUserByEmail(t.Context(), "nk@example.com")

			require.NoError(t, err)
			require.Equal(t, created.ID, got.ID)
			require.Equal(t, created.Email, got.Email)
		})
	})

	t.Run("get user by id", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			created, err := repo.CreateUser(t.Context(), "nk@example.com", "hashed-password")
			require.NoError(t, err)

			got, err := repo.GetUserByID(t.Context(), created.ID)

			require.NoError(t, err)
			require.Equal(t, created.ID, got.ID)
		})
	})

	t.Run("get missing user", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.GetUserByEmail(t.Context(), "missing@example.com")
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)

			_, err = repo.GetUserByID(t.Context(), uuid.New())
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
