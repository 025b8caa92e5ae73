package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fznajm/ngobrol-auth/internal/apperrors"
	"github.com/fznajm/ngobrol-auth/internal/models"
)

type RefreshTokenRepo struct {
	DB DBTX
}

const saveToken = `-- name: SaveRefreshToken
INSERT INTO refresh_tokens (user_id, token_hash, created_at, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING user_id, token_hash, created_at, expires_at
`

func (r *RefreshTokenRepo) Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	rows, _ := r.DB.Query(ctx, saveToken, token.UserID, token.TokenHash, token.CreatedAt, token.ExpiresAt)
	saved, err := pgx.CollectOneRow(rows, rowToRefreshToken)
	if err != nil {
		return saved, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

const getToken = `-- name: GetRefreshToken
SELECT user_id, token_hash, created_at, expires_at
FROM refresh_tokens
WHERE user_id = $1 AND token_hash = $2 AND expires_at > now()
`

// Get live token record scoped by (user, hash) pair
// Expired rows count as absent even when not purged yet
func (r *RefreshTokenRepo) Get(ctx context.Context, userID uuid.UUID, tokenHash string) (models.RefreshToken, error) {
	rows, _ := r.DB.Query(ctx, getToken, userID, tokenHash)
	token, err := pgx.CollectOneRow(rows, rowToRefreshToken)

	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, pgx.ErrNoRows):
		return token, fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	default:
		return token, fmt.Errorf("db error: %w", err)
	}
}

const deleteToken = `-- name: DeleteRefreshToken
DELETE FROM refresh_tokens
WHERE user_id = $1 AND token_hash = $2 AND expires_at > now()
RETURNING token_hash
`

// Delete live token record
// Check and delete happen in one statement: concurrent calls with the same
// pair see exactly one row deleted, the losers get ErrRefreshTokenNotFound
func (r *RefreshTokenRepo) Delete(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	rows, _ := r.DB.Query(ctx, deleteToken, userID, tokenHash)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[string])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func rowToRefreshToken(row pgx.CollectableRow) (models.RefreshToken, error) {
	var t models.RefreshToken
	err := row.Scan(&t.UserID, &t.TokenHash, &t.CreatedAt, &t.ExpiresAt)
	return t, err
}
