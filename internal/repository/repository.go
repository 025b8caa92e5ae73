package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fznajm/ngobrol-auth/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, email string, hashedPassword string) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RefreshToken repository interface
// Rows are keyed by (user, token hash) pair, never by hash alone
type RefreshTokenRepo interface {
	// Save issued token record
	Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)

	// Get live token record
	// Expired rows count as absent: must return apperrors.ErrRefreshTokenNotFound
	Get(ctx context.Context, userID uuid.UUID, tokenHash string) (models.RefreshToken, error)

	// Delete live token record
	// Must delete and report in one statement: of concurrent callers with the
	// same pair exactly one may observe deleted=true
	// Expired or missing rows must return apperrors.ErrRefreshTokenNotFound
	Delete(ctx context.Context, userID uuid.UUID, tokenHash string) error
}

// Storage bundles repositories backed by the same connection or transaction
type Storage interface {
	User() UserRepo
	Refresh() RefreshTokenRepo

	// Run fn inside a database transaction
	// Commits when fn returns nil, rolls back otherwise
	InTx(ctx context.Context, fn func(s Storage) error) error
}
