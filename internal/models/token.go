package models

import (
	"time"

	"github.com/google/uuid"
)

// Stored form of an issued refresh token
// Only the SHA-256 hash of the raw token is persisted, never the raw string
type RefreshToken struct {
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Token pair issued by AuthService on register, login and refresh
// Transient value: the pair itself is never persisted
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
