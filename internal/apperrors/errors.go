package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Login failed: email unknown or password wrong
	// Single value for both cases so callers can't enumerate accounts
	ErrAuthFailed = errors.New("invalid email or password")

	// Token rejected: malformed, bad signature, expired, wrong kind,
	// already consumed or unknown subject
	// Single value for all of them so the reason never leaks to the caller
	ErrInvalidToken = errors.New("invalid token")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// Stored password digest could not be parsed
	// Storage corruption, not a user mistake
	ErrCorruptHash = errors.New("stored password hash is corrupt")
)
