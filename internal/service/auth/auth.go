package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/fznajm/ngobrol-auth/internal/apperrors"
	"github.com/fznajm/ngobrol-auth/internal/logger"
	"github.com/fznajm/ngobrol-auth/internal/models"
	"github.com/fznajm/ngobrol-auth/internal/repository"
	"github.com/fznajm/ngobrol-auth/internal/service/auth/tokenmanager"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate hash from password
	// Must salt: two hashes of the same password never match each other
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	// Must return apperrors.ErrCorruptHash if the stored digest is unreadable
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during user registration or login
	// Defaults to BcryptHasher
	Hasher PasswordHasher

	// Logger for internal failures
	// Defaults to a no-op logger
	Logger logger.Logger
}

// AuthService orchestrates registration, login and refresh token rotation
// It is the only component that computes or compares refresh token hashes
// and the only owner of stored refresh record lifecycles
type AuthService struct {
	tokens  *tokenmanager.TokenManager
	hasher  PasswordHasher
	storage repository.Storage
	logger  logger.Logger
}

func NewService(cfg Config, tokens *tokenmanager.TokenManager, storage repository.Storage) (*AuthService, error) {
	if tokens == nil {
		return nil, errors.New("token manager must not be nil")
	}
	if storage == nil {
		return nil, errors.New("storage must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOp()
	}

	return &AuthService{
		tokens:  tokens,
		hasher:  hasher,
		storage: storage,
		logger:  log,
	}, nil
}

// Register creates a new user
// Returns apperrors.ErrUserAlreadyExists if the email is taken
func (s *AuthService) Register(ctx context.Context, email string, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.storage.User().CreateUser(ctx, email, hash)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies credentials and issues a fresh token pair
// Unknown email and wrong password are both apperrors.ErrAuthFailed, the
// caller can't tell which field was wrong
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	user, err := s.storage.User().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.TokenPair{}, apperrors.ErrAuthFailed
		}
		return models.TokenPair{}, err
	}

	err = s.hasher.Compare(user.HashedPassword, password)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrCorruptHash):
		s.logger.Error("stored password hash unreadable", "user_id", user.ID)
		return models.TokenPair{}, err
	default:
		return models.TokenPair{}, apperrors.ErrAuthFailed
	}

	// Pre-existing refresh tokens stay live: multiple concurrent sessions
	// per user are allowed
	return s.issuePair(ctx, s.storage, user)
}

// Refresh consumes a raw refresh token and rotates it into a new pair
// Single logical transaction: of concurrent calls with the same raw token
// exactly one succeeds, the rest get apperrors.ErrInvalidToken
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (models.TokenPair, error) {
	userID, err := s.tokens.ParseRefresh(rawRefresh)
	if err != nil {
		return models.TokenPair{}, apperrors.ErrInvalidToken
	}

	var pair models.TokenPair
	err = s.storage.InTx(ctx, func(st repository.Storage) error {
		user, err := st.User().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		// Single use: the record must be gone before the replacement exists
		err = st.Refresh().Delete(ctx, user.ID, hashToken(rawRefresh))
		if err != nil {
			return err
		}

		pair, err = s.issuePair(ctx, st, user)
		return err
	})

	switch {
	case err == nil:
		return pair, nil
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrRefreshTokenNotFound):
		// Consumed, expired, never issued or subject gone: all the same
		// opaque failure for the caller
		return models.TokenPair{}, apperrors.ErrInvalidToken
	default:
		return models.TokenPair{}, err
	}
}

// Authenticate resolves a raw access token into the user it names
// This is the identity accessor other modules use at the request boundary
func (s *AuthService) Authenticate(ctx context.Context, rawAccess string) (models.User, error) {
	userID, err := s.tokens.ParseAccess(rawAccess)
	if err != nil {
		return models.User{}, apperrors.ErrInvalidToken
	}

	user, err := s.storage.User().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.User{}, apperrors.ErrInvalidToken
		}
		return models.User{}, err
	}

	return user, nil
}

// issuePair issues access and refresh tokens and stores the refresh hash
func (s *AuthService) issuePair(ctx context.Context, st repository.Storage, user models.User) (models.TokenPair, error) {
	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	_, err = st.Refresh().Save(ctx, models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refresh.Value),
		CreatedAt: time.Now().Truncate(time.Second),
		ExpiresAt: refresh.ExpiresAt,
	})
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// hashToken computes the stored representation of a raw refresh token
// Deterministic on purpose so lookups work, unlike password hashing
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.StdEncoding.EncodeToString(sum[:])
}
