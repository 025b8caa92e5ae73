package tokenmanager

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fznajm/ngobrol-auth/internal/apperrors"
)

func Test_TokenManager(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	newManager := func(t *testing.T, cfg Config) *TokenManager {
		if cfg.SecretKey == "" {
			cfg.SecretKey = "test-secret-key"
		}
		m, err := New(cfg)
		require.NoError(t, err, "token manager should be created without errors")
		return m
	}

	t.Run("new defaults", func(t *testing.T) {
		m, err := New(Config{SecretKey: "secret"})
		require.NoError(t, err, "token manager should be created without errors")

		require.Equal(t, "secret", m.key, "secret key should be set")
		require.Equal(t, defaultAccessTokenTTL, m.accessTTL, "default access token TTL should be set")
		require.Equal(t, defaultRefreshTokenTTL, m.refreshTTL, "default refresh token TTL should be set")
		require.Equal(t, defaultSigningMethod, m.alg.Alg(), "default signing method should be set")
	})

	t.Run("new fails without secret", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err, "empty secret key should not be accepted")
	})

	t.Run("refresh ttl exposed", func(t *testing.T) {
		m := newManager(t, Config{RefreshTTL: 48 * time.Hour})
		require.Equal(t, 48*time.Hour, m.RefreshTTL())
	})

	t.Run("issue access claims", func(t *testing.T) {
		m := newManager(t, Config{AccessTTL: 15 * time.Minute})

		issued, err := m.IssueAccess(userID)
		require.NoError(t, err)
		require.NotEmpty(t, issued.Value, "access token should not be empty")
		require.WithinDuration(t, time.Now().Add(15*time.Minute), issued.ExpiresAt, time.Second)

		// Parse and verify the access token
		token, err := jwt.ParseWithClaims(issued.Value, &Claims{}, func(token *jwt.Token) (any, error) {
			return []byte("test-secret-key"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid, "access token should be valid")

		claims, ok := token.Claims.(*Claims)
		require.True(t, ok, "claims should be of type Claims")
		assert.Equal(t, userID, claims.UserID, "user ID in token should match")
		assert.Equal(t, KindAccess, claims.Kind, "access token should carry access kind")
		assert.NotEmpty(t, claims.ID, "token has to have jti")
		assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second, "issued at should be close to now")
		assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt.Time, 0, "expires at should match issued token")
	})

	t.Run("issue refresh claims", func(t *testing.T) {
		m := newManager(t, Config{RefreshTTL: 24 * time.Hour})

		issued, err := m.IssueRefresh(userID)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(24*time.Hour), issued.ExpiresAt, time.Second)

		got, err := m.ParseRefresh(issued.Value)
		require.NoError(t, err)
		require.Equal(t, userID, got)
	})

	t.Run("issued tokens are unique", func(t *testing.T) {
		m := newManager(t, Config{})

		first, err := m.IssueRefresh(userID)
		require.NoError(t, err)
		second, err := m.IssueRefresh(userID)
		require.NoError(t, err)

		assert.NotEqual(t, first.Value, second.Value, "refresh tokens should be different")
	})

	t.Run("parse rejections", func(t *testing.T) {
		m := newManager(t, Config{})

		access, err := m.IssueAccess(userID)
		require.NoError(t, err)
		refresh, err := m.IssueRefresh(userID)
		require.NoError(t, err)

		otherKey := newManager(t, Config{SecretKey: "other-secret-key"})
		foreign, err := otherKey.IssueRefresh(userID)
		require.NoError(t, err)

		expired := newManager(t, Config{RefreshTTL: -time.Hour, AccessTTL: -time.Hour})
		expiredRefresh, err := expired.IssueRefresh(userID)
		require.NoError(t, err)

		tests := []struct {
			name  string
			parse func(string) (uuid.UUID, error)
			token string
		}{
			{name: "garbage", parse: m.ParseRefresh, token: "not-a-token"},
			{name: "access presented as refresh", parse: m.ParseRefresh, token: access.Value},
			{name: "refresh presented as access", parse: m.ParseAccess, token: refresh.Value},
			{name: "wrong signing key", parse: m.ParseRefresh, token: foreign.Value},
			{name: "expired", parse: m.ParseRefresh, token: expiredRefresh.Value},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.parse(tt.token)

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrInvalidToken, "every rejection should collapse to the same error")
			})
		}
	})
}
