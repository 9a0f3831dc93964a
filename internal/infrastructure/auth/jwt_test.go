package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}
	return NewJWTService(cfg)
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "voter@example.com",
		Role:   "user",
	}
}

func TestNewJWTService(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}

	svc := NewJWTService(cfg)

	assert.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.accessSecret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.accessExpiration)
	assert.Equal(t, cfg.RefreshTokenExpiration, svc.refreshExpiration)
	assert.Equal(t, cfg.Issuer, svc.issuer)
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "",
	}

	svc := NewJWTService(cfg)

	assert.Equal(t, []byte(cfg.Secret), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)

	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.Before(pair.RefreshTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	t.Run("validates a freshly issued token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, input.Email, claims.Email)
		assert.Equal(t, input.Role, claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		userID, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, input.UserID, userID)
	})

	t.Run("rejects a refresh token as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-signing-key",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "test-issuer",
		})
		foreignPair, err := other.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(foreignPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	// Refresh tokens carry no role or email
	assert.Empty(t, claims.Role)
	assert.Empty(t, claims.Email)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	t.Run("issues a new pair with the supplied role", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, input.Email, "admin")

		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("rejects an access token used for refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, input.Email, "user")
		assert.Error(t, err)
	})
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
