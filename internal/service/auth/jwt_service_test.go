package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mhutchins/taskvault-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-thats-long-enough-for-hmac"

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

// newTestService builds a service with a controllable clock.
func newTestService(t *testing.T, timeFunc func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	if timeFunc != nil {
		impl.timeFunc = timeFunc
	}
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	cfg := testConfig()
	cfg.JWTSecret = "too-short"
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	svc := newTestService(t, nil)

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, nil)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "a-completely-different-signing-key-here",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	svc := newTestService(t, nil)
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	now := issuedAt
	svc := newTestService(t, func() time.Time { return now })

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Just before expiry: still valid.
	now = issuedAt.Add(59 * time.Minute)
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)

	// Within the clock skew allowance past expiry: still valid.
	now = issuedAt.Add(61 * time.Minute)
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)

	// Well past expiry plus skew: rejected.
	now = issuedAt.Add(63 * time.Minute)
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenTypeEnforcement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	svc := newTestService(t, nil)

	accessToken, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	// A refresh token is not accepted where an access token is expected.
	_, err = svc.ValidateToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	// And vice versa.
	_, err = svc.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := svc.ValidateRefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	now := issuedAt
	svc := newTestService(t, func() time.Time { return now })

	refreshToken, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	// A day later the access lifetime is long gone but the refresh token
	// still validates.
	now = issuedAt.Add(24 * time.Hour)
	_, err = svc.ValidateRefreshToken(ctx, refreshToken)
	assert.NoError(t, err)
}
