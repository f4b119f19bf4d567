// Package auth implements token issuance and verification: HMAC-signed
// JWT access and refresh tokens, and bcrypt password comparison. It is the
// identity provider the task layer trusts; by the time a request reaches a
// task operation, this package has already resolved the caller to a user ID.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// JWTService defines operations for issuing and validating JWT tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies an access token and returns its claims.
	// Returns ErrExpiredToken, ErrInvalidToken, or ErrWrongTokenType on
	// failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for the user.
	// Refresh tokens live longer and are exchanged for new access tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken verifies a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID uuid.UUID

	// TokenType is "access" or "refresh"; validation enforces that a token
	// is only accepted where its type is expected.
	TokenType string
}
