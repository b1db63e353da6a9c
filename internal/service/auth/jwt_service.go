package auth

import (
	"context"
	"errors"
)

// Token validation errors.
var (
	// ErrInvalidToken is returned when a token fails signature or structural
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrWrongTokenType is returned when an access token is presented where
	// a refresh token is required, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims carries the authenticated identity extracted from a validated token.
type Claims struct {
	// Username is the account the token was issued to; it scopes every
	// task operation on the authenticated routes.
	Username string

	// TokenType is either "access" or "refresh".
	TokenType string
}

// JWTService defines the interface for issuing and validating the tokens
// that gate the task routes.
type JWTService interface {
	// GenerateToken creates a signed access token for the given username.
	GenerateToken(ctx context.Context, username string) (string, error)

	// GenerateRefreshToken creates a signed refresh token for the given
	// username, with a longer lifetime than the access token.
	GenerateRefreshToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates an access token and returns its claims.
	// Returns ErrExpiredToken, ErrInvalidToken, or ErrWrongTokenType.
	ValidateToken(ctx context.Context, token string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	// Returns ErrExpiredToken, ErrInvalidToken, or ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, token string) (*Claims, error)
}
