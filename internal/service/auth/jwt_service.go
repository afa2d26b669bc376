// Package auth validates the bearer tokens issued by the external
// identity provider. The provider signs tokens with a shared HMAC secret
// and puts the stable user ID in the subject claim; this service never
// creates identities of its own.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for working with authentication tokens.
type JWTService interface {
	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims containing the user ID if the token is valid, or an
	// error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateToken creates a signed token for the given user ID, mirroring
	// what the identity provider issues. Used by dev tooling and tests.
	GenerateToken(ctx context.Context, userID string) (string, error)
}

// Claims represents the validated claims of an accepted token.
type Claims struct {
	// UserID is the opaque, stable identifier of the authenticated user,
	// taken from the token's subject claim.
	UserID string `json:"sub,omitempty"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
