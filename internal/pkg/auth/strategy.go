package auth

import (
	"time"

	"github.com/polkiloo/identity/internal/domain/model"
)

// TokenClaims is the identity decoded from a verified auth token.
type TokenClaims struct {
	UserID int64
	Email  string
	Role   model.Role
}

// Strategy defines token creation and verification for authenticated sessions.
type Strategy interface {
	IssueToken(user *model.User) (string, error)
	ParseToken(token string) (*TokenClaims, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
