package handlers

import (
	"context"

	"github.com/polkiloo/identity/internal/domain/model"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, fullName string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (*pkgAuth.TokenClaims, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error
}

// ProfileFacade encapsulates account profile and verification operations.
type ProfileFacade interface {
	UpdateProfile(ctx context.Context, id int64, email, fullName string) (*model.User, string, error)
	RequestVerification(ctx context.Context, id int64) (*model.VerificationToken, error)
	ConfirmVerification(ctx context.Context, token string) error
}

// AdminFacade provides privileged account operations.
type AdminFacade interface {
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// IdentityFacade aggregates the full set of operations used across handlers.
type IdentityFacade interface {
	AuthFacade
	ProfileFacade
	AdminFacade
}
