package app

import (
	"context"

	"github.com/polkiloo/identity/internal/domain/model"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
	"github.com/polkiloo/identity/internal/usecase"
)

// IdentityFacade is the application boundary the HTTP layer and workers talk to.
type IdentityFacade struct {
	auth *usecase.AuthUseCase
}

// NewIdentityFacade constructs IdentityFacade.
func NewIdentityFacade(auth *usecase.AuthUseCase) *IdentityFacade {
	return &IdentityFacade{auth: auth}
}

func (f *IdentityFacade) Register(ctx context.Context, email, password, fullName string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, password, fullName)
}

func (f *IdentityFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *IdentityFacade) ParseToken(token string) (*pkgAuth.TokenClaims, error) {
	return f.auth.ParseToken(token)
}

func (f *IdentityFacade) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *IdentityFacade) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	return f.auth.ChangePassword(ctx, id, oldPassword, newPassword)
}

func (f *IdentityFacade) UpdateProfile(ctx context.Context, id int64, email, fullName string) (*model.User, string, error) {
	return f.auth.UpdateProfile(ctx, id, email, fullName)
}

func (f *IdentityFacade) RequestVerification(ctx context.Context, id int64) (*model.VerificationToken, error) {
	return f.auth.RequestVerification(ctx, id)
}

func (f *IdentityFacade) ConfirmVerification(ctx context.Context, token string) error {
	return f.auth.ConfirmVerification(ctx, token)
}

func (f *IdentityFacade) ResetPassword(ctx context.Context, email, newPassword string) error {
	return f.auth.ResetPassword(ctx, email, newPassword)
}

func (f *IdentityFacade) PurgeExpiredVerifications(ctx context.Context, limit int) (int64, error) {
	return f.auth.PurgeExpiredVerifications(ctx, limit)
}
