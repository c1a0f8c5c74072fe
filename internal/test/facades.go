package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/identity/internal/domain/model"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
)

// IdentityFacadeStub simulates the application facade for HTTP layer tests.
// Every method has a function override; the zero value answers successfully.
type IdentityFacadeStub struct {
	RegisterFn            func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn        func(context.Context, string, string) (*model.User, string, error)
	ParseFn               func(string) (*pkgAuth.TokenClaims, error)
	GetUserFn             func(context.Context, int64) (*model.User, error)
	ChangePasswordFn      func(context.Context, int64, string, string) error
	UpdateProfileFn       func(context.Context, int64, string, string) (*model.User, string, error)
	RequestVerificationFn func(context.Context, int64) (*model.VerificationToken, error)
	ConfirmVerificationFn func(context.Context, string) error
	ResetPasswordFn       func(context.Context, string, string) error
}

func stubUser() *model.User {
	return &model.User{ID: 1, Email: "user@example.com", Role: model.RoleUser, CreatedAt: time.Now()}
}

// Register returns a token for successful registration scenarios.
func (s IdentityFacadeStub) Register(ctx context.Context, email, password, fullName string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, fullName)
	}
	return stubUser(), "token", nil
}

// Authenticate returns a token for successful authentication scenarios.
func (s IdentityFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return stubUser(), "token", nil
}

// ParseToken returns stored claims for the authenticated user.
func (s IdentityFacadeStub) ParseToken(token string) (*pkgAuth.TokenClaims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.TokenClaims{UserID: 1, Email: "user@example.com", Role: model.RoleUser}, nil
}

// GetUser returns the stub account.
func (s IdentityFacadeStub) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if s.GetUserFn != nil {
		return s.GetUserFn(ctx, id)
	}
	return stubUser(), nil
}

// ChangePassword reports success unless overridden.
func (s IdentityFacadeStub) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, id, oldPassword, newPassword)
	}
	return nil
}

// UpdateProfile returns the stub account with a fresh token.
func (s IdentityFacadeStub) UpdateProfile(ctx context.Context, id int64, email, fullName string) (*model.User, string, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, id, email, fullName)
	}
	return stubUser(), "token", nil
}

// RequestVerification returns a deterministic verification token.
func (s IdentityFacadeStub) RequestVerification(ctx context.Context, id int64) (*model.VerificationToken, error) {
	if s.RequestVerificationFn != nil {
		return s.RequestVerificationFn(ctx, id)
	}
	return &model.VerificationToken{Token: "verify-token", UserID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ConfirmVerification reports success unless overridden.
func (s IdentityFacadeStub) ConfirmVerification(ctx context.Context, token string) error {
	if s.ConfirmVerificationFn != nil {
		return s.ConfirmVerificationFn(ctx, token)
	}
	return nil
}

// ResetPassword reports success unless overridden.
func (s IdentityFacadeStub) ResetPassword(ctx context.Context, email, newPassword string) error {
	if s.ResetPasswordFn != nil {
		return s.ResetPasswordFn(ctx, email, newPassword)
	}
	return nil
}

// PurgerStub counts purge invocations for the sweeper tests.
type PurgerStub struct {
	PurgeFn func(context.Context, int) (int64, error)

	mu    sync.Mutex
	calls []int
}

// PurgeExpiredVerifications records the batch size and delegates to override.
func (s *PurgerStub) PurgeExpiredVerifications(ctx context.Context, limit int) (int64, error) {
	s.mu.Lock()
	s.calls = append(s.calls, limit)
	s.mu.Unlock()
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx, limit)
	}
	return 0, nil
}

// Calls returns a snapshot of recorded batch sizes.
func (s *PurgerStub) Calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.calls))
	copy(out, s.calls)
	return out
}
