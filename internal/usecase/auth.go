package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/identity/internal/domain/errors"
	"github.com/polkiloo/identity/internal/domain/model"
	"github.com/polkiloo/identity/internal/domain/repository"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle, credentials, and token management.
type AuthUseCase struct {
	users           repository.UserRepository
	verifications   repository.VerificationTokenRepository
	hasher          pkgAuth.PasswordHasher
	tokens          pkgAuth.Strategy
	verificationTTL time.Duration
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	verifications repository.VerificationTokenRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	verificationTTL time.Duration,
) *AuthUseCase {
	if verificationTTL <= 0 {
		verificationTTL = 24 * time.Hour
	}
	return &AuthUseCase{
		users:           users,
		verifications:   verifications,
		hasher:          hasher,
		tokens:          strategy,
		verificationTTL: verificationTTL,
	}
}

// NormalizeEmail lowercases and trims an address; emails are a case-insensitive key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it with a fresh auth token.
// Uniqueness is enforced by the storage layer, not a lookup here, so two
// concurrent registrations cannot both slip past an existence check.
func (u *AuthUseCase) Register(ctx context.Context, email, password, fullName string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if !ValidateEmail(email) {
		return nil, "", domainErrors.ErrInvalidEmail
	}
	if !ValidatePassword(password) {
		return nil, "", domainErrors.ErrWeakPassword
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash, strings.TrimSpace(fullName))
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns the account with a fresh
// auth token. An unknown email and a wrong password fail identically.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ChangePassword replaces the stored hash after proof of the old password.
func (u *AuthUseCase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.hasher.Compare(usr.PasswordHash, oldPassword); err != nil {
		return domainErrors.ErrInvalidOldPassword
	}

	if !ValidatePassword(newPassword) {
		return domainErrors.ErrWeakPassword
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return u.users.UpdatePasswordHash(ctx, userID, hash)
}

// ResetPassword sets a new password for the account with the given email
// without old-password proof. Intended for administrative flows only; it still
// goes through the hasher like every other credential write.
func (u *AuthUseCase) ResetPassword(ctx context.Context, email, newPassword string) error {
	usr, err := u.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	if !ValidatePassword(newPassword) {
		return domainErrors.ErrWeakPassword
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return u.users.UpdatePasswordHash(ctx, usr.ID, hash)
}

// UpdateProfile changes display attributes and re-issues a token so the
// client's claims stay in sync with the record.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, email, fullName string) (*model.User, string, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if email == "" {
		email = usr.Email
	} else {
		email = NormalizeEmail(email)
		if !ValidateEmail(email) {
			return nil, "", domainErrors.ErrInvalidEmail
		}
	}
	if fullName == "" {
		fullName = usr.FullName
	}

	updated, err := u.users.UpdateProfile(ctx, userID, email, strings.TrimSpace(fullName))
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(updated)
	if err != nil {
		return nil, "", err
	}

	return updated, token, nil
}

// RequestVerification issues a one-time token confirming the account's email.
func (u *AuthUseCase) RequestVerification(ctx context.Context, userID int64) (*model.VerificationToken, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usr.IsVerified {
		return nil, domainErrors.ErrAlreadyVerified
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}

	return u.verifications.Create(ctx, userID, token, time.Now().Add(u.verificationTTL))
}

// ConfirmVerification consumes a verification token and marks the account verified.
func (u *AuthUseCase) ConfirmVerification(ctx context.Context, token string) error {
	if token == "" {
		return domainErrors.ErrNotFound
	}
	_, err := u.verifications.Consume(ctx, token)
	return err
}

// PurgeExpiredVerifications deletes up to limit expired verification tokens.
func (u *AuthUseCase) PurgeExpiredVerifications(ctx context.Context, limit int) (int64, error) {
	return u.verifications.DeleteExpired(ctx, limit)
}

// ParseToken extracts identity claims from provided token.
func (u *AuthUseCase) ParseToken(token string) (*pkgAuth.TokenClaims, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
