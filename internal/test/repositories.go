package test

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/identity/internal/domain/errors"
	"github.com/polkiloo/identity/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests. Email keys are
// lowercased so lookups behave like the real case-insensitive index.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash, fullName string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[emailKey(email)]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now()
	user := &model.User{
		ID:           s.Next,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Next++
	s.Users[emailKey(email)] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[emailKey(email)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdatePasswordHash replaces the stored hash for an existing user.
func (s *UserRepositoryStub) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

// UpdateProfile changes email and full name for an existing user.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, email, fullName string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if other, exists := s.Users[emailKey(email)]; exists && other.ID != id {
		return nil, domainErrors.ErrAlreadyExists
	}
	delete(s.Users, emailKey(user.Email))
	user.Email = email
	user.FullName = fullName
	user.UpdatedAt = time.Now()
	s.Users[emailKey(email)] = user
	return user, nil
}

// VerificationTokenRepositoryStub stores verification tokens in-memory.
// When Users is set, Consume flags the owning user verified like the real
// transactional implementation does.
type VerificationTokenRepositoryStub struct {
	Tokens map[string]*model.VerificationToken
	Users  *UserRepositoryStub
	Err    error
}

// NewVerificationTokenRepositoryStub constructs the stub with initialized maps.
func NewVerificationTokenRepositoryStub(users *UserRepositoryStub) *VerificationTokenRepositoryStub {
	return &VerificationTokenRepositoryStub{
		Tokens: make(map[string]*model.VerificationToken),
		Users:  users,
	}
}

// Create stores a verification token.
func (s *VerificationTokenRepositoryStub) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) (*model.VerificationToken, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Tokens == nil {
		s.Tokens = make(map[string]*model.VerificationToken)
	}
	vt := &model.VerificationToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	s.Tokens[token] = vt
	return vt, nil
}

// Consume removes a live token and marks its user verified.
func (s *VerificationTokenRepositoryStub) Consume(ctx context.Context, token string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	vt, ok := s.Tokens[token]
	if !ok || time.Now().After(vt.ExpiresAt) {
		return 0, domainErrors.ErrNotFound
	}
	delete(s.Tokens, token)
	if s.Users != nil {
		if user, ok := s.Users.ByID[vt.UserID]; ok {
			user.IsVerified = true
		}
	}
	return vt.UserID, nil
}

// DeleteExpired removes up to limit expired tokens.
func (s *VerificationTokenRepositoryStub) DeleteExpired(ctx context.Context, limit int) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var deleted int64
	now := time.Now()
	for token, vt := range s.Tokens {
		if deleted >= int64(limit) {
			break
		}
		if now.After(vt.ExpiresAt) {
			delete(s.Tokens, token)
			deleted++
		}
	}
	return deleted, nil
}
