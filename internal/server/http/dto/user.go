package dto

import (
	"time"

	"github.com/polkiloo/identity/internal/domain/model"
)

// UserResponse is the client-visible projection of a user record. The
// password hash is never part of it.
type UserResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	IsVerified *bool  `json:"isVerified,omitempty"`
}

// ProfileResponse is the full non-sensitive view returned by /me.
type ProfileResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName,omitempty"`
	IsVerified bool      `json:"isVerified"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewRegisteredUser projects the fields returned right after signup.
func NewRegisteredUser(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

// NewAuthenticatedUser projects the fields returned on login.
func NewAuthenticatedUser(u *model.User) UserResponse {
	verified := u.IsVerified
	return UserResponse{ID: u.ID, Email: u.Email, IsVerified: &verified}
}

// NewProfile projects the full non-sensitive view.
func NewProfile(u *model.User) ProfileResponse {
	return ProfileResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		IsVerified: u.IsVerified,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
	}
}
