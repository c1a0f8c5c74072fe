package repository

import (
	"context"

	"github.com/polkiloo/identity/internal/domain/model"
)

// UserRepository describes persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	UpdateProfile(ctx context.Context, id int64, email, fullName string) (*model.User, error)
}
