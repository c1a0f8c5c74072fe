package repository

import (
	"context"
	"time"

	"github.com/polkiloo/identity/internal/domain/model"
)

// VerificationTokenRepository manages one-time email verification tokens.
type VerificationTokenRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) (*model.VerificationToken, error)
	Consume(ctx context.Context, token string) (int64, error)
	DeleteExpired(ctx context.Context, limit int) (int64, error)
}
