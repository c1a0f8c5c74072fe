package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/identity/internal/config"
	"github.com/polkiloo/identity/internal/domain/repository"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(newAuthUseCase)

type authParams struct {
	fx.In

	Users         repository.UserRepository
	Verifications repository.VerificationTokenRepository
	Hasher        pkgAuth.PasswordHasher
	Strategy      pkgAuth.Strategy
	Config        *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Verifications, p.Hasher, p.Strategy, p.Config.VerificationTTL)
}
