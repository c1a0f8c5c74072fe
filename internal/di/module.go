package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/identity/internal/app"
	"github.com/polkiloo/identity/internal/config"
	"github.com/polkiloo/identity/internal/logger"
	"github.com/polkiloo/identity/internal/pkg/auth"
	"github.com/polkiloo/identity/internal/server/http/router"
	"github.com/polkiloo/identity/internal/storage/postgres"
	"github.com/polkiloo/identity/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
