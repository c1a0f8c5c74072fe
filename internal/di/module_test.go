package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/identity/internal/app"
	"github.com/polkiloo/identity/internal/config"
	"github.com/polkiloo/identity/internal/domain/repository"
	"github.com/polkiloo/identity/internal/storage/postgres"
	"github.com/polkiloo/identity/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		TokenSecret:     "secret",
		TokenTTL:        time.Hour,
		VerificationTTL: time.Hour,
		SweepInterval:   time.Millisecond,
		SweepBatch:      1,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	verificationRepo := test.NewVerificationTokenRepositoryStub(userRepo)

	var facade *app.IdentityFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.VerificationTokenRepository(verificationRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected identity facade instance")
	}
}
