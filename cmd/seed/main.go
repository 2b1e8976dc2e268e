// Command seed creates the initial ADMIN account. Running it again is a no-op.
package main

import (
	"context"
	"errors"

	"github.com/lupashe/backoffice/internal/core/domain"
	"github.com/lupashe/backoffice/internal/core/service"
	"github.com/lupashe/backoffice/internal/infrastructure/db"
	"github.com/lupashe/backoffice/internal/pkg/config"
	"github.com/lupashe/backoffice/internal/pkg/token"
	"github.com/lupashe/backoffice/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction(), Service: "backoffice-seed"})

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}

	store, closeStore, err := db.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("credential store unavailable")
	}
	defer closeStore(ctx)

	// Registration never issues tokens, so the codec needs no secrets here.
	svc := service.NewAuthService(store, token.NewCodec(token.Config{}), cfg.BcryptCost, log)

	user, err := svc.Register(ctx, domain.RegisterInput{
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
		Email:    cfg.Seed.AdminEmail,
		Role:     string(domain.RoleAdmin),
	})
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		log.Info().Str("username", cfg.Seed.AdminUsername).Msg("admin already exists, nothing to do")
	case err != nil:
		log.Fatal().Err(err).Msg("seeding admin failed")
	default:
		log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("admin created")
	}
}
