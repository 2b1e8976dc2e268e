// @title           Lupashe Back Office Auth API
// @version         1.0
// @description     Authentication and role-based access for the back office.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lupashe/backoffice/internal/api"
	"github.com/lupashe/backoffice/internal/api/handler"
	"github.com/lupashe/backoffice/internal/core/service"
	"github.com/lupashe/backoffice/internal/infrastructure/db"
	redisdb "github.com/lupashe/backoffice/internal/infrastructure/db/redis"
	"github.com/lupashe/backoffice/internal/pkg/config"
	"github.com/lupashe/backoffice/internal/pkg/token"
	"github.com/lupashe/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backoffice-auth",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, closeStore, err := db.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("credential store unavailable")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing credential store")
		}
	}()

	health := map[string]handler.Pinger{cfg.Store.Driver: store}

	proxies, err := cfg.RateLimit.TrustedProxyNets()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	deps := api.Deps{
		RateLimitPerIP:  cfg.RateLimit.Attempts,
		RateLimitWindow: cfg.RateLimit.Window,
		TrustedProxies:  proxies,
		Health:          health,
		Logger:          log,
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		deps.Attempts = redisdb.NewAttemptCounter(rdb)
		health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	codec := token.NewCodec(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	deps.Tokens = codec
	deps.AuthService = service.NewAuthService(store, codec, cfg.BcryptCost, log)

	e := api.NewRouter(deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.Store.Driver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}
