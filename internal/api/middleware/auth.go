package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lupashe/backoffice/internal/api/metrics"
	"github.com/lupashe/backoffice/internal/core/domain"
	"github.com/lupashe/backoffice/internal/core/ports"
)

const (
	bearerPrefix = "Bearer "
	identityKey  = "identity"
)

// Auth verifies the bearer access token and attaches the caller's identity
// to both the echo context and the request context.
func Auth(tokens ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				metrics.AuthGuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			raw := header[len(bearerPrefix):]
			if raw == "" {
				metrics.AuthGuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			id, err := tokens.VerifyAccessToken(raw)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrServerMisconfigured):
					log.Error().Err(err).Msg("access token verification misconfigured")
					return domain.ErrServerMisconfigured
				case errors.Is(err, domain.ErrTokenExpired):
					metrics.AuthGuardRejectionsTotal.WithLabelValues("expired_token").Inc()
					return domain.ErrTokenExpired
				default:
					metrics.AuthGuardRejectionsTotal.WithLabelValues("invalid_token").Inc()
					log.Debug().Err(err).Str("path", c.Path()).Msg("access token rejected")
					return domain.ErrTokenInvalid
				}
			}

			c.Set(identityKey, id)
			req := c.Request()
			c.SetRequest(req.WithContext(domain.ContextWithIdentity(req.Context(), id)))

			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok || id.Role == "" {
		return domain.Identity{}, false
	}
	return id, true
}
