package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lupashe/backoffice/internal/api/metrics"
	"github.com/lupashe/backoffice/internal/core/domain"
)

// AttemptCounter is the fixed-window store behind RateLimit (Redis).
type AttemptCounter interface {
	Hit(ctx context.Context, scope, subject string, window time.Duration) (count int64, resetIn time.Duration, err error)
}

// RateLimit caps requests per client IP within window for one scope. A nil
// counter or a non-positive limit disables it. Counter failures are logged
// and the request is let through.
func RateLimit(counter AttemptCounter, scope string, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if counter == nil || limit <= 0 {
			return next
		}
		return func(c echo.Context) error {
			count, resetIn, err := counter.Hit(c.Request().Context(), scope, c.RealIP(), window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(resetIn.Seconds()))))
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return domain.ErrTooManyRequests
			}
			return next(c)
		}
	}
}
