package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lupashe/backoffice/internal/api/metrics"
	"github.com/lupashe/backoffice/internal/core/domain"
)

// RoleGate is the set of roles allowed on a route. It is fixed when the
// route is registered and must be mounted after Auth.
type RoleGate struct {
	allowed map[domain.Role]struct{}
}

func NewRoleGate(roles ...domain.Role) RoleGate {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return RoleGate{allowed: allowed}
}

// Allows reports whether role is in the gate's set.
func (g RoleGate) Allows(role domain.Role) bool {
	_, ok := g.allowed[role]
	return ok
}

func (g RoleGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !g.Allows(id.Role) {
				metrics.AuthGuardRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireRole is shorthand for NewRoleGate(roles...).Middleware().
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return NewRoleGate(roles...).Middleware()
}
