package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lupashe/backoffice/internal/core/domain"
)

func newGateContext(id *domain.Identity) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if id != nil {
		c.Set(identityKey, *id)
	}
	return c
}

func TestRoleGate_Allows(t *testing.T) {
	c := newGateContext(&domain.Identity{UserID: "usr-001", Role: domain.RoleAdmin})

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRoleGate_Forbids(t *testing.T) {
	c := newGateContext(&domain.Identity{UserID: "usr-002", Role: domain.RoleConsultor})

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRoleGate_NoIdentity(t *testing.T) {
	c := newGateContext(nil)

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRoleGate_AllowsSet(t *testing.T) {
	gate := NewRoleGate(domain.RoleAdmin, domain.RoleAdministrativo)

	for role, want := range map[domain.Role]bool{
		domain.RoleAdmin:          true,
		domain.RoleAdministrativo: true,
		domain.RoleConsultor:      false,
		domain.RoleCapacitador:    false,
		"":                        false,
	} {
		if got := gate.Allows(role); got != want {
			t.Errorf("Allows(%q) = %v, want %v", role, got, want)
		}
	}

	if NewRoleGate().Allows(domain.RoleAdmin) {
		t.Error("empty gate must deny everyone")
	}
}
