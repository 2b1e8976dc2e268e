package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lupashe/backoffice/internal/core/domain"
)

type stubCounter struct {
	counts map[string]int64
	err    error
}

func (s *stubCounter) Hit(_ context.Context, scope, subject string, window time.Duration) (int64, time.Duration, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	if s.counts == nil {
		s.counts = make(map[string]int64)
	}
	s.counts[scope+":"+subject]++
	return s.counts[scope+":"+subject], window, nil
}

func hitLimited(mw echo.MiddlewareFunc, ip string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = ip + ":40000"
	// Spoofed headers must not change the key.
	req.Header.Set(echo.HeaderXRealIP, "192.0.2.99")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return rec, err
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	mw := RateLimit(&stubCounter{}, "login", 2, time.Minute, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := hitLimited(mw, "10.0.0.1"); err != nil {
			t.Fatalf("attempt %d: unexpected error %v", i+1, err)
		}
	}

	rec, err := hitLimited(mw, "10.0.0.1")
	if !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("expected remaining 0, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}

	if _, err := hitLimited(mw, "10.0.0.2"); err != nil {
		t.Fatalf("other clients must not be limited: %v", err)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mw := RateLimit(&stubCounter{err: errors.New("redis down")}, "login", 1, time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := hitLimited(mw, "10.0.0.1"); err != nil {
			t.Fatalf("expected pass-through, got %v", err)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	for _, mw := range []echo.MiddlewareFunc{
		RateLimit(nil, "login", 5, time.Minute, zerolog.Nop()),
		RateLimit(&stubCounter{}, "login", 0, time.Minute, zerolog.Nop()),
	} {
		for i := 0; i < 10; i++ {
			if _, err := hitLimited(mw, "10.0.0.1"); err != nil {
				t.Fatalf("expected pass-through, got %v", err)
			}
		}
	}
}
