package domain

import (
	"context"
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr error
	}{
		{"", RoleConsultor, nil},
		{"ADMIN", RoleAdmin, nil},
		{"CAPACITADOR", RoleCapacitador, nil},
		{"ADMINISTRATIVO", RoleAdministrativo, nil},
		{"admin", "", ErrInvalidRole},
		{"OWNER", "", ErrInvalidRole},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("ParseRole(%q) error = %v, want %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserPublicOmitsHash(t *testing.T) {
	u := &User{ID: "u1", Username: "alice", PasswordHash: "$2a$10$x", Role: RoleConsultor}
	pub := u.Public()
	if pub.ID != "u1" || pub.Username != "alice" || pub.Role != RoleConsultor || pub.Email != "" {
		t.Fatalf("unexpected public view: %+v", pub)
	}
}

func TestErrTokenExpiredIsInvalid(t *testing.T) {
	if !errors.Is(ErrTokenExpired, ErrTokenInvalid) {
		t.Fatal("expired token error should match ErrTokenInvalid")
	}
	if errors.Is(ErrTokenInvalid, ErrTokenExpired) {
		t.Fatal("invalid token error should not match ErrTokenExpired")
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Fatal("expected no identity in empty context")
	}
	ctx := ContextWithIdentity(context.Background(), Identity{UserID: "u1", Role: RoleAdmin})
	id, ok := IdentityFromContext(ctx)
	if !ok || id.UserID != "u1" || id.Role != RoleAdmin {
		t.Fatalf("unexpected identity: %+v (ok=%v)", id, ok)
	}
}
