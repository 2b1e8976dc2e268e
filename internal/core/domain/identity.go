package domain

import "context"

// Identity is the payload carried by access and refresh tokens and the
// principal attached to authenticated requests.
type Identity struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying id.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
