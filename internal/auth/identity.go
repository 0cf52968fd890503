package auth

import (
	"context"

	"foodgraph/internal/domain"
)

// Identity is the authenticated caller as resolved by the HTTP boundary:
// the user's email (the business key orders link to) and their role.
type Identity struct {
	Subject string
	Role    domain.UserRole
}

type contextKey int

const identityKey contextKey = iota

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
