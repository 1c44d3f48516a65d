package auth

import "context"

type ctxKey int

const identityKey ctxKey = iota

// Identity is what the auth middleware attaches to request contexts.
type Identity struct {
	UserID string
	Role   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
