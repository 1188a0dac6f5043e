package httpapi

import "context"

type ctxKey int

const identityKey ctxKey = iota

// Identity is the verified caller attached to the request context by
// Authenticate.
type Identity struct {
	UserID string
	Role   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
