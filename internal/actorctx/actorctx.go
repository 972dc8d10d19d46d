package actorctx

import (
	"context"
)

// Caller is the authenticated identity resolved from a verified access token.
type Caller struct {
	ID    int64
	Email string
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	v, ok := ctx.Value(callerKey{}).(Caller)

	return v, ok && v.ID != 0
}
