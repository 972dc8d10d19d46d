package actorctx

import (
	"context"
	"testing"
)

func TestCallerRoundTrip(t *testing.T) {
	ctx := WithCaller(context.Background(), Caller{ID: 7, Email: "a@b.com"})

	got, ok := CallerFrom(ctx)
	if !ok {
		t.Fatalf("expected caller in context")
	}
	if got.ID != 7 || got.Email != "a@b.com" {
		t.Fatalf("got %+v", got)
	}
}

func TestCallerFrom_Missing(t *testing.T) {
	if _, ok := CallerFrom(context.Background()); ok {
		t.Fatalf("expected no caller")
	}

	if _, ok := CallerFrom(WithCaller(context.Background(), Caller{})); ok {
		t.Fatalf("zero caller must not count as authenticated")
	}
}
