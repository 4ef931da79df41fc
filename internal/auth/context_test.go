package auth

import (
	"context"
	"testing"
)

func TestAuthContextRoundTrip(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{UserID: 42, SessionToken: "tok"})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context")
	}
	if ac.UserID != 42 || ac.SessionToken != "tok" {
		t.Errorf("ac = %+v", ac)
	}

	if UserID(ctx) != 42 {
		t.Errorf("UserID = %d, want 42", UserID(ctx))
	}
	if SessionToken(ctx) != "tok" {
		t.Errorf("SessionToken = %q, want tok", SessionToken(ctx))
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no auth context")
	}
	if UserID(ctx) != 0 {
		t.Errorf("UserID = %d, want 0", UserID(ctx))
	}
	if SessionToken(ctx) != "" {
		t.Errorf("SessionToken = %q, want empty", SessionToken(ctx))
	}
}
