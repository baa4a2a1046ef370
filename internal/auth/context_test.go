package auth

import (
	"context"
	"testing"
)

func TestWithAuthRoundTrip(t *testing.T) {
	ac := AuthContext{UserID: 7, HouseholdID: 3, SessionToken: "tok"}
	ctx := WithAuth(context.Background(), ac)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context")
	}
	if got != ac {
		t.Errorf("got %+v, want %+v", got, ac)
	}
	if UserID(ctx) != 7 {
		t.Errorf("UserID = %d, want 7", UserID(ctx))
	}
	if HouseholdID(ctx) != 3 {
		t.Errorf("HouseholdID = %d, want 3", HouseholdID(ctx))
	}
	if SessionToken(ctx) != "tok" {
		t.Errorf("SessionToken = %q, want %q", SessionToken(ctx), "tok")
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("expected no auth context on empty context")
	}
	if UserID(context.Background()) != 0 {
		t.Error("UserID on empty context should be 0")
	}
	if HouseholdID(context.Background()) != 0 {
		t.Error("HouseholdID on empty context should be 0")
	}
}
