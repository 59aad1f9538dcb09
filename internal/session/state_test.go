package session

import (
	"testing"

	"warehouse/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 1, Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin, Permissions: []string{domain.PermissionAll}}
}

func TestReduceLoginSuccess(t *testing.T) {
	s := Reduce(AuthState{}, AuthStart{})
	if !s.IsLoading || s.Error != "" {
		t.Fatalf("AuthStart should set loading and clear error, got %+v", s)
	}

	s = Reduce(s, LoginSuccess{User: testUser(), Token: "tok-1"})
	if !s.IsAuthenticated {
		t.Fatalf("expected authenticated after LoginSuccess")
	}
	if s.IsLoading {
		t.Fatalf("loading should clear after LoginSuccess")
	}
	if s.Error != "" {
		t.Fatalf("error should be absent after LoginSuccess, got %q", s.Error)
	}
	if s.User == nil || s.Token != "tok-1" {
		t.Fatalf("user/token not installed: %+v", s)
	}
	if s.LastActivity.IsZero() {
		t.Fatalf("LastActivity should be set on LoginSuccess")
	}
}

func TestReduceAuthFailure(t *testing.T) {
	s := Reduce(AuthState{}, LoginSuccess{User: testUser(), Token: "tok-1"})
	s = Reduce(s, AuthFailure{Error: "Invalid email or password"})

	if s.IsAuthenticated {
		t.Fatalf("expected unauthenticated after AuthFailure")
	}
	if s.User != nil || s.Token != "" {
		t.Fatalf("user/token should be absent after AuthFailure: %+v", s)
	}
	if s.Error != "Invalid email or password" {
		t.Fatalf("error not set, got %q", s.Error)
	}
}

func TestReduceLogout(t *testing.T) {
	s := Reduce(AuthState{}, LoginSuccess{User: testUser(), Token: "tok-1"})

	plain := Reduce(s, Logout{})
	if plain != (AuthState{}) {
		t.Fatalf("plain logout should reset to the initial value, got %+v", plain)
	}

	timed := Reduce(s, Logout{Reason: TimeoutReason})
	if timed.IsAuthenticated || timed.User != nil || timed.Token != "" {
		t.Fatalf("timed logout should still reset auth fields: %+v", timed)
	}
	if timed.Error != TimeoutReason {
		t.Fatalf("timed logout should keep the reason, got %q", timed.Error)
	}
}

func TestReduceRefreshToken(t *testing.T) {
	s := Reduce(AuthState{}, LoginSuccess{User: testUser(), Token: "tok-1"})
	before := s

	s = Reduce(s, RefreshToken{Token: "tok-2"})
	if s.Token != "tok-2" {
		t.Fatalf("token not replaced, got %q", s.Token)
	}
	if s.User != before.User || s.IsAuthenticated != before.IsAuthenticated {
		t.Fatalf("refresh must not touch user or auth flag")
	}
	if !s.LastActivity.After(before.LastActivity) && !s.LastActivity.Equal(before.LastActivity) {
		t.Fatalf("refresh should bump LastActivity")
	}
}

func TestReduceRefreshWhileUnauthenticated(t *testing.T) {
	s := Reduce(AuthState{}, RefreshToken{Token: "tok-x"})
	if s.IsAuthenticated {
		t.Fatalf("refresh must never set IsAuthenticated")
	}
}

func TestReduceClearError(t *testing.T) {
	s := Reduce(AuthState{}, AuthFailure{Error: "boom"})
	s = Reduce(s, ClearError{})
	if s.Error != "" {
		t.Fatalf("error should be cleared, got %q", s.Error)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	initial := AuthState{}
	_ = Reduce(initial, LoginSuccess{User: testUser(), Token: "tok-1"})
	if initial.IsAuthenticated || initial.User != nil {
		t.Fatalf("input state was mutated: %+v", initial)
	}
}

func TestStoreDispatchOrderAndSubscribe(t *testing.T) {
	store := NewStore()

	var seen []string
	unsub := store.Subscribe(func(s AuthState) {
		seen = append(seen, s.Error)
	})

	store.Dispatch(AuthFailure{Error: "first"})
	store.Dispatch(AuthFailure{Error: "second"})
	unsub()
	store.Dispatch(AuthFailure{Error: "third"})

	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Fatalf("subscriber saw %v", seen)
	}
	// unsubscribing twice is harmless
	unsub()
}
