// Package session holds the authentication state of the dashboard client:
// a reducer-driven store plus the lifecycle manager that owns the startup
// token check, the inactivity timeout and the periodic token refresh.
package session

import (
	"time"

	"warehouse/internal/domain"
)

// AuthState is one snapshot of the authentication state. The zero value is
// the initial state: unauthenticated, not loading, nothing stored.
// IsAuthenticated is true only while User and Token are both set.
type AuthState struct {
	User            *domain.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	LastActivity    time.Time
}

// Action is one named state transition. Reduce matches on the concrete
// type; every action is a struct so payloads stay typed.
type Action interface {
	isAction()
}

// AuthStart marks the beginning of a login or validation attempt.
type AuthStart struct{}

// LoginSuccess installs the user and token returned by the collaborator.
type LoginSuccess struct {
	User  *domain.User
	Token string
}

// AuthFailure terminates an attempt; the session stays unauthenticated.
type AuthFailure struct {
	Error string
}

// Logout resets to the initial state. A non-empty Reason survives the
// reset so the UI can explain why the user was logged out.
type Logout struct {
	Reason string
}

// RefreshToken swaps the token without touching user or auth flags.
// Callers must only issue it while authenticated.
type RefreshToken struct {
	Token string
}

// UpdateActivity bumps LastActivity.
type UpdateActivity struct{}

// ClearError drops the error field.
type ClearError struct{}

func (AuthStart) isAction()      {}
func (LoginSuccess) isAction()   {}
func (AuthFailure) isAction()    {}
func (Logout) isAction()         {}
func (RefreshToken) isAction()   {}
func (UpdateActivity) isAction() {}
func (ClearError) isAction()     {}

// Reduce applies one action and returns the next state. The argument is a
// value copy, so the previous snapshot is never mutated; observers see
// either the old state or the new one, never a half-applied transition.
func Reduce(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case AuthStart:
		s.IsLoading = true
		s.Error = ""
	case LoginSuccess:
		s.IsLoading = false
		s.IsAuthenticated = true
		s.User = a.User
		s.Token = a.Token
		s.Error = ""
		s.LastActivity = time.Now()
	case AuthFailure:
		s.IsLoading = false
		s.IsAuthenticated = false
		s.User = nil
		s.Token = ""
		s.Error = a.Error
	case Logout:
		s = AuthState{Error: a.Reason}
	case RefreshToken:
		s.Token = a.Token
		s.LastActivity = time.Now()
	case UpdateActivity:
		s.LastActivity = time.Now()
	case ClearError:
		s.Error = ""
	}
	return s
}
