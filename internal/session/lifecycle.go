package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/utils"
)

const (
	// DefaultInactivityTimeout logs the session out after this much time
	// without observed user activity.
	DefaultInactivityTimeout = 30 * time.Minute

	// DefaultRefreshInterval drives the periodic token refresh.
	DefaultRefreshInterval = 15 * time.Minute

	// TimeoutReason is the visible explanation for an inactivity logout.
	TimeoutReason = "Session timed out due to inactivity"

	errNoToken      = "no token found"
	errInvalidToken = "Invalid or expired token"
)

// Credentials carries a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthAPI is the remote authentication collaborator. The HTTP client in
// internal/client implements it against the backend; tests use fakes.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*domain.User, string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
}

// TokenSlot is the durable record holding the raw session token.
type TokenSlot interface {
	Token() (string, bool)
	SetToken(token string)
	ClearToken()
}

// ManagerConfig wires a Manager. Store, API and Tokens are required;
// everything else has a working default.
type ManagerConfig struct {
	Store    *Store
	API      AuthAPI
	Tokens   TokenSlot
	Notify   func(kind, message string)
	Navigate func(route string)

	// Refresh replaces the periodic refresh routine. The default
	// re-dispatches the unchanged token; a real backend call drops in
	// without touching any caller.
	Refresh func(ctx context.Context) error

	InactivityTimeout time.Duration
	RefreshInterval   time.Duration
}

// Manager wraps the session store with the side-effecting lifecycle:
// startup token validation, inactivity timeout, periodic refresh, and the
// login/logout flows. It owns every timer it starts; Stop cancels them all.
type Manager struct {
	store    *Store
	api      AuthAPI
	tokens   TokenSlot
	notify   func(kind, message string)
	navigate func(route string)
	refresh  func(ctx context.Context) error

	inactivityTimeout time.Duration
	refreshInterval   time.Duration

	mu          sync.Mutex
	initialized bool
	inactivity  *time.Timer
	refreshStop chan struct{}
}

func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		store:             cfg.Store,
		api:               cfg.API,
		tokens:            cfg.Tokens,
		notify:            cfg.Notify,
		navigate:          cfg.Navigate,
		refresh:           cfg.Refresh,
		inactivityTimeout: cfg.InactivityTimeout,
		refreshInterval:   cfg.RefreshInterval,
	}
	if m.store == nil {
		m.store = NewStore()
	}
	if m.notify == nil {
		m.notify = func(string, string) {}
	}
	if m.navigate == nil {
		m.navigate = func(string) {}
	}
	if m.refresh == nil {
		m.refresh = m.refreshLocal
	}
	if m.inactivityTimeout <= 0 {
		m.inactivityTimeout = DefaultInactivityTimeout
	}
	if m.refreshInterval <= 0 {
		m.refreshInterval = DefaultRefreshInterval
	}
	return m
}

// Store exposes the managed session store.
func (m *Manager) Store() *Store { return m.store }

// Initialized reports whether the startup token check has completed.
// Dependent views must not render until it is true.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Start runs the startup check: a stored token is validated against the
// collaborator, an absent token fails immediately without any remote call.
// Exactly one of LoginSuccess or AuthFailure is dispatched before the
// initialized gate opens.
func (m *Manager) Start(ctx context.Context) {
	m.store.Dispatch(AuthStart{})

	token, ok := m.tokens.Token()
	if !ok {
		m.store.Dispatch(AuthFailure{Error: errNoToken})
		m.setInitialized()
		return
	}

	user, validated, err := m.api.ValidateToken(ctx, token)
	if err != nil {
		m.tokens.ClearToken()
		m.store.Dispatch(AuthFailure{Error: errInvalidToken})
		m.setInitialized()
		return
	}

	m.store.Dispatch(LoginSuccess{User: user, Token: validated})
	m.startTimers()
	m.setInitialized()
}

func (m *Manager) setInitialized() {
	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()
}

// Login authenticates against the collaborator, persists the token and
// navigates to the dashboard. Collaborator errors surface as AuthFailure
// plus an error notification; they never escape as panics into callers.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	m.store.Dispatch(AuthStart{})

	user, token, err := m.api.Login(ctx, creds)
	if err != nil {
		m.store.Dispatch(AuthFailure{Error: err.Error()})
		m.notify(domain.NotifyError, err.Error())
		return err
	}

	m.tokens.SetToken(token)
	m.store.Dispatch(LoginSuccess{User: user, Token: token})
	m.notify(domain.NotifySuccess, fmt.Sprintf("Welcome back, %s!", user.Name))
	m.navigate("/dashboard")
	m.startTimers()
	return nil
}

// Logout tears the session down locally no matter what the remote side
// says. The collaborator call is best-effort; a failure is logged only.
func (m *Manager) Logout(ctx context.Context) {
	st := m.store.State()
	if st.Token != "" {
		if err := m.api.Logout(ctx, st.Token); err != nil {
			utils.LogEvent("", "session", "logout_remote_failed", err.Error())
		}
	}

	m.stopTimers()
	m.tokens.ClearToken()
	m.store.Dispatch(Logout{})
	m.notify(domain.NotifyInfo, "You have been logged out")
	m.navigate("/login")
}

// RecordActivity resets the inactivity window. Call it from user
// interaction events (pointer, key, click). A no-op while unauthenticated.
func (m *Manager) RecordActivity() {
	if !m.store.State().IsAuthenticated {
		return
	}
	m.store.Dispatch(UpdateActivity{})

	m.mu.Lock()
	if m.inactivity != nil {
		m.inactivity.Reset(m.inactivityTimeout)
	}
	m.mu.Unlock()
}

// Stop cancels the inactivity timer and the refresh loop. Safe to call
// more than once and after logout.
func (m *Manager) Stop() {
	m.stopTimers()
}

func (m *Manager) startTimers() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inactivity != nil {
		m.inactivity.Stop()
	}
	m.inactivity = time.AfterFunc(m.inactivityTimeout, m.onInactivityTimeout)

	if m.refreshStop != nil {
		close(m.refreshStop)
	}
	stop := make(chan struct{})
	m.refreshStop = stop
	go m.refreshLoop(stop)
}

func (m *Manager) stopTimers() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inactivity != nil {
		m.inactivity.Stop()
		m.inactivity = nil
	}
	if m.refreshStop != nil {
		close(m.refreshStop)
		m.refreshStop = nil
	}
}

func (m *Manager) refreshLoop(stop chan struct{}) {
	ticker := time.NewTicker(m.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := m.refresh(context.Background()); err != nil {
				utils.LogEvent("", "session", "refresh_failed", err.Error())
			}
		}
	}
}

// refreshLocal is the default refresh routine: without a real backend it
// re-dispatches the unchanged token, which also bumps LastActivity.
func (m *Manager) refreshLocal(context.Context) error {
	st := m.store.State()
	if !st.IsAuthenticated {
		return nil
	}
	m.store.Dispatch(RefreshToken{Token: st.Token})
	return nil
}

// onInactivityTimeout fires when the inactivity window elapses without a
// reset. The stale-fire guard matters: a timer racing a logout must not
// clobber the fresh state.
func (m *Manager) onInactivityTimeout() {
	if !m.store.State().IsAuthenticated {
		return
	}

	m.stopTimers()
	m.tokens.ClearToken()
	m.store.Dispatch(Logout{Reason: TimeoutReason})
	m.notify(domain.NotifyWarning, TimeoutReason)
	m.navigate("/login")
	utils.LogEvent("", "session", "inactivity_timeout", "session closed")
}
