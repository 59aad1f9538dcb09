package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/persist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu            sync.Mutex
	user          *domain.User
	token         string
	loginErr      error
	validateErr   error
	validateCalls int
	logoutCalls   int
}

func (f *fakeAPI) Login(ctx context.Context, creds Credentials) (*domain.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.user, f.token, nil
}

func (f *fakeAPI) ValidateToken(ctx context.Context, token string) (*domain.User, string, error) {
	f.mu.Lock()
	f.validateCalls++
	f.mu.Unlock()
	if f.validateErr != nil {
		return nil, "", f.validateErr
	}
	return f.user, token, nil
}

func (f *fakeAPI) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	return nil
}

type recorded struct {
	mu            sync.Mutex
	notifications []string
	routes        []string
}

func (r *recorded) notify(kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, kind+": "+message)
}

func (r *recorded) navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorded) last() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n, rt string
	if len(r.notifications) > 0 {
		n = r.notifications[len(r.notifications)-1]
	}
	if len(r.routes) > 0 {
		rt = r.routes[len(r.routes)-1]
	}
	return n, rt
}

func newTestManager(t *testing.T, api AuthAPI, slot TokenSlot, rec *recorded, inactivity, refresh time.Duration) *Manager {
	t.Helper()
	m := NewManager(ManagerConfig{
		Store:             NewStore(),
		API:               api,
		Tokens:            slot,
		Notify:            rec.notify,
		Navigate:          rec.navigate,
		InactivityTimeout: inactivity,
		RefreshInterval:   refresh,
	})
	t.Cleanup(m.Stop)
	return m
}

func TestStartWithoutToken(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	require.False(t, m.Initialized())
	m.Start(context.Background())

	st := m.Store().State()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "no token found", st.Error)
	assert.True(t, m.Initialized())
	assert.Zero(t, api.validateCalls, "no remote call without a stored token")
}

func TestStartWithInvalidToken(t *testing.T) {
	api := &fakeAPI{validateErr: domain.UnauthorizedError{Msg: "invalid or expired token"}}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	bridge.SetToken("stale-token")
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	m.Start(context.Background())

	st := m.Store().State()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "Invalid or expired token", st.Error)
	assert.True(t, m.Initialized())

	_, ok := bridge.Token()
	assert.False(t, ok, "stale token must be cleared")
}

func TestStartWithValidToken(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	bridge.SetToken("tok-1")
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	m.Start(context.Background())

	st := m.Store().State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "Admin User", st.User.Name)
	assert.Equal(t, "tok-1", st.Token)
	assert.True(t, m.Initialized())
}

func TestLoginSuccessFlow(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-login"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	err := m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)

	st := m.Store().State()
	assert.True(t, st.IsAuthenticated)

	stored, ok := bridge.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-login", stored)

	note, route := rec.last()
	assert.Equal(t, "success: Welcome back, Admin User!", note)
	assert.Equal(t, "/dashboard", route)
}

func TestLoginFailureFlow(t *testing.T) {
	api := &fakeAPI{loginErr: domain.UnauthorizedError{Msg: "Invalid email or password"}}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	err := m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "nope"})
	require.Error(t, err)

	st := m.Store().State()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "Invalid email or password", st.Error)

	_, ok := bridge.Token()
	assert.False(t, ok, "no token persisted on failed login")

	note, _ := rec.last()
	assert.Equal(t, "error: Invalid email or password", note)
}

func TestLogoutFlow(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	require.NoError(t, m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "admin123"}))
	m.Logout(context.Background())

	st := m.Store().State()
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.Error, "explicit logout carries no reason")

	_, ok := bridge.Token()
	assert.False(t, ok)
	assert.Equal(t, 1, api.logoutCalls)

	_, route := rec.last()
	assert.Equal(t, "/login", route)
}

func TestInactivityTimeout(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, 40*time.Millisecond, time.Minute)

	require.NoError(t, m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "admin123"}))

	assert.Eventually(t, func() bool {
		return !m.Store().State().IsAuthenticated
	}, time.Second, 10*time.Millisecond, "inactivity should log the session out")

	st := m.Store().State()
	assert.Equal(t, TimeoutReason, st.Error)

	_, ok := bridge.Token()
	assert.False(t, ok, "token cleared on timeout")
}

func TestRecordActivityDefersTimeout(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, 120*time.Millisecond, time.Minute)

	require.NoError(t, m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "admin123"}))

	// keep resetting the window; the session must survive well past the
	// original deadline
	for i := 0; i < 5; i++ {
		time.Sleep(50 * time.Millisecond)
		m.RecordActivity()
	}
	assert.True(t, m.Store().State().IsAuthenticated, "activity should keep the session alive")

	assert.Eventually(t, func() bool {
		return !m.Store().State().IsAuthenticated
	}, time.Second, 10*time.Millisecond, "session should still time out once activity stops")
}

func TestPeriodicRefresh(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}

	var refreshes atomic.Int64
	m := NewManager(ManagerConfig{
		Store:    NewStore(),
		API:      api,
		Tokens:   bridge,
		Notify:   rec.notify,
		Navigate: rec.navigate,
		Refresh: func(ctx context.Context) error {
			refreshes.Add(1)
			return nil
		},
		InactivityTimeout: time.Minute,
		RefreshInterval:   20 * time.Millisecond,
	})
	defer m.Stop()

	require.NoError(t, m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "admin123"}))

	assert.Eventually(t, func() bool {
		return refreshes.Load() >= 2
	}, time.Second, 10*time.Millisecond, "refresh routine should run periodically")

	m.Stop()
	n := refreshes.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, n, refreshes.Load(), "no refresh after Stop")
}

func TestStopIsIdempotent(t *testing.T) {
	api := &fakeAPI{user: testUser(), token: "tok-1"}
	bridge := persist.NewBridge(persist.NewMemoryStorage())
	rec := &recorded{}
	m := newTestManager(t, api, bridge, rec, time.Minute, time.Minute)

	require.NoError(t, m.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "admin123"}))
	m.Stop()
	m.Stop()
	m.Logout(context.Background())
	m.Stop()
}
