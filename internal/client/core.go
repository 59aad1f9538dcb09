package client

import (
	"warehouse/internal/appstate"
	intconfig "warehouse/internal/config"
	"warehouse/internal/domain"
	"warehouse/internal/persist"
	"warehouse/internal/session"
)

// DashboardCore bundles the client-side state of the dashboard: session
// manager, UI store and persistence bridge, wired against the backend at
// baseURL. Embedders call Session.Start once, then Restore to rehydrate
// the UI, and SaveUI whenever the snapshot should be written back.
type DashboardCore struct {
	Session *session.Manager
	UI      *appstate.Store
	Bridge  *persist.Bridge
	API     *AuthClient
}

func NewDashboardCore(env intconfig.Env, baseURL string, navigate func(route string)) (*DashboardCore, error) {
	var storage persist.Storage = persist.NewMemoryStorage()
	if env.DataDir != "" {
		fs, err := persist.NewFileStorage(env.DataDir)
		if err != nil {
			return nil, err
		}
		storage = fs
	}

	bridge := persist.NewBridge(storage)
	ui := appstate.NewStore()
	api := NewAuthClient(baseURL)

	mgr := session.NewManager(session.ManagerConfig{
		Store:  session.NewStore(),
		API:    api,
		Tokens: bridge,
		Notify: func(kind, message string) {
			ui.Notify(kind, message)
		},
		Navigate:          navigate,
		InactivityTimeout: env.InactivityTimeout,
		RefreshInterval:   env.RefreshInterval,
	})

	return &DashboardCore{Session: mgr, UI: ui, Bridge: bridge, API: api}, nil
}

// Restore rehydrates the UI store from the persisted snapshot. A missing
// or rejected snapshot leaves the initial state untouched.
func (c *DashboardCore) Restore() bool {
	snap, ok := c.Bridge.Load()
	if !ok {
		return false
	}

	c.UI.Dispatch(appstate.SetActiveModule{ID: snap.ActiveModule})
	for module, p := range snap.Pagination {
		c.UI.Dispatch(appstate.SetPagination{Module: module, Pagination: p})
	}
	for module, filters := range snap.Filters {
		c.UI.Dispatch(appstate.SetFilter{Module: module, Filters: filters})
	}
	for module, term := range snap.SearchTerms {
		c.UI.Dispatch(appstate.SetSearchTerm{Module: module, Term: term})
	}
	return true
}

// SaveUI writes the persisted subset of the current UI state to the
// bridge. Notifications and loading flags are deliberately transient.
func (c *DashboardCore) SaveUI() {
	st := c.UI.State()
	c.Bridge.Save(domain.PersistedSnapshot{
		ActiveModule: st.ActiveModule,
		Pagination:   st.Pagination,
		Filters:      st.Filters,
		SearchTerms:  st.SearchTerms,
	})
}

// Close stops the session manager's timers and flushes the UI snapshot.
func (c *DashboardCore) Close() {
	c.Session.Stop()
	c.SaveUI()
}
