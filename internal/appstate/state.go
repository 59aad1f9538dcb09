// Package appstate is the cross-cutting UI-state store of the dashboard:
// active module, sidebar, per-module pagination/filter/search state and the
// transient notification queue. It is independent of the session store and
// there is no ordering guarantee between the two.
package appstate

import (
	"time"

	"warehouse/internal/domain"

	"github.com/google/uuid"
)

// DefaultModule is the landing module and the fallback for persistence.
const DefaultModule = "dashboard"

// State is one snapshot of the UI state. Maps are treated as immutable:
// the reducer clones the touched map and shares the rest.
type State struct {
	ActiveModule  string
	SidebarOpen   bool
	Loading       bool
	Notifications []domain.Notification
	Pagination    map[string]domain.PaginationState
	Filters       map[string]map[string]string
	SearchTerms   map[string]string
}

// Initial returns the state at process start.
func Initial() State {
	return State{
		ActiveModule: DefaultModule,
		SidebarOpen:  true,
		Pagination:   map[string]domain.PaginationState{},
		Filters:      map[string]map[string]string{},
		SearchTerms:  map[string]string{},
	}
}

// Action is one named UI transition; Reduce matches on the concrete type.
type Action interface {
	isAction()
}

type SetActiveModule struct{ ID string }
type ToggleSidebar struct{}
type SetSidebarOpen struct{ Open bool }
type SetLoading struct{ Loading bool }

// AddNotification appends an entry with a fresh time-derived id. Removal
// after the display window is scheduled by the store, not the reducer.
type AddNotification struct {
	Type    string
	Message string
}

// RemoveNotification drops the entry by id; unknown ids are a no-op and
// the order of the remaining entries is preserved.
type RemoveNotification struct{ ID string }

type SetPagination struct {
	Module     string
	Pagination domain.PaginationState
}

// SetFilter upserts one module's filter mapping; other modules' entries
// are untouched.
type SetFilter struct {
	Module  string
	Filters map[string]string
}

type SetSearchTerm struct {
	Module string
	Term   string
}

// ClearFilters removes the module's filter and search-term entries
// entirely, so a cleared module is indistinguishable from one that never
// had filters.
type ClearFilters struct{ Module string }

func (SetActiveModule) isAction()    {}
func (ToggleSidebar) isAction()      {}
func (SetSidebarOpen) isAction()     {}
func (SetLoading) isAction()         {}
func (AddNotification) isAction()    {}
func (RemoveNotification) isAction() {}
func (SetPagination) isAction()      {}
func (SetFilter) isAction()          {}
func (SetSearchTerm) isAction()      {}
func (ClearFilters) isAction()       {}

// Reduce applies one action and returns the next state without mutating
// the previous snapshot.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetActiveModule:
		s.ActiveModule = a.ID
	case ToggleSidebar:
		s.SidebarOpen = !s.SidebarOpen
	case SetSidebarOpen:
		s.SidebarOpen = a.Open
	case SetLoading:
		s.Loading = a.Loading
	case AddNotification:
		n := domain.Notification{
			ID:        newNotificationID(),
			Type:      a.Type,
			Message:   a.Message,
			CreatedAt: time.Now(),
		}
		next := make([]domain.Notification, 0, len(s.Notifications)+1)
		next = append(next, s.Notifications...)
		s.Notifications = append(next, n)
	case RemoveNotification:
		s.Notifications = removeNotification(s.Notifications, a.ID)
	case SetPagination:
		p := clonePagination(s.Pagination)
		p[a.Module] = a.Pagination
		s.Pagination = p
	case SetFilter:
		f := cloneFilters(s.Filters)
		f[a.Module] = a.Filters
		s.Filters = f
	case SetSearchTerm:
		t := cloneTerms(s.SearchTerms)
		t[a.Module] = a.Term
		s.SearchTerms = t
	case ClearFilters:
		f := cloneFilters(s.Filters)
		delete(f, a.Module)
		s.Filters = f
		t := cloneTerms(s.SearchTerms)
		delete(t, a.Module)
		s.SearchTerms = t
	}
	return s
}

func removeNotification(list []domain.Notification, id string) []domain.Notification {
	for i, n := range list {
		if n.ID != id {
			continue
		}
		next := make([]domain.Notification, 0, len(list)-1)
		next = append(next, list[:i]...)
		return append(next, list[i+1:]...)
	}
	return list
}

func newNotificationID() string {
	return uuid.NewString()
}

func clonePagination(m map[string]domain.PaginationState) map[string]domain.PaginationState {
	out := make(map[string]domain.PaginationState, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFilters(m map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTerms(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
