package domain

import "time"

// Roles form a small closed set; anything else is rejected at the boundary.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// PermissionAll is the sentinel that grants every permission check.
const PermissionAll = "all"

// Dashboard permission codes, dotted "<module>.<action>" style.
const (
	PermDashboardView  = "dashboard.view"
	PermInventoryView  = "inventory.view"
	PermInventoryEdit  = "inventory.edit"
	PermOrdersView     = "orders.view"
	PermOrdersEdit     = "orders.edit"
	PermUsersView      = "users.view"
	PermUsersEdit      = "users.edit"
	PermReportsView    = "reports.view"
	PermReportsExport  = "reports.export"
)

// RolePermissions maps each role to the permissions granted at login.
// Admin carries the sentinel and skips the list entirely.
var RolePermissions = map[string][]string{
	RoleAdmin: {PermissionAll},
	RoleManager: {
		PermDashboardView,
		PermInventoryView, PermInventoryEdit,
		PermOrdersView, PermOrdersEdit,
		PermReportsView, PermReportsExport,
		PermUsersView,
	},
	RoleStaff: {
		PermDashboardView,
		PermInventoryView,
		PermOrdersView,
	},
}

// User is the identity record issued by the auth collaborator at login.
// It is immutable for the duration of a session and replaced wholesale
// on re-login.
type User struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	WarehouseIDs []int64  `json:"warehouse_ids,omitempty"`
}

// Notification kinds shown by the dashboard.
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyWarning = "warning"
	NotifyInfo    = "info"
)

// Notification is one entry of the transient feedback queue. Insertion
// order is display order.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PaginationState describes the page window of one dashboard module.
// TotalPages is always ceil(TotalItems/ItemsPerPage) and CurrentPage stays
// within [1, max(TotalPages,1)].
type PaginationState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

// PersistedSnapshot is the subset of UI state written to the durable slot.
// A snapshot is only trusted when Version matches the running code and the
// Timestamp is younger than the bridge's max age.
type PersistedSnapshot struct {
	Version      string                       `json:"version"`
	ActiveModule string                       `json:"active_module"`
	Pagination   map[string]PaginationState   `json:"pagination"`
	Filters      map[string]map[string]string `json:"filters"`
	SearchTerms  map[string]string            `json:"search_terms"`
	Timestamp    time.Time                    `json:"timestamp"`
}
