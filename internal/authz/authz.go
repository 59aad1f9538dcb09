// Package authz evaluates role and permission checks for dashboard users.
// All functions are pure and cheap enough to call on every request.
package authz

import "warehouse/internal/domain"

// Can reports whether the user holds the given permission string. The
// sentinel "all" in the granted list passes every check. A nil user can
// do nothing.
func Can(u *domain.User, permission string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == domain.PermissionAll || p == permission {
			return true
		}
	}
	return false
}

// HasRole reports whether the user's role is one of the accepted roles.
func HasRole(u *domain.User, roles ...string) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
