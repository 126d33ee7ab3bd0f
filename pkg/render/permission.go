package render

import "strings"

// PermissionGate decides whether the current user may perform action on
// module. It is supplied by the host application.
type PermissionGate func(action, module string) bool

// AllowAll grants everything. Intended for development and tests.
func AllowAll(string, string) bool { return true }

// ParsePermission splits "action:module". A bare action applies to entity.
func ParsePermission(permission, entity string) (action, module string) {
	permission = strings.TrimSpace(permission)
	if permission == "" {
		return "", ""
	}
	action, module, found := strings.Cut(permission, ":")
	action = strings.TrimSpace(action)
	module = strings.TrimSpace(module)
	if !found || module == "" {
		module = strings.TrimSpace(entity)
	}
	return action, module
}
