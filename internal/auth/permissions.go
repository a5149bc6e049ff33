package auth

import "masseurmatch_backend/internal/models"

// Role permissions
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		"profiles:read",
		"profiles:review",
		"profiles:block",
		"users:read",
		"subscriptions:read",
		"subscriptions:write",
		"media:moderate",
	},
	models.UserRoleTherapist: {
		"profiles:read:self",
		"profiles:write:self",
		"media:write:self",
		"rates:write:self",
		"subscriptions:read:self",
	},
}

// HasPermission reports whether a role carries the named permission.
func HasPermission(role models.UserRole, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
