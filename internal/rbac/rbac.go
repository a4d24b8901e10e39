package rbac

import "github.com/x986x/CW6/internal/models"

// Permission constants
const (
	PermViewAllMailings = "view_all_mailings"
	PermDisableMailings = "disable_mailings"
	PermViewAllClients  = "view_all_clients"
	PermBlockClients    = "block_clients"
	PermEditAnyRecord   = "edit_any_record"
	PermManageBlog      = "manage_blog"
)

// RolePermissions defines what each role can do beyond its own records.
var RolePermissions = map[string][]string{
	models.RoleAdmin: {
		PermViewAllMailings, PermDisableMailings, PermViewAllClients,
		PermBlockClients, PermEditAnyRecord, PermManageBlog,
	},
	models.RoleManager: {
		PermViewAllMailings, PermDisableMailings, PermViewAllClients,
		PermBlockClients, PermManageBlog,
		// Manager CANNOT: PermEditAnyRecord — managers observe and disable,
		// they do not edit or delete other owners' records.
	},
	models.RoleUser: {},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// CanSeeAll reports whether the role may list records regardless of owner.
func CanSeeAll(role string) bool {
	return HasPermission(role, PermViewAllMailings)
}
