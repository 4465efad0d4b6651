package auth

import "slices"

// Role tags carried in token claims.
const (
	RoleSuper     = "super"
	RoleAdmin     = "admin"
	RoleSalesUser = "salesuser"
	RoleTester    = "tester"
	RoleAuditor   = "auditor"
)

// IsSuper reports whether the caller holds the super role. Super bypasses
// all tenant-scope checks.
func IsSuper(caller *Context) bool {
	return slices.Contains(caller.Roles, RoleSuper)
}

// IsAdmin reports whether the caller holds the admin or super role.
func IsAdmin(caller *Context) bool {
	return slices.Contains(caller.Roles, RoleAdmin) || IsSuper(caller)
}

// IsOwner reports whether the caller identified by callerID owns the
// sub-resource keyed by subjectID. Ownership is plain identifier equality,
// independent of tenant and role.
func IsOwner(subjectID, callerID string) bool {
	return subjectID == callerID
}

// HasAnyRole reports whether the caller holds at least one of the required
// roles. An empty requirement passes for any authenticated caller.
func HasAnyRole(caller *Context, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range caller.Roles {
		if slices.Contains(required, role) {
			return true
		}
	}
	return false
}
