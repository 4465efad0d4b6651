// Package auth provides token-based authentication and the role and
// ownership predicates every service gates its operations with.
package auth

// Context is the authenticated caller identity recovered from a verified
// bearer token: who they are, which tenant they are homed in, and which
// roles they hold. It is derived fresh per request and never persisted.
type Context struct {
	ID    string
	OrgID string
	Roles []string
}
