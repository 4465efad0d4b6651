// Package store defines the persistence interfaces for the tenant engine.
// Implementations live in the memory and postgres subpackages; callers only
// depend on the interfaces and sentinel errors defined here.
package store

// ListFilter narrows a range query. The zero value matches everything.
//
// OrgIDs restricts results to entities owned by one of the given tenants;
// nil means no tenant restriction. IncludeIDs restricts results to the given
// entity IDs - note that a non-nil empty slice matches nothing, which is how
// "bookmarked only, no bookmarks" queries come out empty. ExcludeIDs removes
// the given entity IDs from the result. Take == 0 means no limit.
type ListFilter struct {
	OrgIDs     []string
	IncludeIDs []string
	ExcludeIDs []string
	Skip       int
	Take       int
}

// Matches reports whether an entity with the given id and owning org passes
// the ID and tenant restrictions of the filter. Skip/Take are not applied.
func (f ListFilter) Matches(id, orgID string) bool {
	if f.OrgIDs != nil && !contains(f.OrgIDs, orgID) {
		return false
	}
	if f.IncludeIDs != nil && !contains(f.IncludeIDs, id) {
		return false
	}
	if contains(f.ExcludeIDs, id) {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
