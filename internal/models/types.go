package models

// Resource type tags. Used to key per-user settings and bookmarks to a
// business object type.
const (
	TypeOrganizations = "organizations"
	TypeReceivers     = "receivers"
	TypeUsers         = "users"
	TypeUserProfiles  = "userprofiles"
	TypeUserSettings  = "usersettings"
	TypeUserBookmarks = "userbookmarks"
)
