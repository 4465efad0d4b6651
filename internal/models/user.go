package models

import (
	"time"
)

// User represents a login identity. The password is always stored hashed.
type User struct {
	ID           string
	PasswordHash string
	Roles        []string
	Locked       bool
	OrgID        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile holds the presentational attributes of a user. It shares the
// user's ID and is created and removed together with it.
type UserProfile struct {
	UserID      string
	DisplayName string
	Email       string
	Phone       string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Per-user setting defaults, applied when a user is created.
const (
	DefaultSettingType        = "default"
	DefaultListLimit          = 10
	DefaultBookmarkExpiration = 90
)

// UserSetting is a per-user, per-resource-type preference record. The row
// with Type "default" backs every type without an explicit override.
type UserSetting struct {
	UserID             string
	Type               string
	ListLimit          int
	BookmarkExpiration int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UserBookmark marks a business object for a user, used to bias list order.
type UserBookmark struct {
	UserID    string
	Type      string
	ObjectID  string
	CreatedAt time.Time
}

// UserView is the caller-facing projection of a user; the password hash
// never leaves the service layer.
type UserView struct {
	ID     string   `json:"id"`
	Roles  []string `json:"roles"`
	Locked bool     `json:"locked"`
	OrgID  string   `json:"orgId"`
}

// View returns the public projection of the user.
func (u *User) View() *UserView {
	return &UserView{
		ID:     u.ID,
		Roles:  u.Roles,
		Locked: u.Locked,
		OrgID:  u.OrgID,
	}
}

// UserProfileView is the caller-facing projection of a profile.
type UserProfileView struct {
	UserID      string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// View returns the public projection of the profile.
func (p *UserProfile) View() *UserProfileView {
	return &UserProfileView{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Phone:       p.Phone,
		ImageURL:    p.ImageURL,
	}
}

// UserSettingView is the caller-facing projection of a setting.
type UserSettingView struct {
	UserID             string `json:"id"`
	Type               string `json:"type"`
	ListLimit          int    `json:"listLimit"`
	BookmarkExpiration int    `json:"bookmarkExpiration"`
}

// View returns the public projection of the setting.
func (s *UserSetting) View() *UserSettingView {
	return &UserSettingView{
		UserID:             s.UserID,
		Type:               s.Type,
		ListLimit:          s.ListLimit,
		BookmarkExpiration: s.BookmarkExpiration,
	}
}

// UserBookmarkView is the caller-facing projection of a bookmark.
type UserBookmarkView struct {
	UserID   string `json:"id"`
	Type     string `json:"type"`
	ObjectID string `json:"objectId"`
}

// View returns the public projection of the bookmark.
func (b *UserBookmark) View() *UserBookmarkView {
	return &UserBookmarkView{
		UserID:   b.UserID,
		Type:     b.Type,
		ObjectID: b.ObjectID,
	}
}
