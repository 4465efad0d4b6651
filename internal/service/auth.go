package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// Session is the result of a successful login: the identity claims plus a
// signed bearer token.
type Session struct {
	ID     string   `json:"id"`
	OrgID  string   `json:"orgId"`
	Roles  []string `json:"roles"`
	Locked bool     `json:"locked"`
	Token  string   `json:"token"`
}

// WhoAmI aggregates everything an identity owns into one view.
type WhoAmI struct {
	ID        string                     `json:"id"`
	OrgID     string                     `json:"orgId"`
	Roles     []string                   `json:"roles"`
	Locked    bool                       `json:"locked"`
	Profile   *models.UserProfileView    `json:"profile,omitempty"`
	Settings  []*models.UserSettingView  `json:"settings"`
	Bookmarks []*models.UserBookmarkView `json:"bookmarks"`
}

// AuthService authenticates credentials and issues bearer tokens. Failed
// credential checks surface uniformly as "login_failed" so an attacker
// cannot distinguish an unknown account from a wrong password.
type AuthService struct {
	users     store.UserStore
	profiles  store.UserProfileStore
	settings  store.UserSettingStore
	bookmarks store.UserBookmarkStore
	tokens    *auth.TokenManager
}

// NewAuthService wires an auth service.
func NewAuthService(
	users store.UserStore,
	profiles store.UserProfileStore,
	settings store.UserSettingStore,
	bookmarks store.UserBookmarkStore,
	tokens *auth.TokenManager,
) *AuthService {
	return &AuthService{
		users:     users,
		profiles:  profiles,
		settings:  settings,
		bookmarks: bookmarks,
		tokens:    tokens,
	}
}

// Login verifies an id/password pair and returns a session with a signed
// token. Locked accounts are refused even with a valid password.
func (s *AuthService) Login(ctx context.Context, id, password string) (*Session, error) {
	if len(id) < minCredentialLength {
		return nil, invalid("user_id_invalid")
	}
	if len(password) < minCredentialLength {
		return nil, invalid("user_password_invalid")
	}

	found, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, notAuthenticated("login_failed")
	}
	if err != nil {
		return nil, persistence("user_read_failed", err)
	}

	if found.Locked {
		return nil, notAuthenticated("user_locked")
	}
	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return nil, notAuthenticated("login_failed")
	}

	token, err := s.tokens.Issue(found)
	if err != nil {
		return nil, persistence("token_issue_failed", err)
	}

	log.Info().Str("user_id", found.ID).Str("org_id", found.OrgID).Msg("login")

	return &Session{
		ID:     found.ID,
		OrgID:  found.OrgID,
		Roles:  found.Roles,
		Locked: found.Locked,
		Token:  token,
	}, nil
}

// WhoAmI returns the aggregate view of the caller's own account: identity
// claims, profile, settings and bookmarks.
func (s *AuthService) WhoAmI(ctx context.Context, caller *auth.Context) (*WhoAmI, error) {
	found, err := s.users.Get(ctx, caller.ID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, notFound("user_not_found")
	}
	if err != nil {
		return nil, persistence("user_read_failed", err)
	}

	out := &WhoAmI{
		ID:        found.ID,
		OrgID:     found.OrgID,
		Roles:     found.Roles,
		Locked:    found.Locked,
		Settings:  []*models.UserSettingView{},
		Bookmarks: []*models.UserBookmarkView{},
	}

	profile, err := s.profiles.Get(ctx, caller.ID)
	if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		return nil, persistence("userprofile_read_failed", err)
	}
	if profile != nil {
		out.Profile = profile.View()
	}

	settings, err := s.settings.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, persistence("usersetting_read_failed", err)
	}
	for _, setting := range settings {
		out.Settings = append(out.Settings, setting.View())
	}

	bookmarks, err := s.bookmarks.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, persistence("userbookmark_read_failed", err)
	}
	for _, bookmark := range bookmarks {
		out.Bookmarks = append(out.Bookmarks, bookmark.View())
	}

	return out, nil
}
