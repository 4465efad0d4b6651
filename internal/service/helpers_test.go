package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store/memory"
	"github.com/tenantkit/tenantkit/internal/tenant"
)

// fixture wires every service against fresh in-memory stores.
type fixture struct {
	orgStore      *memory.OrganizationStore
	receiverStore *memory.ReceiverStore
	userStore     *memory.UserStore
	profileStore  *memory.UserProfileStore
	settingStore  *memory.UserSettingStore
	bookmarkStore *memory.UserBookmarkStore

	tokens *auth.TokenManager

	orgs      *OrganizationService
	receivers *ReceiverService
	users     *UserService
	profiles  *UserProfileService
	settings  *UserSettingService
	bookmarks *UserBookmarkService
	auth      *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		orgStore:      memory.NewOrganizationStore(),
		receiverStore: memory.NewReceiverStore(),
		userStore:     memory.NewUserStore(),
		profileStore:  memory.NewUserProfileStore(),
		settingStore:  memory.NewUserSettingStore(),
		bookmarkStore: memory.NewUserBookmarkStore(),
		tokens:        auth.NewTokenManager("test-secret", time.Hour),
	}

	resolver := tenant.NewResolver(f.orgStore)
	pager := NewPager(f.settingStore)

	f.orgs = NewOrganizationService(f.orgStore, f.userStore, f.receiverStore, f.bookmarkStore, resolver, pager)
	f.receivers = NewReceiverService(f.receiverStore, f.bookmarkStore, f.orgs, pager)
	f.users = NewUserService(f.userStore, f.profileStore, f.settingStore, f.bookmarkStore, f.orgStore, pager)
	f.profiles = NewUserProfileService(f.profileStore)
	f.settings = NewUserSettingService(f.settingStore)
	f.bookmarks = NewUserBookmarkService(f.bookmarkStore)
	f.auth = NewAuthService(f.userStore, f.profileStore, f.settingStore, f.bookmarkStore, f.tokens)

	return f
}

func (f *fixture) seedOrg(t *testing.T, id, parentID string) {
	t.Helper()

	now := time.Now()
	org := &models.Organization{
		ID:          id,
		Name:        "org " + id,
		Status:      models.StatusActive,
		IsDeletable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parentID != "" {
		org.ParentID = &parentID
	}
	require.NoError(t, f.orgStore.Create(context.Background(), org))
}

func (f *fixture) seedReceiver(t *testing.T, id, orgID string) {
	t.Helper()

	now := time.Now()
	require.NoError(t, f.receiverStore.Create(context.Background(), &models.Receiver{
		ID:          id,
		Name:        "receiver " + id,
		Status:      models.StatusActive,
		IsDeletable: true,
		OrgID:       orgID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func (f *fixture) seedUser(t *testing.T, id, orgID, password string, roles ...string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, f.userStore.Create(context.Background(), &models.User{
		ID:           id,
		PasswordHash: string(hash),
		Roles:        roles,
		OrgID:        orgID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func (f *fixture) seedSetting(t *testing.T, userID, typ string, listLimit int) {
	t.Helper()

	now := time.Now()
	require.NoError(t, f.settingStore.Create(context.Background(), &models.UserSetting{
		UserID:             userID,
		Type:               typ,
		ListLimit:          listLimit,
		BookmarkExpiration: models.DefaultBookmarkExpiration,
		CreatedAt:          now,
		UpdatedAt:          now,
	}))
}

func (f *fixture) seedBookmark(t *testing.T, userID, typ, objectID string) {
	t.Helper()

	require.NoError(t, f.bookmarkStore.Create(context.Background(), &models.UserBookmark{
		UserID:    userID,
		Type:      typ,
		ObjectID:  objectID,
		CreatedAt: time.Now(),
	}))
}

func superCaller() *auth.Context {
	return &auth.Context{ID: "sigrid-super", OrgID: "THQ", Roles: []string{auth.RoleSuper}}
}

func callerWith(id, orgID string, roles ...string) *auth.Context {
	return &auth.Context{ID: id, OrgID: orgID, Roles: roles}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func statusPtr(s models.Status) *models.Status { return &s }
