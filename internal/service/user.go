package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// minCredentialLength applies to both user IDs and passwords.
const minCredentialLength = 8

// UserInput carries the writable fields of a user plus the profile fields
// provisioned alongside it on create.
type UserInput struct {
	ID       string
	Password *string
	Roles    []string
	Locked   *bool
	OrgID    *string

	DisplayName *string
	Email       *string
	Phone       *string
	ImageURL    *string
}

// UserService manages user accounts. All mutating operations and listing
// are restricted to super; a user may read their own record. Creating a
// user provisions its profile and a "default" pagination setting, deleting
// one removes the profile, settings and bookmarks it owns.
type UserService struct {
	users     store.UserStore
	profiles  store.UserProfileStore
	settings  store.UserSettingStore
	bookmarks store.UserBookmarkStore
	orgs      store.OrganizationStore
	pager     *Pager
}

// NewUserService wires a user service.
func NewUserService(
	users store.UserStore,
	profiles store.UserProfileStore,
	settings store.UserSettingStore,
	bookmarks store.UserBookmarkStore,
	orgs store.OrganizationStore,
	pager *Pager,
) *UserService {
	return &UserService{
		users:     users,
		profiles:  profiles,
		settings:  settings,
		bookmarks: bookmarks,
		orgs:      orgs,
		pager:     pager,
	}
}

// List returns one page of users. Only super may list users; admins are
// deliberately excluded even though they may list organizations.
func (s *UserService) List(ctx context.Context, caller *auth.Context, page int, opts BookmarkOptions) ([]*models.User, error) {
	if !auth.IsSuper(caller) {
		return nil, notAuthorized("user_get_not_allowed")
	}

	window, err := s.pager.Window(ctx, caller, models.TypeUsers, page)
	if err != nil {
		return nil, err
	}

	if opts.First || opts.Only {
		opts.IDs, err = bookmarkedIDs(ctx, s.bookmarks, caller.ID, models.TypeUsers)
		if err != nil {
			return nil, err
		}
	}

	return findPage(ctx, s.listUsers, nil, window, opts)
}

func (s *UserService) listUsers(ctx context.Context, filter store.ListFilter) ([]*models.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, persistence("user_read_failed", err)
	}
	return users, nil
}

// Get returns a user by ID. A caller may read their own record; anyone
// else's requires super.
func (s *UserService) Get(ctx context.Context, caller *auth.Context, id string) (*models.User, error) {
	if !auth.IsOwner(id, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("user_get_not_allowed")
	}
	return s.get(ctx, id)
}

func (s *UserService) get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, notFound("user_not_found")
	}
	if err != nil {
		return nil, persistence("user_read_failed", err)
	}
	return user, nil
}

// Create creates a user account together with its profile and its
// "default" pagination setting. Super only.
func (s *UserService) Create(ctx context.Context, caller *auth.Context, input *UserInput) (*models.User, error) {
	if !auth.IsSuper(caller) {
		return nil, notAuthorized("user_create_not_allowed")
	}
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	if err := s.checkOrg(ctx, *input.OrgID); err != nil {
		return nil, err
	}

	if _, err := s.users.Get(ctx, input.ID); err == nil {
		return nil, alreadyExists("user_already_exists")
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, persistence("user_read_failed", err)
	}

	hash, err := hashPassword(*input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           input.ID,
		PasswordHash: hash,
		Roles:        input.Roles,
		OrgID:        *input.OrgID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Locked != nil {
		user.Locked = *input.Locked
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return nil, alreadyExists("user_already_exists")
		}
		return nil, persistence("user_create_failed", err)
	}

	profile := &models.UserProfile{
		UserID:      input.ID,
		DisplayName: *input.DisplayName,
		Email:       *input.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.ImageURL != nil {
		profile.ImageURL = *input.ImageURL
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, persistence("userprofile_create_failed", err)
	}

	setting := &models.UserSetting{
		UserID:             input.ID,
		Type:               models.DefaultSettingType,
		ListLimit:          models.DefaultListLimit,
		BookmarkExpiration: models.DefaultBookmarkExpiration,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.settings.Create(ctx, setting); err != nil {
		return nil, persistence("usersetting_create_failed", err)
	}

	log.Debug().Str("user_id", user.ID).Str("org_id", user.OrgID).Msg("created user")

	return user, nil
}

// Update merges partial fields into a user account. Super only. A tenant
// move is validated against the organization store.
func (s *UserService) Update(ctx context.Context, caller *auth.Context, input *UserInput) (*models.User, error) {
	if !auth.IsSuper(caller) {
		return nil, notAuthorized("user_update_not_allowed")
	}
	if err := s.validateUpdate(input); err != nil {
		return nil, err
	}

	found, err := s.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.OrgID != nil && *input.OrgID != found.OrgID {
		if err := s.checkOrg(ctx, *input.OrgID); err != nil {
			return nil, err
		}
		found.OrgID = *input.OrgID
	}
	if input.Roles != nil {
		found.Roles = input.Roles
	}
	if input.Locked != nil {
		found.Locked = *input.Locked
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		found.PasswordHash = hash
	}

	if err := s.users.Update(ctx, found); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, notFound("user_not_found")
		}
		return nil, persistence("user_update_failed", err)
	}

	return found, nil
}

// Delete removes a user account and every sub-resource it owns. Super only.
func (s *UserService) Delete(ctx context.Context, caller *auth.Context, id string) (*models.User, error) {
	if !auth.IsSuper(caller) {
		return nil, notAuthorized("user_delete_not_allowed")
	}

	found, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, notFound("user_not_found")
		}
		return nil, persistence("user_delete_failed", err)
	}

	if err := s.profiles.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		return nil, persistence("userprofile_delete_failed", err)
	}
	if _, err := s.settings.DeleteByUser(ctx, id, true); err != nil && !errors.Is(err, store.ErrSettingNotFound) {
		return nil, persistence("usersetting_delete_failed", err)
	}
	if _, err := s.bookmarks.DeleteByUser(ctx, id); err != nil && !errors.Is(err, store.ErrBookmarkNotFound) {
		return nil, persistence("userbookmark_delete_failed", err)
	}

	log.Debug().Str("user_id", id).Msg("deleted user")

	return found, nil
}

func (s *UserService) checkOrg(ctx context.Context, orgID string) error {
	if _, err := s.orgs.Get(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrOrganizationNotFound) {
			return invalid("user_org_not_found")
		}
		return persistence("org_read_failed", err)
	}
	return nil
}

func (s *UserService) validateCreate(input *UserInput) error {
	if len(input.ID) < minCredentialLength {
		return invalid("user_id_invalid")
	}
	if input.Password == nil {
		return invalid("user_password_invalid")
	}
	if input.OrgID == nil || *input.OrgID == "" {
		return invalid("user_org_invalid")
	}
	if input.DisplayName == nil || *input.DisplayName == "" {
		return invalid("userprofile_displayname_invalid")
	}
	if input.Email == nil || *input.Email == "" {
		return invalid("userprofile_email_invalid")
	}
	return s.validateCommon(input)
}

func (s *UserService) validateUpdate(input *UserInput) error {
	if input.ID == "" {
		return invalid("user_id_invalid")
	}
	if input.OrgID != nil && *input.OrgID == "" {
		return invalid("user_org_invalid")
	}
	return s.validateCommon(input)
}

func (s *UserService) validateCommon(input *UserInput) error {
	if input.Password != nil && len(*input.Password) < minCredentialLength {
		return invalid("user_password_invalid")
	}
	return validateProfileFields(input.DisplayName, input.Email, input.Phone, input.ImageURL)
}

func validateProfileFields(displayName, email, phone, imageURL *string) error {
	if displayName != nil && *displayName == "" {
		return invalid("userprofile_displayname_invalid")
	}
	if email != nil && !reEmail.MatchString(*email) {
		return invalid("userprofile_email_invalid")
	}
	if phone != nil && *phone != "" && !rePhone.MatchString(*phone) {
		return invalid("userprofile_phone_invalid")
	}
	if imageURL != nil && *imageURL != "" && !reURL.MatchString(*imageURL) {
		return invalid("userprofile_imageurl_invalid")
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", persistence("user_password_hash_failed", err)
	}
	return string(hash), nil
}
