package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
	"github.com/tenantkit/tenantkit/internal/tenant"
)

// OrganizationInput carries the writable fields of an organization. Nil
// pointer fields are left unchanged on update. ParentID follows the same
// rule, with the empty string meaning "detach, become a root node".
type OrganizationInput struct {
	ID       string
	Name     *string
	Status   *models.Status
	Locale   *string
	Currency *string
	Timezone *string
	ParentID *string
}

// OrganizationService manages the tenant hierarchy: structural invariants
// on every write, scope-restricted listing, and the subtree read endpoints.
type OrganizationService struct {
	orgs      store.OrganizationStore
	users     store.UserStore
	receivers store.ReceiverStore
	bookmarks store.UserBookmarkStore
	resolver  *tenant.Resolver
	pager     *Pager
}

// NewOrganizationService wires an organization service.
func NewOrganizationService(
	orgs store.OrganizationStore,
	users store.UserStore,
	receivers store.ReceiverStore,
	bookmarks store.UserBookmarkStore,
	resolver *tenant.Resolver,
	pager *Pager,
) *OrganizationService {
	return &OrganizationService{
		orgs:      orgs,
		users:     users,
		receivers: receivers,
		bookmarks: bookmarks,
		resolver:  resolver,
		pager:     pager,
	}
}

// List returns one page of organizations. Non-super callers only see
// tenants inside their own subtree; super sees everything.
func (s *OrganizationService) List(ctx context.Context, caller *auth.Context, page int, opts BookmarkOptions) ([]*models.Organization, error) {
	window, err := s.pager.Window(ctx, caller, models.TypeOrganizations, page)
	if err != nil {
		return nil, err
	}

	var orgIDs []string
	if !auth.IsSuper(caller) {
		orgIDs, err = s.scopeIDs(ctx, caller)
		if err != nil {
			return nil, err
		}
	}

	if opts.First || opts.Only {
		opts.IDs, err = bookmarkedIDs(ctx, s.bookmarks, caller.ID, models.TypeOrganizations)
		if err != nil {
			return nil, err
		}
	}

	return findPage(ctx, s.listOrgs, orgIDs, window, opts)
}

func (s *OrganizationService) listOrgs(ctx context.Context, filter store.ListFilter) ([]*models.Organization, error) {
	orgs, err := s.orgs.List(ctx, filter)
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}
	return orgs, nil
}

// Get returns a single organization by ID. There is no tenant-scope
// restriction on point reads; only listing is scoped (see List).
func (s *OrganizationService) Get(ctx context.Context, id string) (*models.Organization, error) {
	org, err := s.orgs.Get(ctx, id)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, notFound("org_not_found")
	}
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}
	return org, nil
}

// Tree returns the subtree rooted at rootID, unbounded depth.
func (s *OrganizationService) Tree(ctx context.Context, rootID string) (*models.OrganizationTree, error) {
	tree, err := s.resolver.Tree(ctx, rootID)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, notFound("org_root_not_found")
	}
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}
	return tree, nil
}

// TreeIDs returns the flattened subtree rooted at rootID, depth-first with
// the root first.
func (s *OrganizationService) TreeIDs(ctx context.Context, rootID string) ([]string, error) {
	ids, err := s.resolver.TreeIDs(ctx, rootID)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, notFound("org_tree_not_found")
	}
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}
	return ids, nil
}

// Create creates a tenant node. Only super may create a root node; anyone
// else must supply a parent inside their own scope.
func (s *OrganizationService) Create(ctx context.Context, caller *auth.Context, input *OrganizationInput) (*models.Organization, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	parentID := ""
	if input.ParentID != nil {
		parentID = *input.ParentID
	}

	if !auth.IsSuper(caller) && parentID == "" {
		return nil, notAuthorized("org_parent_not_allowed")
	}
	if parentID != "" {
		if _, err := s.ValidateOrg(ctx, caller, parentID); err != nil {
			return nil, err
		}
	}

	if _, err := s.orgs.Get(ctx, input.ID); err == nil {
		return nil, alreadyExists("org_already_exists")
	} else if !errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, persistence("org_read_failed", err)
	}

	if err := s.validateParent(ctx, input.ID, parentID); err != nil {
		return nil, err
	}

	now := time.Now()
	org := &models.Organization{
		ID:          input.ID,
		Name:        *input.Name,
		Status:      models.StatusActive,
		IsDeletable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Status != nil {
		org.Status = *input.Status
	}
	if input.Locale != nil {
		org.Locale = *input.Locale
	}
	if input.Currency != nil {
		org.Currency = *input.Currency
	}
	if input.Timezone != nil {
		org.Timezone = *input.Timezone
	}
	if parentID != "" {
		org.ParentID = &parentID
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		if errors.Is(err, store.ErrOrganizationAlreadyExists) {
			return nil, alreadyExists("org_already_exists")
		}
		return nil, persistence("org_create_failed", err)
	}

	log.Debug().Str("org_id", org.ID).Msg("created organization")

	return org, nil
}

// Update merges partial fields into an organization. The parent link is
// only re-validated when it actually changes, including transitions between
// root and non-root.
func (s *OrganizationService) Update(ctx context.Context, caller *auth.Context, input *OrganizationInput) (*models.Organization, error) {
	if err := s.validateUpdate(input); err != nil {
		return nil, err
	}

	found, err := s.orgs.Get(ctx, input.ID)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, notFound("org_not_found")
	}
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}

	parentSupplied := input.ParentID != nil && *input.ParentID != ""
	if !auth.IsSuper(caller) && !parentSupplied && found.ParentID == nil {
		return nil, notAuthorized("org_parent_not_allowed")
	}

	if _, err := s.ValidateOrg(ctx, caller, input.ID); err != nil {
		return nil, err
	}

	parentChanged := input.ParentID != nil &&
		(found.ParentID == nil || *input.ParentID != *found.ParentID)
	if parentChanged {
		if _, err := s.ValidateOrg(ctx, caller, *input.ParentID); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		found.Name = *input.Name
	}
	if input.Status != nil {
		found.Status = *input.Status
	}
	if input.Locale != nil {
		found.Locale = *input.Locale
	}
	if input.Currency != nil {
		found.Currency = *input.Currency
	}
	if input.Timezone != nil {
		found.Timezone = *input.Timezone
	}

	if parentChanged {
		if *input.ParentID == "" {
			found.ParentID = nil
		} else {
			if err := s.validateParent(ctx, input.ID, *input.ParentID); err != nil {
				return nil, err
			}
			parentID := *input.ParentID
			found.ParentID = &parentID
		}
	}

	if err := s.orgs.Update(ctx, found); err != nil {
		if errors.Is(err, store.ErrOrganizationNotFound) {
			return nil, notFound("org_not_found")
		}
		return nil, persistence("org_update_failed", err)
	}

	return found, nil
}

// Delete removes a tenant node. A node with children, member users or
// member receivers is refused unless force is set; a root node may only be
// removed by super.
func (s *OrganizationService) Delete(ctx context.Context, caller *auth.Context, id string, force bool) (*models.Organization, error) {
	if _, err := s.ValidateOrg(ctx, caller, id); err != nil {
		return nil, err
	}

	found, err := s.orgs.Get(ctx, id)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, notFound("org_not_found")
	}
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}

	if found.ParentID == nil && !auth.IsSuper(caller) {
		return nil, notAuthorized("org_delete_not_allowed")
	}

	if !force {
		if err := s.checkDependents(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.orgs.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrOrganizationNotFound) {
			return nil, notFound("org_not_found")
		}
		return nil, persistence("org_delete_failed", err)
	}

	log.Debug().Str("org_id", id).Bool("force", force).Msg("deleted organization")

	return found, nil
}

// ValidateOrg resolves the tenant an operation targets. An empty orgID
// defaults to the caller's home tenant; otherwise non-super callers must
// target a tenant inside their own subtree.
func (s *OrganizationService) ValidateOrg(ctx context.Context, caller *auth.Context, orgID string) (string, error) {
	if orgID == "" {
		return caller.OrgID, nil
	}
	if auth.IsSuper(caller) {
		return orgID, nil
	}

	ids, err := s.scopeIDs(ctx, caller)
	if err != nil {
		return "", err
	}
	if !slices.Contains(ids, orgID) {
		return "", notAuthorized("org_not_allowed")
	}
	return orgID, nil
}

// scopeIDs is the caller's visible tenant set: the flattened subtree rooted
// at their home tenant.
func (s *OrganizationService) scopeIDs(ctx context.Context, caller *auth.Context) ([]string, error) {
	ids, err := s.resolver.TreeIDs(ctx, caller.OrgID)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return nil, notFound("org_tree_not_found")
	}
	if err != nil {
		return nil, persistence("org_read_failed", err)
	}
	return ids, nil
}

func (s *OrganizationService) checkDependents(ctx context.Context, id string) error {
	children, err := s.orgs.CountChildren(ctx, id)
	if err != nil {
		return persistence("org_read_failed", err)
	}
	users, err := s.users.CountByOrg(ctx, id)
	if err != nil {
		return persistence("org_read_failed", err)
	}
	receivers, err := s.receivers.CountByOrg(ctx, id)
	if err != nil {
		return persistence("org_read_failed", err)
	}

	if children > 0 || users > 0 || receivers > 0 {
		return conflict("org_cannot_delete")
	}
	return nil
}

// validateParent enforces the structural invariants of a parent link:
// the parent exists, is not the node itself, and is not a descendant of
// the node (which would close a cycle).
func (s *OrganizationService) validateParent(ctx context.Context, id, parentID string) error {
	if parentID == "" {
		return nil
	}

	if _, err := s.orgs.Get(ctx, parentID); err != nil {
		if errors.Is(err, store.ErrOrganizationNotFound) {
			return invalid("org_parent_not_found")
		}
		return persistence("org_read_failed", err)
	}

	if parentID == id {
		return conflict("org_parent_self_ref")
	}

	descendant, err := s.resolver.IsDescendant(ctx, id, parentID)
	if err != nil {
		// The node doesn't exist yet on create; it has no descendants.
		if errors.Is(err, store.ErrOrganizationNotFound) {
			return nil
		}
		return persistence("org_read_failed", err)
	}
	if descendant {
		return conflict("org_parent_circular_ref")
	}

	return nil
}

func (s *OrganizationService) validateCreate(input *OrganizationInput) error {
	if blank(input.ID) {
		return invalid("org_id_invalid")
	}
	if input.Name == nil || blank(*input.Name) {
		return invalid("org_name_invalid")
	}
	return s.validateCommon(input)
}

func (s *OrganizationService) validateUpdate(input *OrganizationInput) error {
	if blank(input.ID) {
		return invalid("org_id_invalid")
	}
	if input.Name != nil && blank(*input.Name) {
		return invalid("org_name_invalid")
	}
	return s.validateCommon(input)
}

func (s *OrganizationService) validateCommon(input *OrganizationInput) error {
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return invalid("org_status_invalid")
	}
	return nil
}
