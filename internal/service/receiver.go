package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// firstReceiverID seeds the numeric receiver sequence when the store is
// empty.
const firstReceiverID = 1901

// ReceiverInput carries the writable fields of a receiver. Nil pointer
// fields are left unchanged on update.
type ReceiverInput struct {
	ID         string
	Name       *string
	NameAdd    *string
	Country    *string
	PostalCode *string
	City       *string
	Street     *string
	Email      *string
	Phone      *string
	Fax        *string
	WebSite    *string
	Status     *models.Status
	OrgID      string
}

// ReceiverService manages receiver records within the caller's tenant
// scope. IDs are allocated from a numeric sequence rather than supplied by
// the caller.
type ReceiverService struct {
	receivers store.ReceiverStore
	bookmarks store.UserBookmarkStore
	orgs      *OrganizationService
	pager     *Pager
}

// NewReceiverService wires a receiver service.
func NewReceiverService(receivers store.ReceiverStore, bookmarks store.UserBookmarkStore, orgs *OrganizationService, pager *Pager) *ReceiverService {
	return &ReceiverService{
		receivers: receivers,
		bookmarks: bookmarks,
		orgs:      orgs,
		pager:     pager,
	}
}

// List returns one page of receivers visible to the caller. When orgID is
// set only that tenant's receivers are returned, otherwise the caller's
// whole subtree is searched.
func (s *ReceiverService) List(ctx context.Context, caller *auth.Context, orgID string, page int, opts BookmarkOptions) ([]*models.Receiver, error) {
	window, err := s.pager.Window(ctx, caller, models.TypeReceivers, page)
	if err != nil {
		return nil, err
	}

	orgIDs, err := s.scopeIDs(ctx, caller, orgID)
	if err != nil {
		return nil, err
	}

	if opts.First || opts.Only {
		opts.IDs, err = bookmarkedIDs(ctx, s.bookmarks, caller.ID, models.TypeReceivers)
		if err != nil {
			return nil, err
		}
	}

	return findPage(ctx, s.listReceivers, orgIDs, window, opts)
}

func (s *ReceiverService) listReceivers(ctx context.Context, filter store.ListFilter) ([]*models.Receiver, error) {
	receivers, err := s.receivers.List(ctx, filter)
	if err != nil {
		return nil, persistence("receiver_read_failed", err)
	}
	return receivers, nil
}

// Get returns a receiver by ID, provided it lives inside the caller's
// tenant scope.
func (s *ReceiverService) Get(ctx context.Context, caller *auth.Context, id string) (*models.Receiver, error) {
	found, err := s.receivers.Get(ctx, id)
	if errors.Is(err, store.ErrReceiverNotFound) {
		return nil, notFound("receiver_not_found")
	}
	if err != nil {
		return nil, persistence("receiver_read_failed", err)
	}

	// Out-of-scope receivers look absent so existence is never confirmed
	// to callers outside the owning subtree.
	if err := s.checkScope(ctx, caller, found.OrgID); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *ReceiverService) checkScope(ctx context.Context, caller *auth.Context, orgID string) error {
	_, err := s.orgs.ValidateOrg(ctx, caller, orgID)
	if KindOf(err) == KindNotAuthorized {
		return notFound("receiver_not_found")
	}
	return err
}

// Create allocates the next sequence ID and creates a receiver in the
// target tenant. An empty OrgID defaults to the caller's home tenant.
func (s *ReceiverService) Create(ctx context.Context, caller *auth.Context, input *ReceiverInput) (*models.Receiver, error) {
	if input.Name == nil || blank(*input.Name) {
		return nil, invalid("receiver_name_invalid")
	}
	if err := validateReceiverFields(input); err != nil {
		return nil, err
	}

	orgID, err := s.orgs.ValidateOrg(ctx, caller, input.OrgID)
	if err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rcv := &models.Receiver{
		ID:          id,
		Name:        *input.Name,
		Status:      models.StatusActive,
		IsDeletable: true,
		OrgID:       orgID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyReceiverInput(rcv, input)

	if err := s.receivers.Create(ctx, rcv); err != nil {
		if errors.Is(err, store.ErrReceiverAlreadyExists) {
			return nil, alreadyExists("receiver_already_exists")
		}
		return nil, persistence("receiver_create_failed", err)
	}

	log.Debug().Str("receiver_id", rcv.ID).Str("org_id", rcv.OrgID).Msg("created receiver")

	return rcv, nil
}

// Update merges partial fields into a receiver inside the caller's scope.
func (s *ReceiverService) Update(ctx context.Context, caller *auth.Context, input *ReceiverInput) (*models.Receiver, error) {
	if blank(input.ID) {
		return nil, invalid("receiver_id_invalid")
	}
	if input.Name != nil && blank(*input.Name) {
		return nil, invalid("receiver_name_invalid")
	}
	if err := validateReceiverFields(input); err != nil {
		return nil, err
	}

	found, err := s.receivers.Get(ctx, input.ID)
	if errors.Is(err, store.ErrReceiverNotFound) {
		return nil, notFound("receiver_not_found")
	}
	if err != nil {
		return nil, persistence("receiver_read_failed", err)
	}

	if err := s.checkScope(ctx, caller, found.OrgID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		found.Name = *input.Name
	}
	applyReceiverInput(found, input)

	if err := s.receivers.Update(ctx, found); err != nil {
		if errors.Is(err, store.ErrReceiverNotFound) {
			return nil, notFound("receiver_not_found")
		}
		return nil, persistence("receiver_update_failed", err)
	}

	return found, nil
}

// Delete removes a receiver inside the caller's scope. Non-deletable
// receivers are refused.
func (s *ReceiverService) Delete(ctx context.Context, caller *auth.Context, id string) (*models.Receiver, error) {
	found, err := s.receivers.Get(ctx, id)
	if errors.Is(err, store.ErrReceiverNotFound) {
		return nil, notFound("receiver_not_found")
	}
	if err != nil {
		return nil, persistence("receiver_read_failed", err)
	}

	if err := s.checkScope(ctx, caller, found.OrgID); err != nil {
		return nil, err
	}
	if !found.IsDeletable {
		return nil, conflict("receiver_cannot_delete")
	}

	if err := s.receivers.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrReceiverNotFound) {
			return nil, notFound("receiver_not_found")
		}
		return nil, persistence("receiver_delete_failed", err)
	}

	return found, nil
}

func (s *ReceiverService) scopeIDs(ctx context.Context, caller *auth.Context, orgID string) ([]string, error) {
	if orgID != "" {
		resolved, err := s.orgs.ValidateOrg(ctx, caller, orgID)
		if err != nil {
			return nil, err
		}
		return []string{resolved}, nil
	}
	if auth.IsSuper(caller) {
		return nil, nil
	}
	return s.orgs.scopeIDs(ctx, caller)
}

func (s *ReceiverService) nextID(ctx context.Context) (string, error) {
	maxID, err := s.receivers.MaxID(ctx)
	if err != nil {
		return "", persistence("receiver_read_failed", err)
	}
	if maxID == "" {
		return strconv.Itoa(firstReceiverID), nil
	}

	n, err := strconv.Atoi(maxID)
	if err != nil {
		return "", persistence("receiver_id_invalid", err)
	}
	return strconv.Itoa(n + 1), nil
}

func applyReceiverInput(rcv *models.Receiver, input *ReceiverInput) {
	if input.NameAdd != nil {
		rcv.NameAdd = *input.NameAdd
	}
	if input.Country != nil {
		rcv.Country = *input.Country
	}
	if input.PostalCode != nil {
		rcv.PostalCode = *input.PostalCode
	}
	if input.City != nil {
		rcv.City = *input.City
	}
	if input.Street != nil {
		rcv.Street = *input.Street
	}
	if input.Email != nil {
		rcv.Email = *input.Email
	}
	if input.Phone != nil {
		rcv.Phone = *input.Phone
	}
	if input.Fax != nil {
		rcv.Fax = *input.Fax
	}
	if input.WebSite != nil {
		rcv.WebSite = *input.WebSite
	}
	if input.Status != nil {
		rcv.Status = *input.Status
	}
}

func validateReceiverFields(input *ReceiverInput) error {
	if input.Country != nil && *input.Country != "" && !reCountry.MatchString(*input.Country) {
		return invalid("receiver_country_invalid")
	}
	if input.Email != nil && *input.Email != "" && !reEmail.MatchString(*input.Email) {
		return invalid("receiver_email_invalid")
	}
	if input.Phone != nil && *input.Phone != "" && !rePhone.MatchString(*input.Phone) {
		return invalid("receiver_phone_invalid")
	}
	if input.Fax != nil && *input.Fax != "" && !rePhone.MatchString(*input.Fax) {
		return invalid("receiver_fax_invalid")
	}
	if input.WebSite != nil && *input.WebSite != "" && !reURL.MatchString(*input.WebSite) {
		return invalid("receiver_website_invalid")
	}
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return invalid("receiver_status_invalid")
	}
	return nil
}
