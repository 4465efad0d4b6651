package service

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// PageWindow is the skip/take pair for one page of a list. Take == 0 means
// no limit.
type PageWindow struct {
	Skip int
	Take int
}

// BookmarkOptions biases a list toward the caller's bookmarks. IDs is
// resolved by the resource service before pagination runs.
type BookmarkOptions struct {
	First bool // bookmarked items ranked ahead of others
	Only  bool // return only bookmarked items
	IDs   []string
}

// ParseBookmarkMode maps the wire parameter values "first" and "only" onto
// BookmarkOptions; anything else yields the zero options.
func ParseBookmarkMode(mode string) BookmarkOptions {
	return BookmarkOptions{
		First: mode == "first",
		Only:  mode == "only",
	}
}

// Pager computes page windows from a caller's per-resource-type list-limit
// setting, falling back to the "default" setting row when no type-specific
// override exists.
type Pager struct {
	settings store.UserSettingStore
}

// NewPager creates a pager reading limits from the given setting store.
func NewPager(settings store.UserSettingStore) *Pager {
	return &Pager{settings: settings}
}

// Window returns the skip/take pair for a 1-based page number. Page <= 0
// requests everything: skip 0, no limit.
func (p *Pager) Window(ctx context.Context, caller *auth.Context, resourceType string, page int) (PageWindow, error) {
	if page <= 0 {
		return PageWindow{}, nil
	}

	take, err := p.listLimit(ctx, caller.ID, resourceType)
	if err != nil {
		return PageWindow{}, err
	}

	return PageWindow{Skip: (page - 1) * take, Take: take}, nil
}

func (p *Pager) listLimit(ctx context.Context, userID, resourceType string) (int, error) {
	setting, err := p.settings.Get(ctx, userID, resourceType)
	if errors.Is(err, store.ErrSettingNotFound) {
		setting, err = p.settings.Get(ctx, userID, models.DefaultSettingType)
	}
	if errors.Is(err, store.ErrSettingNotFound) {
		return models.DefaultListLimit, nil
	}
	if err != nil {
		return 0, persistence("usersetting_read_failed", err)
	}
	return setting.ListLimit, nil
}

// findPage produces one page of results, bookmarked items first when asked.
//
// The bookmarked subset and the remainder come from two separate queries so
// the store does not need to order by bookmark state. The remainder query
// reuses the window's skip unchanged rather than accounting for bookmarked
// rows already consumed; the resulting boundary behavior is part of the
// documented contract of every list endpoint, so it stays.
func findPage[T any](
	ctx context.Context,
	list func(context.Context, store.ListFilter) ([]T, error),
	orgIDs []string,
	window PageWindow,
	opts BookmarkOptions,
) ([]T, error) {
	if !opts.First && !opts.Only {
		return list(ctx, store.ListFilter{
			OrgIDs: orgIDs,
			Skip:   window.Skip,
			Take:   window.Take,
		})
	}

	include := opts.IDs
	if include == nil {
		include = []string{}
	}

	bookmarked, err := list(ctx, store.ListFilter{
		OrgIDs:     orgIDs,
		IncludeIDs: include,
		Skip:       window.Skip,
		Take:       window.Take,
	})
	if err != nil {
		return nil, err
	}

	if opts.Only || (window.Take > 0 && len(bookmarked) >= window.Take) {
		return bookmarked, nil
	}

	takeMore := 0
	if window.Take > 0 {
		takeMore = window.Take - len(bookmarked)
	}

	more, err := list(ctx, store.ListFilter{
		OrgIDs:     orgIDs,
		ExcludeIDs: opts.IDs,
		Skip:       window.Skip,
		Take:       takeMore,
	})
	if err != nil {
		return nil, err
	}

	return append(bookmarked, more...), nil
}

// bookmarkedIDs resolves the caller's bookmarked object IDs for a resource
// type, for use as BookmarkOptions.IDs.
func bookmarkedIDs(ctx context.Context, bookmarks store.UserBookmarkStore, userID, resourceType string) ([]string, error) {
	rows, err := bookmarks.ListByUserAndType(ctx, userID, resourceType)
	if err != nil {
		return nil, persistence("userbookmark_read_failed", err)
	}

	ids := make([]string, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ObjectID)
	}
	return ids, nil
}
