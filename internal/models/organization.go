package models

import (
	"time"
)

// Status is the lifecycle state shared by organizations and receivers.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}

// Organization represents a tenant node in the organization hierarchy.
// The parent link is a weak reference used only for tree reconstruction;
// children are always derived by the tenant resolver, never stored.
type Organization struct {
	ID          string // caller-assigned, immutable
	Name        string
	Status      Status
	IsDeletable bool
	Locale      string
	Currency    string
	Timezone    string
	ParentID    *string // nil for root nodes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrganizationTree is a node together with its reconstructed descendants.
type OrganizationTree struct {
	Organization
	Children []*OrganizationTree
}

// OrganizationView is the caller-facing projection of an organization.
// Internal bookkeeping fields (isDeletable, timestamps) are stripped and
// the parent link is flattened to its ID.
type OrganizationView struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Status   Status              `json:"status"`
	Locale   string              `json:"locale,omitempty"`
	Currency string              `json:"currency,omitempty"`
	Timezone string              `json:"timezone,omitempty"`
	ParentID *string             `json:"parentId,omitempty"`
	Children []*OrganizationView `json:"children,omitempty"`
}

// View returns the public projection of the organization.
func (o *Organization) View() *OrganizationView {
	return &OrganizationView{
		ID:       o.ID,
		Name:     o.Name,
		Status:   o.Status,
		Locale:   o.Locale,
		Currency: o.Currency,
		Timezone: o.Timezone,
		ParentID: o.ParentID,
	}
}

// View returns the public projection of the subtree rooted at t.
func (t *OrganizationTree) View() *OrganizationView {
	v := t.Organization.View()
	for _, c := range t.Children {
		v.Children = append(v.Children, c.View())
	}
	return v
}
