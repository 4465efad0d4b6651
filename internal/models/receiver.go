package models

import (
	"time"
)

// Receiver represents a customer record owned by exactly one organization.
type Receiver struct {
	ID          string // sequential numeric string, assigned by the service
	Name        string
	NameAdd     string
	Country     string // ISO country code, 2-3 uppercase letters
	PostalCode  string
	City        string
	Street      string
	Email       string
	Phone       string
	Fax         string
	WebSite     string
	Status      Status
	IsDeletable bool
	OrgID       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReceiverView is the caller-facing projection of a receiver.
type ReceiverView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NameAdd    string `json:"nameAdd,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Street     string `json:"street,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Fax        string `json:"fax,omitempty"`
	WebSite    string `json:"webSite,omitempty"`
	Status     Status `json:"status"`
	OrgID      string `json:"orgId"`
}

// View returns the public projection of the receiver.
func (r *Receiver) View() *ReceiverView {
	return &ReceiverView{
		ID:         r.ID,
		Name:       r.Name,
		NameAdd:    r.NameAdd,
		Country:    r.Country,
		PostalCode: r.PostalCode,
		City:       r.City,
		Street:     r.Street,
		Email:      r.Email,
		Phone:      r.Phone,
		Fax:        r.Fax,
		WebSite:    r.WebSite,
		Status:     r.Status,
		OrgID:      r.OrgID,
	}
}
