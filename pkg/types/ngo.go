package types

import "time"

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected:
		return true
	}
	return false
}

// NGO is the recipient-side profile tied to a user with role "ngo". Only
// verified NGOs are publicly visible; verification is admin-controlled.
type NGO struct {
	ID               string `db:"id" json:"id"`
	UserID           string `db:"user_id" json:"userId"`
	OrganizationName string `db:"organization_name" json:"organizationName"`
	Description      string `db:"description" json:"description"`

	Street  string `db:"street" json:"street"`
	City    string `db:"city" json:"city"`
	State   string `db:"state" json:"state"`
	ZipCode string `db:"zip_code" json:"zipCode"`
	Country string `db:"country" json:"country"`

	Lat float64 `db:"lat" json:"lat"`
	Lng float64 `db:"lng" json:"lng"`

	Category string   `db:"category" json:"category"`
	Contact  string   `db:"contact" json:"contact"`
	Needs    []string `db:"needs" json:"needs"`
	Tags     []string `db:"tags" json:"tags"`

	VerificationStatus VerificationStatus `db:"verification_status" json:"verificationStatus"`
	RejectionReason    *string            `db:"rejection_reason" json:"rejectionReason,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Address groups the NGO's postal fields for the public API shape.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Location is a raw lat/lng coordinate pair in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (n *NGO) Address() Address {
	return Address{
		Street:  n.Street,
		City:    n.City,
		State:   n.State,
		ZipCode: n.ZipCode,
		Country: n.Country,
	}
}

func (n *NGO) Location() Location {
	return Location{Lat: n.Lat, Lng: n.Lng}
}
