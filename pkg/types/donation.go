package types

import "time"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusConfirmed DonationStatus = "confirmed"
	DonationStatusReceived  DonationStatus = "received"
	DonationStatusDelivered DonationStatus = "delivered"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusConfirmed, DonationStatusReceived, DonationStatusDelivered:
		return true
	}
	return false
}

// rank orders the linear pending -> confirmed -> received -> delivered progression.
func (s DonationStatus) rank() int {
	switch s {
	case DonationStatusPending:
		return 0
	case DonationStatusConfirmed:
		return 1
	case DonationStatusReceived:
		return 2
	case DonationStatusDelivered:
		return 3
	}
	return -1
}

// CanTransitionTo reports whether the status may move to next. Statuses only
// advance: skipping ahead is allowed, moving backward or repeating is not.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() > s.rank()
}

type DonationType string

const (
	DonationTypeGoods    DonationType = "goods"
	DonationTypeMoney    DonationType = "money"
	DonationTypeServices DonationType = "services"
)

func (t DonationType) Valid() bool {
	switch t {
	case DonationTypeGoods, DonationTypeMoney, DonationTypeServices:
		return true
	}
	return false
}

type DonationItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// Donation records a pledge from a donor to an NGO. NGOName is a point-in-time
// copy of the NGO's name at creation; later renames do not propagate backward.
type Donation struct {
	ID           string         `db:"id" json:"id"`
	DonorID      string         `db:"donor_id" json:"donorId"`
	NGOID        string         `db:"ngo_id" json:"ngoId"`
	NGOName      string         `db:"ngo_name" json:"ngoName"`
	Items        []DonationItem `db:"items" json:"items"`
	Status       DonationStatus `db:"status" json:"status"`
	Type         DonationType   `db:"type" json:"type"`
	Notes        *string        `db:"notes" json:"notes,omitempty"`
	DonationDate time.Time      `db:"donation_date" json:"donationDate"`
	DeliveryDate *time.Time     `db:"delivery_date" json:"deliveryDate,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}
