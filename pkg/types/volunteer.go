package types

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the application may move to next. Approved
// and rejected are both terminal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s != ApplicationStatusPending || !next.Valid() {
		return false
	}
	return next == ApplicationStatusApproved || next == ApplicationStatusRejected
}

// VolunteerApplication is a donor's offer to volunteer for an NGO. At most one
// application exists per (donor, NGO) pair, enforced by a unique index rather
// than a read-then-write check. NGOName is a point-in-time copy.
type VolunteerApplication struct {
	ID              string            `db:"id" json:"id"`
	DonorID         string            `db:"donor_id" json:"donorId"`
	NGOID           string            `db:"ngo_id" json:"ngoId"`
	NGOName         string            `db:"ngo_name" json:"ngoName"`
	Skills          []string          `db:"skills" json:"skills"`
	AvailableDays   []string          `db:"available_days" json:"availableDays"`
	TimeSlots       []string          `db:"time_slots" json:"timeSlots"`
	Status          ApplicationStatus `db:"status" json:"status"`
	Message         *string           `db:"message" json:"message,omitempty"`
	ApplicationDate time.Time         `db:"application_date" json:"applicationDate"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`
}
