package types

import "time"

type AlertType string

const (
	AlertTypeLowStock         AlertType = "low-stock"
	AlertTypeExpiry           AlertType = "expiry"
	AlertTypeNewDonation      AlertType = "new-donation"
	AlertTypeVolunteerRequest AlertType = "volunteer-request"
	AlertTypeSystem           AlertType = "system"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeLowStock, AlertTypeExpiry, AlertTypeNewDonation, AlertTypeVolunteerRequest, AlertTypeSystem:
		return true
	}
	return false
}

type AlertPriority string

const (
	AlertPriorityHigh   AlertPriority = "high"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityLow    AlertPriority = "low"
)

func (p AlertPriority) Valid() bool {
	switch p {
	case AlertPriorityHigh, AlertPriorityMedium, AlertPriorityLow:
		return true
	}
	return false
}

type RelatedEntityType string

const (
	RelatedEntityDonation  RelatedEntityType = "donation"
	RelatedEntityInventory RelatedEntityType = "inventory"
	RelatedEntityVolunteer RelatedEntityType = "volunteer"
)

// Alert is a notification owned by an NGO. Alerts are created only by domain
// services as side effects, never directly by end users, and a read alert
// never becomes unread again.
type Alert struct {
	ID                string             `db:"id" json:"id"`
	NGOID             string             `db:"ngo_id" json:"ngoId"`
	Type              AlertType          `db:"type" json:"type"`
	Message           string             `db:"message" json:"message"`
	IsRead            bool               `db:"is_read" json:"isRead"`
	Priority          AlertPriority      `db:"priority" json:"priority"`
	RelatedEntityType *RelatedEntityType `db:"related_entity_type" json:"relatedEntityType,omitempty"`
	RelatedEntityID   *string            `db:"related_entity_id" json:"relatedEntityId,omitempty"`
	CreatedAt         time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updatedAt"`
}
