package types

import "time"

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// LowStockThreshold is the fixed stock level below which an item counts as low.
const LowStockThreshold = 5

// InventoryItem tracks a supply an NGO holds or is collecting. CurrentStock is
// expected to stay at or below Quantity but nothing enforces that.
type InventoryItem struct {
	ID             string     `db:"id" json:"id"`
	NGOID          string     `db:"ngo_id" json:"ngoId"`
	ItemName       string     `db:"item_name" json:"itemName"`
	Category       string     `db:"category" json:"category"`
	Quantity       int        `db:"quantity" json:"quantity"`
	CurrentStock   int        `db:"current_stock" json:"currentStock"`
	Urgency        Urgency    `db:"urgency" json:"urgency"`
	ExpiryDate     *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`
	Description    *string    `db:"description" json:"description,omitempty"`
	TargetQuantity *int       `db:"target_quantity" json:"targetQuantity,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// LowStock reports whether the item is below the fixed threshold.
func (i *InventoryItem) LowStock() bool {
	return i.CurrentStock < LowStockThreshold
}
