package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to DonationStatus
		allowed  bool
	}{
		{DonationStatusPending, DonationStatusConfirmed, true},
		{DonationStatusPending, DonationStatusReceived, true},
		{DonationStatusPending, DonationStatusDelivered, true},
		{DonationStatusConfirmed, DonationStatusReceived, true},
		{DonationStatusConfirmed, DonationStatusDelivered, true},
		{DonationStatusReceived, DonationStatusDelivered, true},

		// no repeats, no going back
		{DonationStatusPending, DonationStatusPending, false},
		{DonationStatusConfirmed, DonationStatusPending, false},
		{DonationStatusDelivered, DonationStatusPending, false},
		{DonationStatusDelivered, DonationStatusReceived, false},
		{DonationStatusDelivered, DonationStatusDelivered, false},

		{DonationStatusPending, DonationStatus("lost"), false},
		{DonationStatus(""), DonationStatusDelivered, false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestApplicationStatusTransitions(t *testing.T) {
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusApproved))
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusRejected))

	assert.False(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusPending))
	assert.False(t, ApplicationStatusApproved.CanTransitionTo(ApplicationStatusRejected))
	assert.False(t, ApplicationStatusRejected.CanTransitionTo(ApplicationStatusApproved))
	assert.False(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatus("waitlisted")))
}

func TestInventoryLowStock(t *testing.T) {
	assert.True(t, (&InventoryItem{CurrentStock: 0}).LowStock())
	assert.True(t, (&InventoryItem{CurrentStock: 4}).LowStock())
	assert.False(t, (&InventoryItem{CurrentStock: 5}).LowStock())
	assert.False(t, (&InventoryItem{CurrentStock: 50}).LowStock())
}
