package server

import (
	"context"
	"net/http"
	"testing"

	"sevaconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func donationFixture(t *testing.T, env *testEnv) (donorToken string) {
	t.Helper()
	env.addUser(t, "donor-1", "donor@example.com", types.UserRoleDonor)
	env.addUser(t, "owner-1", "ngo@example.com", types.UserRoleNGO)
	env.addNGO(t, "ngo-1", "owner-1", "Helping Hands", types.VerificationStatusVerified)
	return env.tokenFor(t, "donor-1")
}

func TestCreateDonation(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	rec := env.do(t, http.MethodPost, "/donations", token, map[string]any{
		"donorId": "donor-1",
		"ngoId":   "ngo-1",
		"items": []map[string]any{
			{"name": "Rice", "quantity": 10, "category": "food"},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	donation := body["donation"].(map[string]any)

	// New donations always start pending with the NGO name snapshotted.
	assert.Equal(t, string(types.DonationStatusPending), donation["status"])
	assert.Equal(t, "Helping Hands", donation["ngoName"])
	assert.Equal(t, string(types.DonationTypeGoods), donation["type"])

	// The NGO gets a new-donation alert.
	alerts, err := env.alerts.AlertsByNGO(context.Background(), "ngo-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, types.AlertTypeNewDonation, alerts[0].Type)
	assert.False(t, alerts[0].IsRead)
}

func TestCreateDonation_InvalidDonor(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	// NGO users cannot donate on a donor's behalf.
	rec := env.do(t, http.MethodPost, "/donations", token, map[string]any{
		"donorId": "owner-1",
		"ngoId":   "ngo-1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid donor", decodeBody(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/donations", token, map[string]any{
		"donorId": "nobody",
		"ngoId":   "ngo-1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid donor", decodeBody(t, rec)["error"])
}

func TestCreateDonation_UnknownNGO(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	rec := env.do(t, http.MethodPost, "/donations", token, map[string]any{
		"donorId": "donor-1",
		"ngoId":   "nowhere",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NGO not found", decodeBody(t, rec)["error"])
}

func TestCreateDonation_BadItems(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	tests := []struct {
		name  string
		items []map[string]any
	}{
		{name: "empty name", items: []map[string]any{{"name": "", "quantity": 5}}},
		{name: "zero quantity", items: []map[string]any{{"name": "Rice", "quantity": 0}}},
		{name: "negative quantity", items: []map[string]any{{"name": "Rice", "quantity": -2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/donations", token, map[string]any{
				"donorId": "donor-1",
				"ngoId":   "ngo-1",
				"items":   tt.items,
			})
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Each item needs a name and a quantity of at least 1", decodeBody(t, rec)["error"])
		})
	}
}

func TestUpdateDonationStatus(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	created := env.do(t, http.MethodPost, "/donations", token, map[string]any{
		"donorId": "donor-1",
		"ngoId":   "ngo-1",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	donationID := decodeBody(t, created)["donationId"].(string)

	// Skipping straight from pending to delivered is allowed.
	rec := env.do(t, http.MethodPut, "/donations/"+donationID+"/status", token, map[string]any{
		"status": "delivered",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	donation := decodeBody(t, rec)["donation"].(map[string]any)
	assert.Equal(t, string(types.DonationStatusDelivered), donation["status"])

	// Going backward is not.
	rec = env.do(t, http.MethodPut, "/donations/"+donationID+"/status", token, map[string]any{
		"status": "pending",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot change status from delivered to pending", decodeBody(t, rec)["error"])
}

func TestUpdateDonationStatus_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	rec := env.do(t, http.MethodPut, "/donations/whatever/status", token, map[string]any{
		"status": "teleported",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", decodeBody(t, rec)["error"])
}

func TestUpdateDonationStatus_NotFound(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	rec := env.do(t, http.MethodPut, "/donations/missing/status", token, map[string]any{
		"status": "confirmed",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Donation not found", decodeBody(t, rec)["error"])
}

func TestDonationListings(t *testing.T) {
	env := newTestEnv(t)
	token := donationFixture(t, env)

	for range 3 {
		rec := env.do(t, http.MethodPost, "/donations", token, map[string]any{
			"donorId": "donor-1",
			"ngoId":   "ngo-1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	byDonor := env.do(t, http.MethodGet, "/donations/donor/donor-1", token, nil)
	require.Equal(t, http.StatusOK, byDonor.Code)
	assert.Len(t, decodeBody(t, byDonor)["donations"], 3)

	byNGO := env.do(t, http.MethodGet, "/donations/ngo/ngo-1", token, nil)
	require.Equal(t, http.StatusOK, byNGO.Code)
	assert.Len(t, decodeBody(t, byNGO)["donations"], 3)
}
