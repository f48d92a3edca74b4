package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"sevaconnect/internal/auth"
	"sevaconnect/internal/search"
	"sevaconnect/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// In-memory stores backing the handler tests. They replicate the persistence
// defaults (generated ids, initial statuses, uniqueness) so handlers see the
// same behavior as against the real repositories.

type fakeUsers struct {
	users map[string]*types.User
	seq   int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*types.User{}}
}

func (f *fakeUsers) User(_ context.Context, userID string) (*types.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *types.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return types.ErrEmailTaken
		}
	}
	if user.ID == "" {
		f.seq++
		user.ID = fmt.Sprintf("user-%d", f.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) CountByRole(_ context.Context, role types.UserRole) (int, error) {
	n := 0
	for _, user := range f.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeNGOs struct {
	ngos map[string]*types.NGO
	seq  int
}

func newFakeNGOs() *fakeNGOs {
	return &fakeNGOs{ngos: map[string]*types.NGO{}}
}

func (f *fakeNGOs) NGO(_ context.Context, ngoID string) (*types.NGO, error) {
	ngo, ok := f.ngos[ngoID]
	if !ok {
		return nil, types.ErrNGONotFound
	}
	return ngo, nil
}

func (f *fakeNGOs) NGOByUserID(_ context.Context, userID string) (*types.NGO, error) {
	for _, ngo := range f.ngos {
		if ngo.UserID == userID {
			return ngo, nil
		}
	}
	return nil, types.ErrNGONotFound
}

func (f *fakeNGOs) VerifiedNGOs(_ context.Context, category, city, state string) ([]*types.NGO, error) {
	var out []*types.NGO
	for _, ngo := range f.ngos {
		if ngo.VerificationStatus != types.VerificationStatusVerified {
			continue
		}
		if category != "" && ngo.Category != category {
			continue
		}
		if city != "" && !strings.EqualFold(ngo.City, city) {
			continue
		}
		if state != "" && !strings.EqualFold(ngo.State, state) {
			continue
		}
		out = append(out, ngo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNGOs) NGOsByStatus(_ context.Context, status types.VerificationStatus) ([]*types.NGO, error) {
	var out []*types.NGO
	for _, ngo := range f.ngos {
		if ngo.VerificationStatus == status {
			out = append(out, ngo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNGOs) Create(_ context.Context, ngo *types.NGO) error {
	if ngo.ID == "" {
		f.seq++
		ngo.ID = fmt.Sprintf("ngo-%d", f.seq)
	}
	if ngo.VerificationStatus == "" {
		ngo.VerificationStatus = types.VerificationStatusPending
	}
	ngo.CreatedAt = time.Now()
	ngo.UpdatedAt = ngo.CreatedAt
	f.ngos[ngo.ID] = ngo
	return nil
}

func (f *fakeNGOs) Update(_ context.Context, ngoID string, ngo *types.NGO) error {
	if _, ok := f.ngos[ngoID]; !ok {
		return types.ErrNGONotFound
	}
	ngo.ID = ngoID
	f.ngos[ngoID] = ngo
	return nil
}

func (f *fakeNGOs) AddNeed(_ context.Context, ngoID, need string) ([]string, error) {
	ngo, ok := f.ngos[ngoID]
	if !ok {
		return nil, types.ErrNGONotFound
	}
	ngo.Needs = append(ngo.Needs, need)
	return ngo.Needs, nil
}

func (f *fakeNGOs) SetVerificationStatus(_ context.Context, ngoID string, status types.VerificationStatus, reason *string) (*types.NGO, error) {
	ngo, ok := f.ngos[ngoID]
	if !ok {
		return nil, types.ErrNGONotFound
	}
	ngo.VerificationStatus = status
	ngo.RejectionReason = reason
	return ngo, nil
}

func (f *fakeNGOs) CountByStatus(_ context.Context, status types.VerificationStatus) (int, error) {
	if status == "" {
		return len(f.ngos), nil
	}
	n := 0
	for _, ngo := range f.ngos {
		if ngo.VerificationStatus == status {
			n++
		}
	}
	return n, nil
}

type fakeDonations struct {
	donations map[string]*types.Donation
	seq       int
}

func newFakeDonations() *fakeDonations {
	return &fakeDonations{donations: map[string]*types.Donation{}}
}

func (f *fakeDonations) Donation(_ context.Context, donationID string) (*types.Donation, error) {
	donation, ok := f.donations[donationID]
	if !ok {
		return nil, types.ErrDonationNotFound
	}
	return donation, nil
}

func (f *fakeDonations) DonationsByDonor(_ context.Context, donorID string) ([]*types.Donation, error) {
	var out []*types.Donation
	for _, donation := range f.donations {
		if donation.DonorID == donorID {
			out = append(out, donation)
		}
	}
	return out, nil
}

func (f *fakeDonations) DonationsByNGO(_ context.Context, ngoID string) ([]*types.Donation, error) {
	var out []*types.Donation
	for _, donation := range f.donations {
		if donation.NGOID == ngoID {
			out = append(out, donation)
		}
	}
	return out, nil
}

func (f *fakeDonations) RecentDonations(_ context.Context, limit uint64) ([]*types.Donation, error) {
	var out []*types.Donation
	for _, donation := range f.donations {
		out = append(out, donation)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDonations) Create(_ context.Context, donation *types.Donation) error {
	f.seq++
	donation.ID = fmt.Sprintf("donation-%d", f.seq)
	if donation.Status == "" {
		donation.Status = types.DonationStatusPending
	}
	if donation.Type == "" {
		donation.Type = types.DonationTypeGoods
	}
	if donation.DonationDate.IsZero() {
		donation.DonationDate = time.Now()
	}
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = donation.CreatedAt
	f.donations[donation.ID] = donation
	return nil
}

func (f *fakeDonations) SetStatus(_ context.Context, donationID string, status types.DonationStatus) (*types.Donation, error) {
	donation, ok := f.donations[donationID]
	if !ok {
		return nil, types.ErrDonationNotFound
	}
	donation.Status = status
	return donation, nil
}

func (f *fakeDonations) Count(_ context.Context) (int, error) {
	return len(f.donations), nil
}

type fakeInventory struct {
	items map[string]*types.InventoryItem
	seq   int
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{items: map[string]*types.InventoryItem{}}
}

func (f *fakeInventory) Item(_ context.Context, itemID string) (*types.InventoryItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, types.ErrInventoryNotFound
	}
	return item, nil
}

func (f *fakeInventory) ItemsByNGO(_ context.Context, ngoID string) ([]*types.InventoryItem, error) {
	var out []*types.InventoryItem
	for _, item := range f.items {
		if item.NGOID == ngoID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeInventory) LowStockItems(_ context.Context, ngoID string) ([]*types.InventoryItem, error) {
	var out []*types.InventoryItem
	for _, item := range f.items {
		if item.NGOID == ngoID && item.LowStock() {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentStock < out[j].CurrentStock })
	return out, nil
}

func (f *fakeInventory) Create(_ context.Context, item *types.InventoryItem) error {
	if item.ID == "" {
		f.seq++
		item.ID = fmt.Sprintf("item-%d", f.seq)
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventory) Update(_ context.Context, itemID string, item *types.InventoryItem) error {
	if _, ok := f.items[itemID]; !ok {
		return types.ErrInventoryNotFound
	}
	item.ID = itemID
	f.items[itemID] = item
	return nil
}

func (f *fakeInventory) Delete(_ context.Context, itemID string) error {
	if _, ok := f.items[itemID]; !ok {
		return types.ErrInventoryNotFound
	}
	delete(f.items, itemID)
	return nil
}

type fakeVolunteers struct {
	applications map[string]*types.VolunteerApplication
	seq          int
}

func newFakeVolunteers() *fakeVolunteers {
	return &fakeVolunteers{applications: map[string]*types.VolunteerApplication{}}
}

func (f *fakeVolunteers) Application(_ context.Context, applicationID string) (*types.VolunteerApplication, error) {
	application, ok := f.applications[applicationID]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	return application, nil
}

func (f *fakeVolunteers) ApplicationsByDonor(_ context.Context, donorID string) ([]*types.VolunteerApplication, error) {
	var out []*types.VolunteerApplication
	for _, application := range f.applications {
		if application.DonorID == donorID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeVolunteers) ApplicationsByNGO(_ context.Context, ngoID string) ([]*types.VolunteerApplication, error) {
	var out []*types.VolunteerApplication
	for _, application := range f.applications {
		if application.NGOID == ngoID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeVolunteers) Create(_ context.Context, application *types.VolunteerApplication) error {
	for _, existing := range f.applications {
		if existing.DonorID == application.DonorID && existing.NGOID == application.NGOID {
			return types.ErrAlreadyApplied
		}
	}
	f.seq++
	application.ID = fmt.Sprintf("application-%d", f.seq)
	if application.Status == "" {
		application.Status = types.ApplicationStatusPending
	}
	if application.ApplicationDate.IsZero() {
		application.ApplicationDate = time.Now()
	}
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	f.applications[application.ID] = application
	return nil
}

func (f *fakeVolunteers) SetStatus(_ context.Context, applicationID string, status types.ApplicationStatus) (*types.VolunteerApplication, error) {
	application, ok := f.applications[applicationID]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	application.Status = status
	return application, nil
}

type fakeAlerts struct {
	alerts map[string]*types.Alert
	seq    int
}

func newFakeAlerts() *fakeAlerts {
	return &fakeAlerts{alerts: map[string]*types.Alert{}}
}

func (f *fakeAlerts) AlertsByNGO(_ context.Context, ngoID string) ([]*types.Alert, error) {
	var out []*types.Alert
	for _, alert := range f.alerts {
		if alert.NGOID == ngoID {
			out = append(out, alert)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAlerts) UnreadCount(_ context.Context, ngoID string) (int, error) {
	n := 0
	for _, alert := range f.alerts {
		if alert.NGOID == ngoID && !alert.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeAlerts) Create(_ context.Context, alert *types.Alert) error {
	f.seq++
	alert.ID = fmt.Sprintf("alert-%d", f.seq)
	if alert.Priority == "" {
		alert.Priority = types.AlertPriorityMedium
	}
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeAlerts) MarkRead(_ context.Context, alertID string) (*types.Alert, error) {
	alert, ok := f.alerts[alertID]
	if !ok {
		return nil, types.ErrAlertNotFound
	}
	alert.IsRead = true
	return alert, nil
}

func (f *fakeAlerts) MarkAllRead(_ context.Context, ngoID string) error {
	for _, alert := range f.alerts {
		if alert.NGOID == ngoID {
			alert.IsRead = true
		}
	}
	return nil
}

func (f *fakeAlerts) Delete(_ context.Context, alertID string) error {
	if _, ok := f.alerts[alertID]; !ok {
		return types.ErrAlertNotFound
	}
	delete(f.alerts, alertID)
	return nil
}

// testEnv bundles a Service wired to in-memory stores with direct access to
// those stores for seeding and assertions.
type testEnv struct {
	service    *Service
	tokens     *auth.TokenIssuer
	users      *fakeUsers
	ngos       *fakeNGOs
	donations  *fakeDonations
	inventory  *fakeInventory
	volunteers *fakeVolunteers
	alerts     *fakeAlerts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens, err := auth.NewTokenIssuer("handler-test-secret-32-bytes-long!!!", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		tokens:     tokens,
		users:      newFakeUsers(),
		ngos:       newFakeNGOs(),
		donations:  newFakeDonations(),
		inventory:  newFakeInventory(),
		volunteers: newFakeVolunteers(),
		alerts:     newFakeAlerts(),
	}

	env.service = New(
		&types.Config{ServerPort: 0, ReadTimeoutSec: 5, WriteTimeoutSec: 5},
		logger,
		tokens,
		env.users,
		env.ngos,
		env.donations,
		env.inventory,
		env.volunteers,
		env.alerts,
		search.NewEngine(env.ngos),
	)

	return env
}

func (e *testEnv) addUser(t *testing.T, id, email string, role types.UserRole) *types.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &types.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Name:         "Test " + string(role),
		Role:         role,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) addNGO(t *testing.T, id, userID, name string, status types.VerificationStatus) *types.NGO {
	t.Helper()

	ngo := &types.NGO{
		ID:                 id,
		UserID:             userID,
		OrganizationName:   name,
		Description:        "test ngo",
		City:               "Mumbai",
		State:              "Maharashtra",
		Country:            "India",
		Category:           "food",
		VerificationStatus: status,
	}
	require.NoError(t, e.ngos.Create(context.Background(), ngo))
	return ngo
}

// tokenFor issues a real token for the given user id.
func (e *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.tokens.Issue(userID)
	require.NoError(t, err)
	return token
}

// do runs a request through the full middleware and routing stack.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.service.server.Handler.ServeHTTP(rec, req)
	return rec
}

// doRawAuth sends a request with the Authorization header verbatim, empty
// meaning absent.
func (e *testEnv) doRawAuth(t *testing.T, method, path, header string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	e.service.server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
