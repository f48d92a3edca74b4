package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var queryDecoder = form.NewDecoder()

// UserStore is the slice of the user repository the API needs.
type UserStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	Create(ctx context.Context, user *types.User) error
	CountByRole(ctx context.Context, role types.UserRole) (int, error)
}

type NGOStore interface {
	NGO(ctx context.Context, ngoID string) (*types.NGO, error)
	NGOByUserID(ctx context.Context, userID string) (*types.NGO, error)
	VerifiedNGOs(ctx context.Context, category, city, state string) ([]*types.NGO, error)
	NGOsByStatus(ctx context.Context, status types.VerificationStatus) ([]*types.NGO, error)
	Create(ctx context.Context, ngo *types.NGO) error
	Update(ctx context.Context, ngoID string, ngo *types.NGO) error
	AddNeed(ctx context.Context, ngoID, need string) ([]string, error)
	SetVerificationStatus(ctx context.Context, ngoID string, status types.VerificationStatus, reason *string) (*types.NGO, error)
	CountByStatus(ctx context.Context, status types.VerificationStatus) (int, error)
}

type DonationStore interface {
	Donation(ctx context.Context, donationID string) (*types.Donation, error)
	DonationsByDonor(ctx context.Context, donorID string) ([]*types.Donation, error)
	DonationsByNGO(ctx context.Context, ngoID string) ([]*types.Donation, error)
	RecentDonations(ctx context.Context, limit uint64) ([]*types.Donation, error)
	Create(ctx context.Context, donation *types.Donation) error
	SetStatus(ctx context.Context, donationID string, status types.DonationStatus) (*types.Donation, error)
	Count(ctx context.Context) (int, error)
}

type InventoryStore interface {
	Item(ctx context.Context, itemID string) (*types.InventoryItem, error)
	ItemsByNGO(ctx context.Context, ngoID string) ([]*types.InventoryItem, error)
	LowStockItems(ctx context.Context, ngoID string) ([]*types.InventoryItem, error)
	Create(ctx context.Context, item *types.InventoryItem) error
	Update(ctx context.Context, itemID string, item *types.InventoryItem) error
	Delete(ctx context.Context, itemID string) error
}

type VolunteerStore interface {
	Application(ctx context.Context, applicationID string) (*types.VolunteerApplication, error)
	ApplicationsByDonor(ctx context.Context, donorID string) ([]*types.VolunteerApplication, error)
	ApplicationsByNGO(ctx context.Context, ngoID string) ([]*types.VolunteerApplication, error)
	Create(ctx context.Context, application *types.VolunteerApplication) error
	SetStatus(ctx context.Context, applicationID string, status types.ApplicationStatus) (*types.VolunteerApplication, error)
}

type AlertStore interface {
	AlertsByNGO(ctx context.Context, ngoID string) ([]*types.Alert, error)
	UnreadCount(ctx context.Context, ngoID string) (int, error)
	Create(ctx context.Context, alert *types.Alert) error
	MarkRead(ctx context.Context, alertID string) (*types.Alert, error)
	MarkAllRead(ctx context.Context, ngoID string) error
	Delete(ctx context.Context, alertID string) error
}

// Searcher is the NGO search/filter engine surface.
type Searcher interface {
	Search(ctx context.Context, filters *types.SearchFilters) (*types.SearchResponse, error)
	Facets(ctx context.Context) (*types.FilterFacets, error)
}

// Tokens issues and verifies the bearer tokens the API hands out at login.
type Tokens interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config
	tokens Tokens

	users      UserStore
	ngos       NGOStore
	donations  DonationStore
	inventory  InventoryStore
	volunteers VolunteerStore
	alerts     AlertStore
	searcher   Searcher

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	tokens Tokens,
	users UserStore,
	ngos NGOStore,
	donations DonationStore,
	inventory InventoryStore,
	volunteers VolunteerStore,
	alerts AlertStore,
	searcher Searcher,
) *Service {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,
		tokens: tokens,

		users:      users,
		ngos:       ngos,
		donations:  donations,
		inventory:  inventory,
		volunteers: volunteers,
		alerts:     alerts,
		searcher:   searcher,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/health", s.handleHealth, http.MethodGet)

	r.HandleFunc("/auth/ngo-register", s.handleRegisterNGO, http.MethodPost)
	r.HandleFunc("/auth/donor-register", s.handleRegisterDonor, http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin, http.MethodPost)

	r.HandleFunc("/ngos", s.handleListNGOs, http.MethodGet)
	r.HandleFunc("/ngos/:ngoID", s.handleGetNGO, http.MethodGet)

	r.HandleFunc("/search/ngos", s.handleSearchNGOs, http.MethodGet)
	r.HandleFunc("/search/filters", s.handleSearchFilters, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/ngos/:ngoID", s.handleUpdateNGO, http.MethodPut)
		r.HandleFunc("/ngos/:ngoID/needs", s.handleAddNGONeed, http.MethodPost)

		r.HandleFunc("/donations", s.handleCreateDonation, http.MethodPost)
		r.HandleFunc("/donations/donor/:donorID", s.handleDonorDonations, http.MethodGet)
		r.HandleFunc("/donations/ngo/:ngoID", s.handleNGODonations, http.MethodGet)
		r.HandleFunc("/donations/:donationID/status", s.handleUpdateDonationStatus, http.MethodPut)

		r.HandleFunc("/inventory", s.handleAddInventoryItem, http.MethodPost)
		r.HandleFunc("/inventory/ngo/:ngoID", s.handleNGOInventory, http.MethodGet)
		r.HandleFunc("/inventory/ngo/:ngoID/low-stock", s.handleLowStockItems, http.MethodGet)
		r.HandleFunc("/inventory/:itemID", s.handleUpdateInventoryItem, http.MethodPut)
		r.HandleFunc("/inventory/:itemID", s.handleDeleteInventoryItem, http.MethodDelete)

		r.HandleFunc("/volunteers/apply", s.handleVolunteerApply, http.MethodPost)
		r.HandleFunc("/volunteers/donor/:donorID", s.handleDonorApplications, http.MethodGet)
		r.HandleFunc("/volunteers/ngo/:ngoID", s.handleNGOApplications, http.MethodGet)
		r.HandleFunc("/volunteers/:applicationID/status", s.handleUpdateApplicationStatus, http.MethodPut)

		r.HandleFunc("/alerts/ngo/:ngoID", s.handleNGOAlerts, http.MethodGet)
		r.HandleFunc("/alerts/:alertID/read", s.handleMarkAlertRead, http.MethodPut)
		r.HandleFunc("/alerts/ngo/:ngoID/read-all", s.handleMarkAllAlertsRead, http.MethodPut)
		r.HandleFunc("/alerts/:alertID", s.handleDeleteAlert, http.MethodDelete)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAdmin)

			r.HandleFunc("/admin/ngos/pending", s.handlePendingNGOs, http.MethodGet)
			r.HandleFunc("/admin/ngos/:ngoID/verify", s.handleVerifyNGO, http.MethodPut)
			r.HandleFunc("/admin/ngos/:ngoID/reject", s.handleRejectNGO, http.MethodPut)
			r.HandleFunc("/admin/dashboard/stats", s.handleDashboardStats, http.MethodGet)
		})
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
