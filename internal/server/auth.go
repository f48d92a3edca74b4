package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"sevaconnect/internal/auth"
	"sevaconnect/pkg/types"
)

// Default coordinates for NGOs registered without a location (Mumbai). The
// profile can be updated later.
const (
	defaultLat = 19.0760
	defaultLng = 72.8777
)

type registerNGORequest struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Name             string  `json:"name"`
	Phone            *string `json:"phone"`
	OrganizationName string  `json:"organizationName"`
	Description      string  `json:"description"`
	Contact          string  `json:"contact"`
	Category         string  `json:"category"`
	Address          struct {
		Street  string   `json:"street"`
		City    string   `json:"city"`
		State   string   `json:"state"`
		ZipCode string   `json:"zipCode"`
		Country string   `json:"country"`
		Lat     *float64 `json:"lat"`
		Lng     *float64 `json:"lng"`
	} `json:"address"`
}

type registerDonorRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authUser is the user snapshot returned alongside a token. The NGO fields
// are present only for users with the ngo role.
type authUser struct {
	ID                 string                   `json:"id"`
	Email              string                   `json:"email"`
	Name               string                   `json:"name"`
	Phone              *string                  `json:"phone,omitempty"`
	Role               types.UserRole           `json:"role"`
	IsVerified         bool                     `json:"isVerified"`
	NGOID              string                   `json:"ngoId,omitempty"`
	OrganizationName   string                   `json:"organizationName,omitempty"`
	VerificationStatus types.VerificationStatus `json:"verificationStatus,omitempty"`
}

type authResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    authUser `json:"user"`
}

func (s *Service) handleRegisterNGO(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerNGORequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if msg := validateRegistration(req.Email, req.Password, req.Name); msg != "" {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if strings.TrimSpace(req.OrganizationName) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Category) == "" {
		s.respondError(w, http.StatusBadRequest, "Organization name, description and category are required")
		return
	}

	if _, err := s.users.UserByEmail(ctx, req.Email); err == nil {
		s.respondError(w, http.StatusBadRequest, "User with this email already exists")
		return
	} else if !errors.Is(err, types.ErrUserNotFound) {
		s.logger.WithError(err).Error("failed to check existing user")
		s.internalServerError(w)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	user := &types.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         types.UserRoleNGO,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			s.respondError(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		s.logger.WithError(err).Error("failed to create ngo user")
		s.internalServerError(w)
		return
	}

	country := req.Address.Country
	if country == "" {
		country = "India"
	}

	ngo := &types.NGO{
		UserID:           user.ID,
		OrganizationName: req.OrganizationName,
		Description:      req.Description,
		Street:           req.Address.Street,
		City:             req.Address.City,
		State:            req.Address.State,
		ZipCode:          req.Address.ZipCode,
		Country:          country,
		Lat:              defaultLat,
		Lng:              defaultLng,
		Category:         req.Category,
		Contact:          req.Contact,
		Needs:            []string{},
		Tags:             []string{},
	}
	if req.Address.Lat != nil && req.Address.Lng != nil {
		ngo.Lat = *req.Address.Lat
		ngo.Lng = *req.Address.Lng
	}

	if err := s.ngos.Create(ctx, ngo); err != nil {
		s.logger.WithError(err).Error("failed to create ngo profile")
		s.internalServerError(w)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue token")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusCreated, authResponse{
		Message: "NGO registered successfully",
		Token:   token,
		User: authUser{
			ID:                 user.ID,
			Email:              user.Email,
			Name:               user.Name,
			Role:               user.Role,
			NGOID:              ngo.ID,
			OrganizationName:   ngo.OrganizationName,
			VerificationStatus: ngo.VerificationStatus,
		},
	})
}

func (s *Service) handleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerDonorRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if msg := validateRegistration(req.Email, req.Password, req.Name); msg != "" {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := s.users.UserByEmail(ctx, req.Email); err == nil {
		s.respondError(w, http.StatusBadRequest, "User with this email already exists")
		return
	} else if !errors.Is(err, types.ErrUserNotFound) {
		s.logger.WithError(err).Error("failed to check existing user")
		s.internalServerError(w)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	user := &types.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         types.UserRoleDonor,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			s.respondError(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		s.logger.WithError(err).Error("failed to create donor user")
		s.internalServerError(w)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue token")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusCreated, authResponse{
		Message: "Donor registered successfully",
		Token:   token,
		User: authUser{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
	})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.UserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.WithError(err).Error("failed to fetch user for login")
		s.internalServerError(w)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	payload := authUser{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}

	if user.Role == types.UserRoleNGO {
		ngo, err := s.ngos.NGOByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, types.ErrNGONotFound) {
			s.logger.WithError(err).Error("failed to fetch ngo profile for login")
			s.internalServerError(w)
			return
		}
		if ngo != nil {
			payload.NGOID = ngo.ID
			payload.OrganizationName = ngo.OrganizationName
			payload.VerificationStatus = ngo.VerificationStatus
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue token")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    payload,
	})
}

func validateRegistration(email, password, name string) string {
	if email == "" {
		return "Email is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Enter a valid email address"
	}
	if password == "" {
		return "Password is required"
	}
	if strings.TrimSpace(name) == "" {
		return "Name is required"
	}
	return ""
}
