package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"student-records/internal/httputil"
	"student-records/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterRoutes mounts the public endpoints. WhoAmI is registered separately
// inside the authenticated group.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/signup", h.Signup)
	router.Post("/auth/login", h.Login)
}

// Signup creates a new user account
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Please enter all fields")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.WarnContext(r.Context(), "signup validation failed", "error", err)
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Please enter all fields")
		return
	}

	created, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			httputil.RespondWithMsg(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "signup failed", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "email", created.Email, "role", created.Role)
	h.metrics.RecordSignup(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, SignupResponse{
		Msg:    "User registered successfully",
		UserID: created.ID,
	})
}

// Login verifies credentials and returns an access token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, ErrInvalidCredentials.Error())
		return
	}

	// A missing field can never match a stored credential, so it gets the
	// same response as a wrong password.
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, ErrInvalidCredentials.Error())
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httputil.RespondWithMsg(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "login failed", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "email", req.Email)
	h.metrics.RecordLogin(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// WhoAmI echoes the verified claims from the request context
func (h *Handler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		httputil.RespondWithMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, WhoAmIResponse{
		User: ClaimsInfo{
			ID:   claims.UserID,
			Name: claims.Name,
			Role: claims.Role,
		},
	})
}
