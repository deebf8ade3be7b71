package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"student-records/internal/auth"
	"student-records/internal/httputil"
	"student-records/internal/metrics"
	"student-records/internal/user"

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

// RegisterRoutes mounts the self-profile endpoints inside the authenticated
// group. No role gate: both admins and students manage their own profile.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/me", h.GetProfile)
	router.Put("/me", h.UpdateProfile)
}

// GetProfile returns the authenticated user's stored public fields
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		httputil.RespondWithMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	u, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// The account was removed after the token was issued.
			httputil.RespondWithMsg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load profile", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, u)
}

// UpdateProfile updates the user row and, when one exists, the owned student
// record
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		httputil.RespondWithMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Please enter all fields")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.WarnContext(r.Context(), "profile validation failed", "error", err)
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Please enter all fields")
		return
	}

	h.logger.InfoContext(r.Context(), "updating profile", "user_id", claims.UserID)
	if err := h.service.Update(r.Context(), claims.UserID, req); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update profile", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.metrics.RecordProfileUpdated(r.Context())

	httputil.RespondWithMsg(w, http.StatusOK, "Profile updated successfully")
}
