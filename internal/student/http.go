package student

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"student-records/internal/httputil"
	"student-records/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes mounts the admin roster endpoints. The caller wraps them in
// the auth middleware and the admin role gate.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/students", h.GetAllStudents)
	router.Post("/students", h.CreateStudent)
	router.Put("/students/{id}", h.UpdateStudent)
	router.Delete("/students/{id}", h.DeleteStudent)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.GetAllStudents(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list students", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}
	if students == nil {
		students = []Student{}
	}

	h.metrics.RecordStudentsListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, students)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "email", req.Email)
	created, err := h.service.CreateStudent(r.Context(), &Student{
		Name:           req.Name,
		Email:          req.Email,
		Course:         req.Course,
		EnrollmentDate: req.EnrollmentDate,
		UserID:         req.UserID,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create student", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.metrics.RecordStudentCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"msg":       "Student added successfully",
		"studentId": created.ID,
	})
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var req UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Invalid request")
		return
	}

	// An id with no matching row updates nothing; that is still a success.
	h.logger.InfoContext(r.Context(), "updating student", "id", id)
	if err := h.service.UpdateStudent(r.Context(), id, req.Name, req.Email, req.Course); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update student", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.metrics.RecordStudentUpdated(r.Context())

	httputil.RespondWithMsg(w, http.StatusOK, "Student updated successfully")
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithMsg(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to delete student", "error", err)
		httputil.RespondWithMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.metrics.RecordStudentDeleted(r.Context())

	httputil.RespondWithMsg(w, http.StatusOK, "Student deleted successfully")
}
