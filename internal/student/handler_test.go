package student_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"student-records/internal/auth"
	"student-records/internal/messaging"
	"student-records/internal/metrics"
	"student-records/internal/student"
	"student-records/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProducer records published events in memory.
type fakeProducer struct {
	events []messaging.StudentEvent
}

func (p *fakeProducer) Publish(ctx context.Context, value interface{}) error {
	p.events = append(p.events, value.(messaging.StudentEvent))
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func TestStudentHandler(t *testing.T) {
	database := testutil.OpenTestDB(t, "student_handler_test")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	producer := &fakeProducer{}
	repo := student.NewRepository(database)
	service := student.NewService(repo, producer, logger)
	handler := student.NewHandler(service, logger, metrics.NewMock())

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(testutil.Secret, logger))
		r.Use(auth.RequireRole("admin", logger))
		handler.RegisterRoutes(r)
	})

	adminToken := testutil.Token(t, 1, "Root", "admin")

	do := func(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
		t.Helper()
		var body *bytes.Reader
		if payload != nil {
			b, _ := json.Marshal(payload)
			body = bytes.NewReader(b)
		} else {
			body = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set(auth.TokenHeader, token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("NonAdmin_Forbidden", func(t *testing.T) {
		studentToken := testutil.Token(t, 2, "Ann", "student")
		w := do(t, http.MethodGet, "/students", studentToken, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"msg":"Access denied: You do not have the required role."}`, w.Body.String())
	})

	t.Run("Unauthenticated_Rejected", func(t *testing.T) {
		w := do(t, http.MethodGet, "/students", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("CRUD_RoundTrip", func(t *testing.T) {
		// Create
		enrolled := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		w := do(t, http.MethodPost, "/students", adminToken, map[string]interface{}{
			"name":           "Bo",
			"email":          "bo@x.com",
			"course":         "CS",
			"enrollmentDate": enrolled.Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			Msg       string `json:"msg"`
			StudentID int    `json:"studentId"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, "Student added successfully", created.Msg)
		require.NotZero(t, created.StudentID)

		// List includes exactly one matching row
		w = do(t, http.MethodGet, "/students", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listed []student.Student
		require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
		require.Len(t, listed, 1)
		assert.Equal(t, created.StudentID, listed[0].ID)
		assert.Equal(t, "Bo", listed[0].Name)
		assert.Equal(t, "bo@x.com", listed[0].Email)
		assert.Equal(t, "CS", listed[0].Course)
		assert.True(t, enrolled.Equal(listed[0].EnrollmentDate))
		assert.Nil(t, listed[0].UserID)

		// Update
		w = do(t, http.MethodPut, "/students/1", adminToken, map[string]interface{}{
			"name":   "Bo",
			"email":  "bo@x.com",
			"course": "Math",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"Student updated successfully"}`, w.Body.String())

		w = do(t, http.MethodGet, "/students", adminToken, nil)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "Math", listed[0].Course)

		// Delete
		w = do(t, http.MethodDelete, "/students/1", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"Student deleted successfully"}`, w.Body.String())

		w = do(t, http.MethodGet, "/students", adminToken, nil)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
		assert.Empty(t, listed)

		// One event per write
		require.Len(t, producer.events, 3)
		assert.Equal(t, "created", producer.events[0].Action)
		assert.Equal(t, "updated", producer.events[1].Action)
		assert.Equal(t, "deleted", producer.events[2].Action)
	})

	t.Run("Update_AbsentID_SilentNoop", func(t *testing.T) {
		w := do(t, http.MethodPut, "/students/9999", adminToken, map[string]interface{}{
			"name":   "Ghost",
			"email":  "ghost@x.com",
			"course": "None",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"Student updated successfully"}`, w.Body.String())
	})

	t.Run("Delete_AbsentID_SilentNoop", func(t *testing.T) {
		w := do(t, http.MethodDelete, "/students/9999", adminToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"Student deleted successfully"}`, w.Body.String())
	})
}
