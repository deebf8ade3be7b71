package profile_test

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
	"student-records/internal/metrics"
	"student-records/internal/profile"
	"student-records/internal/student"
	"student-records/internal/testutil"
	"student-records/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHandler(t *testing.T) {
	database := testutil.OpenTestDB(t, "profile_handler_test")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	userRepo := user.NewRepository(database)
	studentRepo := student.NewRepository(database)
	studentService := student.NewService(studentRepo, nil, logger)
	service := profile.NewService(userRepo, studentService)
	handler := profile.NewHandler(service, logger, metrics.NewMock())

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(testutil.Secret, logger))
		handler.RegisterRoutes(r)
	})

	ctx := context.Background()

	// A user with a linked student record, and one without.
	linked, err := userRepo.Create(ctx, &user.User{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "hash",
		Role:     user.RoleStudent,
	})
	require.NoError(t, err)

	unlinked, err := userRepo.Create(ctx, &user.User{
		Name:     "Cal",
		Email:    "cal@x.com",
		Password: "hash",
		Role:     user.RoleStudent,
	})
	require.NoError(t, err)

	_, err = studentRepo.Create(ctx, &student.Student{
		Name:           "Ann",
		Email:          "ann@x.com",
		Course:         "CS",
		EnrollmentDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:         &linked.ID,
	})
	require.NoError(t, err)

	t.Run("GetProfile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(auth.TokenHeader, testutil.Token(t, linked.ID, "Ann", "student"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response user.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, linked.ID, response.ID)
		assert.Equal(t, "Ann", response.Name)
		assert.Equal(t, "ann@x.com", response.Email)
		assert.Equal(t, "student", response.Role)

		// Password hash must never appear in the body.
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("GetProfile_Unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UpdateProfile_WritesBothRows", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"name":   "Ann Lee",
			"email":  "ann.lee@x.com",
			"course": "Math",
		})
		req := httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(auth.TokenHeader, testutil.Token(t, linked.ID, "Ann", "student"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"Profile updated successfully"}`, w.Body.String())

		updatedUser, err := userRepo.GetByID(ctx, linked.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann Lee", updatedUser.Name)
		assert.Equal(t, "ann.lee@x.com", updatedUser.Email)

		students, err := studentRepo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, "Ann Lee", students[0].Name)
		assert.Equal(t, "ann.lee@x.com", students[0].Email)
		assert.Equal(t, "Math", students[0].Course)
	})

	t.Run("UpdateProfile_NoStudentRow_Noop", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"name":   "Cal Ray",
			"email":  "cal.ray@x.com",
			"course": "Art",
		})
		req := httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(auth.TokenHeader, testutil.Token(t, unlinked.ID, "Cal", "student"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// The user row updates; the absent student row is silently skipped.
		assert.Equal(t, http.StatusOK, w.Code)

		updatedUser, err := userRepo.GetByID(ctx, unlinked.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cal Ray", updatedUser.Name)

		students, err := studentRepo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.NotEqual(t, "Cal Ray", students[0].Name)
	})

	t.Run("UpdateProfile_MissingFields", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"course": "Math"})
		req := httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(auth.TokenHeader, testutil.Token(t, linked.ID, "Ann", "student"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
