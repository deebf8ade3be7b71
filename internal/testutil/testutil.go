package testutil

import (
	"context"
	"testing"
	"time"

	"student-records/internal/auth"
	"student-records/internal/db"
	"student-records/internal/student"
	"student-records/internal/user"

	"github.com/uptrace/bun"
)

// Secret is the signing secret used by all tests.
const Secret = "test-secret-key-for-testing"

// OpenTestDB opens an in-memory SQLite database with the users and students
// tables migrated. Give each test a distinct name so state is not shared.
func OpenTestDB(t *testing.T, name string) *bun.DB {
	t.Helper()
	// Shared cache keeps the database alive across pooled connections.
	d := db.NewSQLite("file:" + name + "?mode=memory&cache=shared")
	if err := db.RunMigrations(context.Background(), d, (*user.User)(nil), (*student.Student)(nil)); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// Token returns a signed access token for the given identity, valid for an
// hour.
func Token(t *testing.T, userID int, name, role string) string {
	t.Helper()
	token, err := auth.NewAccessToken(Secret, time.Hour, userID, name, role)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
