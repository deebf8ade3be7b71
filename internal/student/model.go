package student

import (
	"time"

	"github.com/uptrace/bun"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID             int       `bun:"id,pk,autoincrement" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Email          string    `bun:"email,notnull" json:"email"`
	Course         string    `bun:"course,notnull" json:"course"`
	EnrollmentDate time.Time `bun:"enrollment_date,notnull" json:"enrollmentDate"`
	// UserID links the record to the user that owns it. Most records created
	// by an admin have no owner.
	UserID *int `bun:"user_id" json:"userId,omitempty"`
}

type CreateStudentRequest struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Course         string    `json:"course"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	UserID         *int      `json:"userId,omitempty"`
}

type UpdateStudentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
}
