package profile

import (
	"context"

	"student-records/internal/student"
	"student-records/internal/user"
)

type Service struct {
	userRepo   user.Repository
	studentSvc student.Service
}

func NewService(userRepo user.Repository, studentSvc student.Service) *Service {
	return &Service{
		userRepo:   userRepo,
		studentSvc: studentSvc,
	}
}

// Get returns the stored user for the authenticated id.
func (s *Service) Get(ctx context.Context, userID int) (*user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Update writes the user row, then the owned student row if one exists.
// The two writes are not wrapped in a transaction: a failure between them can
// leave the rows inconsistent. Accepted behavior, kept from the original
// contract rather than silently strengthened.
func (s *Service) Update(ctx context.Context, userID int, req UpdateProfileRequest) error {
	if err := s.userRepo.Update(ctx, userID, req.Name, req.Email); err != nil {
		return err
	}
	return s.studentSvc.UpdateStudentByOwner(ctx, userID, req.Name, req.Email, req.Course)
}
