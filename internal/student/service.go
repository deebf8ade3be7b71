package student

import (
	"context"
	"log/slog"

	"student-records/internal/messaging"
)

type Service interface {
	CreateStudent(ctx context.Context, student *Student) (*Student, error)
	GetAllStudents(ctx context.Context) ([]Student, error)
	UpdateStudent(ctx context.Context, id int, name, email, course string) error
	DeleteStudent(ctx context.Context, id int) error
	UpdateStudentByOwner(ctx context.Context, ownerUserID int, name, email, course string) error
}

type service struct {
	repo     Repository
	producer messaging.Producer
	logger   *slog.Logger
}

// NewService wires the repository and an optional event producer. A nil
// producer disables event publishing.
func NewService(repo Repository, producer messaging.Producer, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

func (s *service) CreateStudent(ctx context.Context, student *Student) (*Student, error) {
	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, messaging.StudentEvent{Action: "created", StudentID: created.ID, Email: created.Email})
	return created, nil
}

func (s *service) GetAllStudents(ctx context.Context) ([]Student, error) {
	return s.repo.GetAll(ctx)
}

// UpdateStudent writes through to the store. An id with no matching row is a
// silent no-op, not an error.
func (s *service) UpdateStudent(ctx context.Context, id int, name, email, course string) error {
	if err := s.repo.Update(ctx, id, name, email, course); err != nil {
		return err
	}
	s.publish(ctx, messaging.StudentEvent{Action: "updated", StudentID: id, Email: email})
	return nil
}

func (s *service) DeleteStudent(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, messaging.StudentEvent{Action: "deleted", StudentID: id})
	return nil
}

func (s *service) UpdateStudentByOwner(ctx context.Context, ownerUserID int, name, email, course string) error {
	if err := s.repo.UpdateByOwner(ctx, ownerUserID, name, email, course); err != nil {
		return err
	}
	s.publish(ctx, messaging.StudentEvent{Action: "profile_updated", Email: email})
	return nil
}

// publish is best-effort: a broker outage never fails the request.
func (s *service) publish(ctx context.Context, event messaging.StudentEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish student event", "action", event.Action, "error", err)
	}
}
