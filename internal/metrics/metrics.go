package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	usersSignedUp      metric.Int64Counter
	userLogins         metric.Int64Counter
	studentsCreated    metric.Int64Counter
	studentsUpdated    metric.Int64Counter
	studentsDeleted    metric.Int64Counter
	studentsListViewed metric.Int64Counter
	profilesUpdated    metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.usersSignedUp, err = meter.Int64Counter(
		"student_records.users.signed_up",
		metric.WithDescription("Total number of user signups"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	m.userLogins, err = meter.Int64Counter(
		"student_records.users.logged_in",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsCreated, err = meter.Int64Counter(
		"student_records.students.created",
		metric.WithDescription("Total number of student records created"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsUpdated, err = meter.Int64Counter(
		"student_records.students.updated",
		metric.WithDescription("Total number of student record updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsDeleted, err = meter.Int64Counter(
		"student_records.students.deleted",
		metric.WithDescription("Total number of student records deleted"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsListViewed, err = meter.Int64Counter(
		"student_records.students.list_viewed",
		metric.WithDescription("Total number of times the student list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.profilesUpdated, err = meter.Int64Counter(
		"student_records.profiles.updated",
		metric.WithDescription("Total number of self-profile updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordSignup(ctx context.Context) {
	if m != nil && m.usersSignedUp != nil {
		m.usersSignedUp.Add(ctx, 1)
	}
}

func (m *Metrics) RecordLogin(ctx context.Context) {
	if m != nil && m.userLogins != nil {
		m.userLogins.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentCreated(ctx context.Context) {
	if m != nil && m.studentsCreated != nil {
		m.studentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentUpdated(ctx context.Context) {
	if m != nil && m.studentsUpdated != nil {
		m.studentsUpdated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentDeleted(ctx context.Context) {
	if m != nil && m.studentsDeleted != nil {
		m.studentsDeleted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentsListViewed(ctx context.Context) {
	if m != nil && m.studentsListViewed != nil {
		m.studentsListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordProfileUpdated(ctx context.Context) {
	if m != nil && m.profilesUpdated != nil {
		m.profilesUpdated.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
