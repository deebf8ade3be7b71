package student

import (
	"context"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	GetAll(ctx context.Context) ([]Student, error)
	Update(ctx context.Context, id int, name, email, course string) error
	Delete(ctx context.Context, id int) error
	UpdateByOwner(ctx context.Context, ownerUserID int, name, email, course string) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	_, err := r.db.NewInsert().Model(student).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Student, error) {
	var students []Student
	err := r.db.NewSelect().Model(&students).Scan(ctx)
	return students, err
}

// Update touches name, email and course by id. An absent id affects zero rows
// and is not an error.
func (r *repository) Update(ctx context.Context, id int, name, email, course string) error {
	_, err := r.db.NewUpdate().
		Model((*Student)(nil)).
		Set("name = ?", name).
		Set("email = ?", email).
		Set("course = ?", course).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Delete removes the row by id, a no-op when the id is absent.
func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.NewDelete().
		Model((*Student)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// UpdateByOwner updates the record owned by the given user, if one exists.
// Users without a linked student record are a normal case here.
func (r *repository) UpdateByOwner(ctx context.Context, ownerUserID int, name, email, course string) error {
	_, err := r.db.NewUpdate().
		Model((*Student)(nil)).
		Set("name = ?", name).
		Set("email = ?", email).
		Set("course = ?", course).
		Where("user_id = ?", ownerUserID).
		Exec(ctx)
	return err
}
