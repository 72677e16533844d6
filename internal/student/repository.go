package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

type Repository interface {
	FindAll(ctx context.Context, filter ListFilter) ([]Student, error)
	FindByID(ctx context.Context, id int) (*Student, error)
	Create(ctx context.Context, student *Student) (*Student, error)
	Update(ctx context.Context, id int, req UpdateStudentRequest) (*Student, error)
	UpdateGPA(ctx context.Context, id int, gpa float64) (*Student, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Student, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Student, error) {
	var students []Student
	query := r.db.NewSelect().Model(&students)
	if filter.Major != "" {
		query = query.Where("major = ?", filter.Major)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, &StorageError{Op: "select students", Err: err}
	}
	return students, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Student, error) {
	student := new(Student)
	err := r.db.NewSelect().Model(student).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &StorageError{Op: "select student", Err: err}
	}
	return student, nil
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	if student.Status == "" {
		student.Status = StatusActive
	}
	if _, err := r.db.NewInsert().Model(student).Returning("*").Exec(ctx); err != nil {
		return nil, &StorageError{Op: "insert student", Err: err}
	}
	return student, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateStudentRequest) (*Student, error) {
	student := &Student{ID: id}

	var columns []string
	if req.StudentCode != nil {
		student.StudentCode = *req.StudentCode
		columns = append(columns, "student_code")
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
		columns = append(columns, "first_name")
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
		columns = append(columns, "last_name")
	}
	if req.Email != nil {
		student.Email = *req.Email
		columns = append(columns, "email")
	}
	if req.Major != nil {
		student.Major = *req.Major
		columns = append(columns, "major")
	}
	if req.GPA != nil {
		student.GPA = req.GPA
		columns = append(columns, "gpa")
	}

	// Nothing to merge: return the current record unchanged.
	if len(columns) == 0 {
		return r.FindByID(ctx, id)
	}

	result, err := r.db.NewUpdate().
		Model(student).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, &StorageError{Op: "update student", Err: err}
	}
	if err := checkAffected(result, id); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *repository) UpdateGPA(ctx context.Context, id int, gpa float64) (*Student, error) {
	result, err := r.db.NewUpdate().
		Model((*Student)(nil)).
		Set("gpa = ?", gpa).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, &StorageError{Op: "update gpa", Err: err}
	}
	if err := checkAffected(result, id); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) (*Student, error) {
	result, err := r.db.NewUpdate().
		Model((*Student)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, &StorageError{Op: "update status", Err: err}
	}
	if err := checkAffected(result, id); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	student := &Student{ID: id}
	result, err := r.db.NewDelete().Model(student).WherePK().Exec(ctx)
	if err != nil {
		return &StorageError{Op: "delete student", Err: err}
	}
	return checkAffected(result, id)
}

// checkAffected turns a zero-row write into NotFoundError. Covers the benign
// race where the row vanished between the service's existence check and the
// write.
func checkAffected(result sql.Result, id int) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return &StorageError{Op: "rows affected", Err: err}
	}
	if rowsAffected == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}
