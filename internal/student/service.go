package student

import (
	"context"
	"log/slog"
)

type Service interface {
	GetAllStudents(ctx context.Context, filter ListFilter) (*StudentList, error)
	GetStudentByID(ctx context.Context, id int) (*Student, error)
	CreateStudent(ctx context.Context, req CreateStudentRequest) (*Student, error)
	UpdateStudent(ctx context.Context, id int, req UpdateStudentRequest) (*Student, error)
	UpdateGPA(ctx context.Context, id int, gpa float64) (*Student, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Student, error)
	DeleteStudent(ctx context.Context, id int) error
}

type service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
}

// NewService builds the student service. publisher may be nil, in which case
// lifecycle events are not emitted.
func NewService(repo Repository, publisher Publisher, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) GetAllStudents(ctx context.Context, filter ListFilter) (*StudentList, error) {
	if filter.Major != "" && !IsValidMajor(filter.Major) {
		return nil, &ValidationError{Field: "major", Value: filter.Major, Message: "invalid major"}
	}
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, &ValidationError{Field: "status", Value: filter.Status, Message: "invalid status"}
	}

	students, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []Student{}
	}

	return &StudentList{
		Students:   students,
		Statistics: computeStatistics(students),
	}, nil
}

func (s *service) GetStudentByID(ctx context.Context, id int) (*Student, error) {
	if !IsValidID(id) {
		return nil, &ValidationError{Field: "id", Value: id, Message: "must be a positive integer"}
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateStudent(ctx context.Context, req CreateStudentRequest) (*Student, error) {
	if errs := ValidateStudent(req); len(errs) > 0 {
		return nil, joinFieldErrors(errs)
	}

	// Re-check the formats independently so a gap in the bulk validator
	// cannot let a malformed record through.
	if !IsValidStudentCode(req.StudentCode) {
		return nil, &ValidationError{Field: "student_code", Value: req.StudentCode, Message: "invalid student code format"}
	}
	if !IsValidEmail(req.Email) {
		return nil, &ValidationError{Field: "email", Value: req.Email, Message: "invalid email format"}
	}
	if !IsValidMajor(req.Major) {
		return nil, &ValidationError{Field: "major", Value: req.Major, Message: "invalid major"}
	}

	created, err := s.repo.Create(ctx, &Student{
		StudentCode: req.StudentCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Major:       req.Major,
		GPA:         req.GPA,
		Status:      StatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventStudentCreated, StudentID: created.ID, StudentCode: created.StudentCode})
	return created, nil
}

func (s *service) UpdateStudent(ctx context.Context, id int, req UpdateStudentRequest) (*Student, error) {
	if !IsValidID(id) {
		return nil, &ValidationError{Field: "id", Value: id, Message: "must be a positive integer"}
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if errs := ValidateStudentUpdate(req); len(errs) > 0 {
		return nil, joinFieldErrors(errs)
	}
	if req.StudentCode != nil && !IsValidStudentCode(*req.StudentCode) {
		return nil, &ValidationError{Field: "student_code", Value: *req.StudentCode, Message: "invalid student code format"}
	}
	if req.Email != nil && !IsValidEmail(*req.Email) {
		return nil, &ValidationError{Field: "email", Value: *req.Email, Message: "invalid email format"}
	}
	if req.Major != nil && !IsValidMajor(*req.Major) {
		return nil, &ValidationError{Field: "major", Value: *req.Major, Message: "invalid major"}
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) UpdateGPA(ctx context.Context, id int, gpa float64) (*Student, error) {
	if !IsValidGPA(gpa) {
		return nil, &ValidationError{Field: "gpa", Value: gpa, Message: "must be a number between 0.0 and 4.0"}
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateGPA(ctx, id, gpa)
}

func (s *service) UpdateStatus(ctx context.Context, id int, status string) (*Student, error) {
	if !IsValidStatus(status) {
		return nil, &ValidationError{Field: "status", Value: status, Message: "invalid status"}
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Withdrawn is terminal. Every other transition is allowed, including a
	// no-op to the same value.
	if existing.Status == StatusWithdrawn {
		return nil, &ConflictError{Message: "cannot change status of withdrawn student"}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventStatusChanged, StudentID: updated.ID, StudentCode: updated.StudentCode, Status: updated.Status})
	return updated, nil
}

func (s *service) DeleteStudent(ctx context.Context, id int) error {
	if !IsValidID(id) {
		return &ValidationError{Field: "id", Value: id, Message: "must be a positive integer"}
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Active students must be transitioned out of active before removal.
	if existing.Status == StatusActive {
		return &ConflictError{Message: "cannot delete active student"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, Event{Type: EventStudentDeleted, StudentID: id, StudentCode: existing.StudentCode})
	return nil
}

func (s *service) publish(ctx context.Context, event Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish student event",
			"type", event.Type, "student_id", event.StudentID, "error", err)
	}
}

// computeStatistics aggregates over an already-filtered result set. A nil GPA
// counts as 0 toward the sum; the average over an empty set is 0.
func computeStatistics(students []Student) Statistics {
	stats := Statistics{Total: len(students)}

	var sum float64
	for _, st := range students {
		switch st.Status {
		case StatusActive:
			stats.Active++
		case StatusGraduated:
			stats.Graduated++
		case StatusSuspended:
			stats.Suspended++
		}
		if st.GPA != nil {
			sum += *st.GPA
		}
	}
	if stats.Total > 0 {
		stats.AvgGPA = sum / float64(stats.Total)
	}
	return stats
}
