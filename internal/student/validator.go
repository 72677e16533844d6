package student

import (
	"fmt"
	"regexp"
)

var (
	studentCodePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var validMajors = map[string]bool{
	MajorCS: true,
	MajorSE: true,
	MajorIT: true,
	MajorCE: true,
	MajorDS: true,
}

var validStatuses = map[string]bool{
	StatusActive:    true,
	StatusGraduated: true,
	StatusSuspended: true,
	StatusWithdrawn: true,
}

func IsValidID(id int) bool {
	return id > 0
}

func IsValidStudentCode(code string) bool {
	return studentCodePattern.MatchString(code)
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidMajor(major string) bool {
	return validMajors[major]
}

func IsValidStatus(status string) bool {
	return validStatuses[status]
}

func IsValidGPA(gpa float64) bool {
	return gpa >= 0.0 && gpa <= 4.0
}

// FieldError describes a single field-level validation violation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidateStudent checks a full create request and accumulates every
// violation instead of stopping at the first, so the caller can report all
// problems in one round trip.
func ValidateStudent(req CreateStudentRequest) []FieldError {
	var errs []FieldError

	if req.StudentCode == "" {
		errs = append(errs, FieldError{"student_code", "is required"})
	} else if !IsValidStudentCode(req.StudentCode) {
		errs = append(errs, FieldError{"student_code", "must be exactly 10 digits"})
	}
	if req.FirstName == "" {
		errs = append(errs, FieldError{"first_name", "is required"})
	}
	if req.LastName == "" {
		errs = append(errs, FieldError{"last_name", "is required"})
	}
	if req.Email == "" {
		errs = append(errs, FieldError{"email", "is required"})
	} else if !IsValidEmail(req.Email) {
		errs = append(errs, FieldError{"email", "must be a valid email address"})
	}
	if req.Major == "" {
		errs = append(errs, FieldError{"major", "is required"})
	} else if !IsValidMajor(req.Major) {
		errs = append(errs, FieldError{"major", "must be one of CS, SE, IT, CE, DS"})
	}
	if req.GPA != nil && !IsValidGPA(*req.GPA) {
		errs = append(errs, FieldError{"gpa", "must be between 0.0 and 4.0"})
	}

	return errs
}

// ValidateStudentUpdate checks a partial update request. Only fields present
// in the request (non-nil) are validated.
func ValidateStudentUpdate(req UpdateStudentRequest) []FieldError {
	var errs []FieldError

	if req.StudentCode != nil && !IsValidStudentCode(*req.StudentCode) {
		errs = append(errs, FieldError{"student_code", "must be exactly 10 digits"})
	}
	if req.FirstName != nil && *req.FirstName == "" {
		errs = append(errs, FieldError{"first_name", "cannot be empty"})
	}
	if req.LastName != nil && *req.LastName == "" {
		errs = append(errs, FieldError{"last_name", "cannot be empty"})
	}
	if req.Email != nil && !IsValidEmail(*req.Email) {
		errs = append(errs, FieldError{"email", "must be a valid email address"})
	}
	if req.Major != nil && !IsValidMajor(*req.Major) {
		errs = append(errs, FieldError{"major", "must be one of CS, SE, IT, CE, DS"})
	}
	if req.GPA != nil && !IsValidGPA(*req.GPA) {
		errs = append(errs, FieldError{"gpa", "must be between 0.0 and 4.0"})
	}

	return errs
}
