package student

import "github.com/uptrace/bun"

// Valid status values. Status is a lifecycle field: every student starts as
// active and withdrawn is terminal (no transitions out of it).
const (
	StatusActive    = "active"
	StatusGraduated = "graduated"
	StatusSuspended = "suspended"
	StatusWithdrawn = "withdrawn"
)

// Valid majors.
const (
	MajorCS = "CS"
	MajorSE = "SE"
	MajorIT = "IT"
	MajorCE = "CE"
	MajorDS = "DS"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID          int      `bun:"id,pk,autoincrement" json:"id"`
	StudentCode string   `bun:"student_code,unique,notnull" json:"student_code"`
	FirstName   string   `bun:"first_name,notnull" json:"first_name"`
	LastName    string   `bun:"last_name,notnull" json:"last_name"`
	Email       string   `bun:"email,notnull" json:"email"`
	Major       string   `bun:"major,notnull" json:"major"`
	GPA         *float64 `bun:"gpa" json:"gpa"`
	Status      string   `bun:"status,notnull,default:'active'" json:"status"`
}

type CreateStudentRequest struct {
	StudentCode string   `json:"student_code"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Major       string   `json:"major"`
	GPA         *float64 `json:"gpa,omitempty"`
}

// UpdateStudentRequest carries a partial update. A nil field means "leave
// unchanged"; a non-nil field is applied even when it holds the zero value.
type UpdateStudentRequest struct {
	StudentCode *string  `json:"student_code,omitempty"`
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Major       *string  `json:"major,omitempty"`
	GPA         *float64 `json:"gpa,omitempty"`
}

type UpdateGPARequest struct {
	GPA *float64 `json:"gpa" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListFilter narrows FindAll results. Empty fields are not applied; when both
// are set they combine with AND semantics.
type ListFilter struct {
	Major  string
	Status string
}

// Statistics aggregates a filtered result set. Withdrawn students count
// toward Total but have no dedicated counter.
type Statistics struct {
	Active    int     `json:"active"`
	Graduated int     `json:"graduated"`
	Suspended int     `json:"suspended"`
	Total     int     `json:"total"`
	AvgGPA    float64 `json:"avgGPA"`
}

type StudentList struct {
	Students   []Student  `json:"students"`
	Statistics Statistics `json:"statistics"`
}
