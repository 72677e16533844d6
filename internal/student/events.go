package student

import "context"

// Lifecycle event types published on successful writes.
const (
	EventStudentCreated = "student.created"
	EventStatusChanged  = "student.status_changed"
	EventStudentDeleted = "student.deleted"
)

type Event struct {
	Type        string `json:"type"`
	StudentID   int    `json:"student_id"`
	StudentCode string `json:"student_code,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Publisher delivers lifecycle events to a message broker (NATS/Kafka).
// Publishing is best-effort: the service logs failures and never surfaces
// them to the caller.
type Publisher interface {
	Publish(ctx context.Context, value interface{}) error
	Close() error
}
