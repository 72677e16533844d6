package student

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or disallowed input. It is always
// caller-fixable. Field and Value are set for single-field failures; bulk
// validation failures carry a joined message instead.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError reports that the referenced student does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("student %d not found", e.ID)
}

// ConflictError reports an operation that violates a business-state rule,
// such as deleting an active student or changing a withdrawn one.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func joinFieldErrors(errs []FieldError) *ValidationError {
	msgs := make([]string, len(errs))
	for i, fe := range errs {
		msgs[i] = fe.Error()
	}
	return &ValidationError{Message: strings.Join(msgs, ", ")}
}
