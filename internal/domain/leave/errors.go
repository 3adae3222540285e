package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrEmployeeNotFound     = errors.New("Employee not found")

	ErrInvalidDate      = errors.New("Invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("End date must not be before start date")

	ErrInvalidTransition  = errors.New("Leave request status transition not allowed")
	ErrRequestNotEditable = errors.New("Only pending leave requests can be edited")
)

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsInvalidTransition reports whether err is a rejected status change or a
// rejected edit of a non-pending request.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrRequestNotEditable)
}
