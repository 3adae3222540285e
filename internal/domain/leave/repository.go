package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests storage
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// Update replaces the stored row only while its status still equals
	// expected. A status mismatch yields ErrInvalidTransition.
	Update(ctx context.Context, request LeaveRequest, expected LeaveRequestStatus) error
	Delete(ctx context.Context, id string) error
}

// EmployeeRepository - read access to the employee directory
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
