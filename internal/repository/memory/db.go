package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

// DB is a process-local store shared by the memory repositories. It is safe
// for concurrent use; every statement sees a consistent snapshot.
type DB struct {
	mu        sync.RWMutex
	requests  map[string]leave.LeaveRequest
	employees map[string]leave.Employee
}

func NewDB() *DB {
	return &DB{
		requests:  make(map[string]leave.LeaveRequest),
		employees: make(map[string]leave.Employee),
	}
}

// SeedEmployees inserts or replaces directory entries.
func (db *DB) SeedEmployees(employees ...leave.Employee) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, emp := range employees {
		db.employees[emp.ID] = emp
	}
}

func cloneRequest(r leave.LeaveRequest) leave.LeaveRequest {
	r.Reason = cloneString(r.Reason)
	r.ApprovedBy = cloneString(r.ApprovedBy)
	r.ApprovedAt = cloneTime(r.ApprovedAt)
	r.RejectedBy = cloneString(r.RejectedBy)
	r.RejectedAt = cloneTime(r.RejectedAt)
	r.RejectionReason = cloneString(r.RejectionReason)
	r.CanceledBy = cloneString(r.CanceledBy)
	r.CanceledAt = cloneTime(r.CanceledAt)
	r.EmployeeName = nil
	r.Department = nil
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
