package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	db *DB
}

func NewLeaveRequestRepository(db *DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return leave.LeaveRequest{}, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.requests[request.ID]; exists {
		return leave.LeaveRequest{}, fmt.Errorf("leave request with id %s already exists", request.ID)
	}
	r.db.requests[request.ID] = cloneRequest(request)

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return leave.LeaveRequest{}, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	stored, ok := r.db.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withEmployee(stored), nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	requests := make([]leave.LeaveRequest, 0)
	for _, stored := range r.db.requests {
		if filter.EmployeeID != "" && stored.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		if filter.Type != "" && stored.Type != filter.Type {
			continue
		}
		requests = append(requests, r.withEmployee(stored))
	}

	// Same order as the PostgreSQL repository.
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].StartDate.Equal(requests[j].StartDate) {
			return requests[i].StartDate.After(requests[j].StartDate)
		}
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID < requests[j].ID
	})

	return requests, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest, expected leave.LeaveRequestStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.requests[request.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if stored.Status != expected {
		return fmt.Errorf("%w: status is %s, expected %s", leave.ErrInvalidTransition, stored.Status, expected)
	}

	// employee, creator and creation time are immutable
	request.EmployeeID = stored.EmployeeID
	request.CreatedBy = stored.CreatedBy
	request.CreatedAt = stored.CreatedAt
	r.db.requests[request.ID] = cloneRequest(request)

	return nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.db.requests, id)
	return nil
}

// withEmployee must be called with the lock held.
func (r *leaveRequestRepositoryImpl) withEmployee(stored leave.LeaveRequest) leave.LeaveRequest {
	req := cloneRequest(stored)
	if emp, ok := r.db.employees[req.EmployeeID]; ok {
		name, department := emp.FullName, emp.Department
		req.EmployeeName = &name
		req.Department = &department
	}
	return req
}
