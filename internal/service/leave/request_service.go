package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
	"github.com/google/uuid"
)

const (
	EventLeaveRequestCreated  = "leave_request.created"
	EventLeaveRequestUpdated  = "leave_request.updated"
	EventLeaveRequestDeleted  = "leave_request.deleted"
	EventLeaveRequestApproved = "leave_request.approved"
	EventLeaveRequestRejected = "leave_request.rejected"
	EventLeaveRequestCanceled = "leave_request.canceled"
)

// EventPublisher delivers leave request notifications to users.
type EventPublisher interface {
	PublishToMany(recipientIDs []string, name string, data interface{})
}

type RequestOption func(*RequestService)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) RequestOption {
	return func(s *RequestService) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(newID func() (string, error)) RequestOption {
	return func(s *RequestService) {
		s.newID = newID
	}
}

// RequestService owns persistence of leave requests and applies duration
// and status rules on the way in.
type RequestService struct {
	leave.LeaveRequestRepository
	publisher EventPublisher
	now       func() time.Time
	newID     func() (string, error)
}

func NewRequestService(leaveRequestRepository leave.LeaveRequestRepository, publisher EventPublisher, opts ...RequestOption) *RequestService {
	s := &RequestService{
		LeaveRequestRepository: leaveRequestRepository,
		publisher:              publisher,
		now:                    time.Now,
		newID:                  newUUIDv7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// timestamp is truncated to what PostgreSQL keeps so records read back equal.
func (s *RequestService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *RequestService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, err := leave.ParseDate(req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	endDate, err := leave.ParseDate(req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	duration, err := DurationBetween(startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	id, err := s.newID()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	now := s.timestamp()
	request := leave.LeaveRequest{
		ID:           id,
		EmployeeID:   req.EmployeeID,
		Type:         leave.LeaveType(req.Type),
		StartDate:    startDate,
		EndDate:      endDate,
		DurationDays: duration,
		Reason:       normalizeText(req.Reason),
		Status:       leave.LeaveRequestStatusPending,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, persistenceError("failed to create leave request", err)
	}

	slog.Info("Leave request created", "request_id", created.ID, "employee_id", created.EmployeeID, "type", created.Type, "days", created.DurationDays)
	s.notify(EventLeaveRequestCreated, created, req.CreatedBy)

	return created, nil
}

// GetRequest returns ErrLeaveRequestNotFound when id is unknown.
func (s *RequestService) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	if validator.IsEmpty(requestID) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, persistenceError("failed to get leave request", err)
	}
	return request, nil
}

func (s *RequestService) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, persistenceError("failed to list leave requests", err)
	}
	return requests, nil
}

func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if validator.IsEmpty(employeeID) {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	return s.ListRequests(ctx, leave.LeaveRequestFilter{EmployeeID: employeeID})
}

// UpdateRequest edits a pending request. The duration is recomputed whenever
// either date changes, against the stored value of the other one.
func (s *RequestService) UpdateRequest(ctx context.Context, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	current, err := s.GetRequest(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := EnsureEditable(current); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated := current
	if req.Type != nil {
		updated.Type = leave.LeaveType(*req.Type)
	}
	if req.Reason != nil {
		updated.Reason = normalizeText(req.Reason)
	}

	if req.StartDate != nil || req.EndDate != nil {
		if req.StartDate != nil {
			if updated.StartDate, err = leave.ParseDate(*req.StartDate); err != nil {
				return leave.LeaveRequest{}, err
			}
		}
		if req.EndDate != nil {
			if updated.EndDate, err = leave.ParseDate(*req.EndDate); err != nil {
				return leave.LeaveRequest{}, err
			}
		}
		updated.DurationDays, err = DurationBetween(updated.StartDate, updated.EndDate)
		if err != nil {
			return leave.LeaveRequest{}, validator.ValidationErrors{{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			}}
		}
	}

	updated.UpdatedAt = s.timestamp()

	if err := s.LeaveRequestRepository.Update(ctx, updated, current.Status); err != nil {
		if errors.Is(err, leave.ErrInvalidTransition) {
			return leave.LeaveRequest{}, fmt.Errorf("%w: status changed concurrently", leave.ErrRequestNotEditable)
		}
		return leave.LeaveRequest{}, persistenceError("failed to update leave request", err)
	}

	slog.Info("Leave request updated", "request_id", updated.ID, "days", updated.DurationDays)
	s.notify(EventLeaveRequestUpdated, updated, req.ActorID)

	return updated, nil
}

// DeleteRequest hard-deletes a request in any status.
func (s *RequestService) DeleteRequest(ctx context.Context, requestID string, actorID string) error {
	current, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
		return persistenceError("failed to delete leave request", err)
	}

	slog.Info("Leave request deleted", "request_id", requestID, "actor_id", actorID)
	s.notify(EventLeaveRequestDeleted, current, actorID)

	return nil
}

func (s *RequestService) Approve(ctx context.Context, requestID string, approverID string) (leave.LeaveRequest, error) {
	return s.transition(ctx, requestID, approverID, EventLeaveRequestApproved, func(current leave.LeaveRequest, now time.Time) (leave.LeaveRequest, error) {
		return Approve(current, approverID, now)
	})
}

func (s *RequestService) Reject(ctx context.Context, requestID string, approverID string, reason *string) (leave.LeaveRequest, error) {
	return s.transition(ctx, requestID, approverID, EventLeaveRequestRejected, func(current leave.LeaveRequest, now time.Time) (leave.LeaveRequest, error) {
		return Reject(current, approverID, reason, now)
	})
}

func (s *RequestService) Cancel(ctx context.Context, requestID string, actorID string) (leave.LeaveRequest, error) {
	return s.transition(ctx, requestID, actorID, EventLeaveRequestCanceled, func(current leave.LeaveRequest, now time.Time) (leave.LeaveRequest, error) {
		return Cancel(current, actorID, now)
	})
}

// transition loads the request, applies apply and stores the result only if
// nobody changed the status in between.
func (s *RequestService) transition(
	ctx context.Context,
	requestID, actorID, event string,
	apply func(current leave.LeaveRequest, now time.Time) (leave.LeaveRequest, error),
) (leave.LeaveRequest, error) {
	current, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	next, err := apply(current, s.timestamp())
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := s.LeaveRequestRepository.Update(ctx, next, current.Status); err != nil {
		return leave.LeaveRequest{}, persistenceError("failed to update leave request status", err)
	}

	slog.Info("Leave request status changed", "request_id", next.ID, "from", current.Status, "to", next.Status, "actor_id", actorID)
	s.notify(event, next, actorID)

	return next, nil
}

func (s *RequestService) notify(event string, request leave.LeaveRequest, actorID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishToMany([]string{request.EmployeeID, actorID}, event, request)
}

// persistenceError passes domain errors through and wraps everything else
// as a store failure.
func persistenceError(op string, err error) error {
	var pErr *leave.PersistenceError
	switch {
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrEmployeeNotFound),
		leave.IsInvalidTransition(err),
		errors.As(err, &pErr):
		return err
	}
	return &leave.PersistenceError{Op: op, Err: err}
}
