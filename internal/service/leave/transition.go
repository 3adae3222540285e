package leave

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
)

// Only pending requests move.
var allowedTransitions = map[leave.LeaveRequestStatus][]leave.LeaveRequestStatus{
	leave.LeaveRequestStatusPending: {
		leave.LeaveRequestStatusApproved,
		leave.LeaveRequestStatusRejected,
		leave.LeaveRequestStatusCanceled,
	},
}

// CanTransition reports whether a request in status from may move to to.
func CanTransition(from, to leave.LeaveRequestStatus) bool {
	if from.IsTerminal() {
		return false
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(request leave.LeaveRequest, to leave.LeaveRequestStatus) error {
	if !CanTransition(request.Status, to) {
		return fmt.Errorf("%w: %s -> %s", leave.ErrInvalidTransition, request.Status, to)
	}
	return nil
}

func requireActor(field, actorID string) error {
	if validator.IsEmpty(actorID) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	return nil
}

// Approve returns a copy of request moved to approved. The input is never modified.
func Approve(request leave.LeaveRequest, approverID string, now time.Time) (leave.LeaveRequest, error) {
	if err := requireActor("approver_id", approverID); err != nil {
		return request, err
	}
	if err := checkTransition(request, leave.LeaveRequestStatusApproved); err != nil {
		return request, err
	}

	approved := request
	approved.Status = leave.LeaveRequestStatusApproved
	approved.ApprovedBy = &approverID
	approved.ApprovedAt = &now
	approved.UpdatedAt = now
	return approved, nil
}

// Reject returns a copy of request moved to rejected. A blank reason is dropped.
func Reject(request leave.LeaveRequest, approverID string, reason *string, now time.Time) (leave.LeaveRequest, error) {
	if err := requireActor("approver_id", approverID); err != nil {
		return request, err
	}
	if err := checkTransition(request, leave.LeaveRequestStatusRejected); err != nil {
		return request, err
	}

	rejected := request
	rejected.Status = leave.LeaveRequestStatusRejected
	rejected.RejectedBy = &approverID
	rejected.RejectedAt = &now
	rejected.RejectionReason = normalizeText(reason)
	rejected.UpdatedAt = now
	return rejected, nil
}

// Cancel returns a copy of request moved to canceled.
func Cancel(request leave.LeaveRequest, actorID string, now time.Time) (leave.LeaveRequest, error) {
	if err := requireActor("actor_id", actorID); err != nil {
		return request, err
	}
	if err := checkTransition(request, leave.LeaveRequestStatusCanceled); err != nil {
		return request, err
	}

	canceled := request
	canceled.Status = leave.LeaveRequestStatusCanceled
	canceled.CanceledBy = &actorID
	canceled.CanceledAt = &now
	canceled.UpdatedAt = now
	return canceled, nil
}

// EnsureEditable rejects field edits on anything but a pending request.
func EnsureEditable(request leave.LeaveRequest) error {
	if request.Status != leave.LeaveRequestStatusPending {
		return fmt.Errorf("%w: status is %s", leave.ErrRequestNotEditable, request.Status)
	}
	return nil
}

func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
