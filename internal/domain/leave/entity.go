package leave

import (
	"time"
)

// LeaveType is the closed set of leave categories.
type LeaveType string

const (
	LeaveTypePaid      LeaveType = "paid"
	LeaveTypeUnpaid    LeaveType = "unpaid"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeOther     LeaveType = "other"
)

// LeaveTypes lists every leave type in display order.
var LeaveTypes = []LeaveType{
	LeaveTypePaid,
	LeaveTypeUnpaid,
	LeaveTypeSick,
	LeaveTypeMaternity,
	LeaveTypePaternity,
	LeaveTypeOther,
}

func (t LeaveType) IsValid() bool {
	for _, lt := range LeaveTypes {
		if lt == t {
			return true
		}
	}
	return false
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
	LeaveRequestStatusCanceled LeaveRequestStatus = "canceled"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected, LeaveRequestStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected || s == LeaveRequestStatusCanceled
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       LeaveType `json:"type"`

	StartDate    Date `json:"start_date"`
	EndDate      Date `json:"end_date"`
	DurationDays int  `json:"duration_days"`

	Reason *string `json:"reason,omitempty"`

	Status          LeaveRequestStatus `json:"status"`
	ApprovedBy      *string            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time         `json:"approved_at,omitempty"`
	RejectedBy      *string            `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time         `json:"rejected_at,omitempty"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	CanceledBy      *string            `json:"canceled_by,omitempty"`
	CanceledAt      *time.Time         `json:"canceled_at,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships (for responses)
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
}

// Employee is the read-only view of the external employee directory.
type Employee struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// Unlimited is the allotment and remaining sentinel for uncapped leave types.
const Unlimited = -1

// LeavePolicy is the annual allotment for one leave type.
type LeavePolicy struct {
	Type         LeaveType `json:"type"`
	AllottedDays int       `json:"allotted_days"`
}

func (p LeavePolicy) IsUnlimited() bool {
	return p.AllottedDays == Unlimited
}

// LeaveBalance is derived from policies and requests on every read.
type LeaveBalance struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Department   string    `json:"department"`
	Type         LeaveType `json:"type"`
	Total        int       `json:"total"`
	Used         int       `json:"used"`
	Pending      int       `json:"pending"`
	Remaining    int       `json:"remaining"`
	Unlimited    bool      `json:"unlimited"`
}
