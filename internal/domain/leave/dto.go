package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`

	// Set from the authenticated actor, never from the body.
	CreatedBy string `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !LeaveType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of " + leaveTypeList(),
		})
	}

	errs = append(errs, validateDateRange(r.StartDate, r.EndDate)...)

	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if validator.IsEmpty(r.CreatedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "created_by",
			Message: "created_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequestRequest is a partial update; nil fields are left untouched.
type UpdateLeaveRequestRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`

	ActorID string `json:"-"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Type == nil && r.StartDate == nil && r.EndDate == nil && r.Reason == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of type, start_date, end_date, reason is required",
		})
	}

	if r.Type != nil && !LeaveType(*r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of " + leaveTypeList(),
		})
	}

	switch {
	case r.StartDate != nil && r.EndDate != nil:
		errs = append(errs, validateDateRange(*r.StartDate, *r.EndDate)...)
	case r.StartDate != nil:
		// The service checks the range once merged with the stored end date.
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	case r.EndDate != nil:
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r *RejectRequestRequest) Validate() error {
	if r.Reason != nil && len(*r.Reason) > 1000 {
		return validator.ValidationErrors{{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		}}
	}
	return nil
}

// LeaveRequestFilter narrows a request listing; empty fields match everything.
type LeaveRequestFilter struct {
	EmployeeID string
	Status     LeaveRequestStatus
	Type       LeaveType
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, canceled",
		})
	}
	if f.Type != "" && !f.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of " + leaveTypeList(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceFilter struct {
	EmployeeID string
	Department string
	Year       int
}

func (f *BalanceFilter) Validate() error {
	if f.Year < 0 || f.Year > 9999 {
		return validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		}}
	}
	return nil
}

// CalendarFilter narrows calendar matches; empty fields match everything.
// The calendar endpoints default Statuses to pending and approved.
type CalendarFilter struct {
	Department string
	Type       LeaveType
	Statuses   []LeaveRequestStatus
}

func (f *CalendarFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != "" && !f.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of " + leaveTypeList(),
		})
	}
	for _, s := range f.Statuses {
		if !s.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, approved, rejected, canceled",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLeaveRequestResponse struct {
	Items []LeaveRequest `json:"items"`
	Total int64          `json:"total"`
}

type CalendarDayResponse struct {
	Date     Date           `json:"date"`
	Requests []LeaveRequest `json:"requests"`
}

type CalendarMonthResponse struct {
	Year     int            `json:"year"`
	Month    time.Month     `json:"month"`
	From     Date           `json:"from"`
	To       Date           `json:"to"`
	Requests []LeaveRequest `json:"requests"`
}

func validateDateRange(start, end string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	startDate, startOK := validator.IsValidDate(start)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	endDate, endOK := validator.IsValidDate(end)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs
}

func leaveTypeList() string {
	names := make([]string, len(LeaveTypes))
	for i, t := range LeaveTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
