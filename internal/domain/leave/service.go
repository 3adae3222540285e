package leave

import (
	"context"
	"io"
	"time"
)

type LeaveService interface {
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ListEmployeeLeaveRequests(ctx context.Context, employeeID string) (ListLeaveRequestResponse, error)
	UpdateLeaveRequest(ctx context.Context, req UpdateLeaveRequestRequest) (LeaveRequest, error)
	DeleteLeaveRequest(ctx context.Context, requestID string, actorID string) error
	// Status
	ApproveLeaveRequest(ctx context.Context, requestID string, approverID string) (LeaveRequest, error)
	RejectLeaveRequest(ctx context.Context, requestID string, approverID string, req RejectRequestRequest) (LeaveRequest, error)
	CancelLeaveRequest(ctx context.Context, requestID string, actorID string) (LeaveRequest, error)
	// Balance
	ListPolicies(ctx context.Context) []LeavePolicy
	GetBalances(ctx context.Context, filter BalanceFilter) ([]LeaveBalance, error)
	// Calendar
	GetCalendarDay(ctx context.Context, day Date, filter CalendarFilter) (CalendarDayResponse, error)
	GetCalendarMonth(ctx context.Context, year int, month time.Month, filter CalendarFilter) (CalendarMonthResponse, error)
	ExportCalendarMonth(ctx context.Context, w io.Writer, year int, month time.Month, filter CalendarFilter) error
}
