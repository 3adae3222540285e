package leave

import (
	"context"
	"io"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	requestService  *RequestService
	balanceService  *BalanceService
	calendarService *CalendarService
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	return l.requestService.CreateRequest(ctx, req)
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return l.requestService.GetRequest(ctx, requestID)
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	requests, err := l.requestService.ListRequests(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return listResponse(requests), nil
}

// ListEmployeeLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListEmployeeLeaveRequests(ctx context.Context, employeeID string) (leave.ListLeaveRequestResponse, error) {
	requests, err := l.requestService.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return listResponse(requests), nil
}

// UpdateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveRequest(ctx context.Context, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	return l.requestService.UpdateRequest(ctx, req)
}

// DeleteLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, requestID string, actorID string) error {
	return l.requestService.DeleteRequest(ctx, requestID, actorID)
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string, approverID string) (leave.LeaveRequest, error) {
	return l.requestService.Approve(ctx, requestID, approverID)
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, requestID string, approverID string, req leave.RejectRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	return l.requestService.Reject(ctx, requestID, approverID, req.Reason)
}

// CancelLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelLeaveRequest(ctx context.Context, requestID string, actorID string) (leave.LeaveRequest, error) {
	return l.requestService.Cancel(ctx, requestID, actorID)
}

// ListPolicies implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPolicies(ctx context.Context) []leave.LeavePolicy {
	return l.balanceService.Policies()
}

// GetBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalances(ctx context.Context, filter leave.BalanceFilter) ([]leave.LeaveBalance, error) {
	return l.balanceService.GetBalances(ctx, filter)
}

// GetCalendarDay implements leave.LeaveService.
func (l *LeaveServiceImpl) GetCalendarDay(ctx context.Context, day leave.Date, filter leave.CalendarFilter) (leave.CalendarDayResponse, error) {
	return l.calendarService.Day(ctx, day, filter)
}

// GetCalendarMonth implements leave.LeaveService.
func (l *LeaveServiceImpl) GetCalendarMonth(ctx context.Context, year int, month time.Month, filter leave.CalendarFilter) (leave.CalendarMonthResponse, error) {
	return l.calendarService.Month(ctx, year, month, filter)
}

// ExportCalendarMonth implements leave.LeaveService.
func (l *LeaveServiceImpl) ExportCalendarMonth(ctx context.Context, w io.Writer, year int, month time.Month, filter leave.CalendarFilter) error {
	return l.calendarService.ExportMonth(ctx, w, year, month, filter)
}

func listResponse(requests []leave.LeaveRequest) leave.ListLeaveRequestResponse {
	if requests == nil {
		requests = []leave.LeaveRequest{}
	}
	return leave.ListLeaveRequestResponse{
		Items: requests,
		Total: int64(len(requests)),
	}
}

func NewLeaveService(
	requestService *RequestService,
	balanceService *BalanceService,
	calendarService *CalendarService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		requestService:  requestService,
		balanceService:  balanceService,
		calendarService: calendarService,
	}
}
