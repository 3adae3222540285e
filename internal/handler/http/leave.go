package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-leave-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	GetBalances(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)

	GetCalendarDay(w http.ResponseWriter, r *http.Request)
	GetCalendarMonth(w http.ResponseWriter, r *http.Request)
	ExportCalendarMonth(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	now          func() time.Time
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		now:          time.Now,
	}
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := leave.LeaveRequestFilter{
		EmployeeID: query.Get("employee_id"),
		Status:     leave.LeaveRequestStatus(query.Get("status")),
		Type:       leave.LeaveType(query.Get("type")),
	}

	result, err := l.leaveService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result.Items, result.Total)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.BadRequest(w, "Token is not linked to an employee", nil)
		return
	}

	result, err := l.leaveService.ListEmployeeLeaveRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result.Items, result.Total)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := l.leaveService.GetLeaveRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Employees file for themselves unless the body names someone else.
	if req.EmployeeID == "" {
		req.EmployeeID = middleware.EmployeeID(r)
	}
	req.CreatedBy = middleware.ActorID(r)

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", created)
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.ID = chi.URLParam(r, "id")
	req.ActorID = middleware.ActorID(r)

	updated, err := l.leaveService.UpdateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", updated)
}

// DeleteRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	if err := l.leaveService.DeleteLeaveRequest(r.Context(), requestID, middleware.ActorID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approved, err := l.leaveService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"), middleware.ActorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", approved)
}

// RejectRequest implements LeaveHandler. The body is optional.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rejected, err := l.leaveService.RejectLeaveRequest(r.Context(), chi.URLParam(r, "id"), middleware.ActorID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", rejected)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	canceled, err := l.leaveService.CancelLeaveRequest(r.Context(), chi.URLParam(r, "id"), middleware.ActorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request canceled successfully", canceled)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := leave.BalanceFilter{
		EmployeeID: query.Get("employee_id"),
		Department: query.Get("department"),
	}

	if yearStr := query.Get("year"); yearStr != "" {
		year, ok := validator.IsInRange(yearStr, 1, 9999)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{Field: "year", Message: "year must be between 1 and 9999"}})
			return
		}
		filter.Year = year
	}

	balances, err := l.leaveService.GetBalances(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, balances, int64(len(balances)))
}

// ListPolicies implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	response.Success(w, l.leaveService.ListPolicies(r.Context()))
}

// GetCalendarDay implements LeaveHandler. date defaults to today.
func (l *LeaveHandlerImpl) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	day := leave.DateOf(l.now())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := leave.ParseDate(dateStr)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date must be a valid date (YYYY-MM-DD)"}})
			return
		}
		day = parsed
	}

	result, err := l.leaveService.GetCalendarDay(r.Context(), day, calendarFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCalendarMonth implements LeaveHandler. year and month default to the
// current month.
func (l *LeaveHandlerImpl) GetCalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := l.monthParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.GetCalendarMonth(r.Context(), year, month, calendarFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCalendarMonth implements LeaveHandler.
func (l *LeaveHandlerImpl) ExportCalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := l.monthParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Render fully before writing so failures still get a JSON error.
	var buf bytes.Buffer
	if err := l.leaveService.ExportCalendarMonth(r.Context(), &buf, year, month, calendarFilter(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("leave-calendar-%04d-%02d.pdf", year, int(month))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("ExportCalendarMonth write error", "error", err)
	}
}

func (l *LeaveHandlerImpl) monthParams(r *http.Request) (int, time.Month, error) {
	now := l.now()
	year, month := now.Year(), now.Month()

	var errs validator.ValidationErrors
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		v, ok := validator.IsInRange(yearStr, 1, 9999)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 1 and 9999"})
		}
		year = v
	}
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		v, ok := validator.IsInRange(monthStr, 1, 12)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
		}
		month = time.Month(v)
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}

// calendarFilter reads department, type and a comma separated status list.
func calendarFilter(r *http.Request) leave.CalendarFilter {
	query := r.URL.Query()
	filter := leave.CalendarFilter{
		Department: query.Get("department"),
		Type:       leave.LeaveType(query.Get("type")),
	}
	if statuses := query.Get("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, leave.LeaveRequestStatus(s))
			}
		}
	}
	return filter
}
