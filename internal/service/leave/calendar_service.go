package leave

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
)

var defaultCalendarStatuses = []leave.LeaveRequestStatus{
	leave.LeaveRequestStatusPending,
	leave.LeaveRequestStatusApproved,
}

type CalendarService struct {
	leave.LeaveRequestRepository
	now func() time.Time
}

func NewCalendarService(leaveRequestRepository leave.LeaveRequestRepository) *CalendarService {
	return &CalendarService{
		LeaveRequestRepository: leaveRequestRepository,
		now:                    time.Now,
	}
}

func (s *CalendarService) Day(ctx context.Context, day leave.Date, filter leave.CalendarFilter) (leave.CalendarDayResponse, error) {
	if day.IsZero() {
		return leave.CalendarDayResponse{}, validator.ValidationErrors{{Field: "date", Message: "date is required"}}
	}
	requests, err := s.load(ctx, &filter)
	if err != nil {
		return leave.CalendarDayResponse{}, err
	}

	return leave.CalendarDayResponse{
		Date:     day,
		Requests: sortByStart(LeavesOverlapping(requests, day, filter)),
	}, nil
}

func (s *CalendarService) Month(ctx context.Context, year int, month time.Month, filter leave.CalendarFilter) (leave.CalendarMonthResponse, error) {
	if err := validateMonth(year, month); err != nil {
		return leave.CalendarMonthResponse{}, err
	}
	requests, err := s.load(ctx, &filter)
	if err != nil {
		return leave.CalendarMonthResponse{}, err
	}

	first, last := MonthWindow(year, month)
	return leave.CalendarMonthResponse{
		Year:     year,
		Month:    month,
		From:     first,
		To:       last,
		Requests: sortByStart(LeavesOverlappingMonth(requests, year, month, filter)),
	}, nil
}

// ExportMonth renders the month view as a PDF table.
func (s *CalendarService) ExportMonth(ctx context.Context, w io.Writer, year int, month time.Month, filter leave.CalendarFilter) error {
	view, err := s.Month(ctx, year, month, filter)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(view.Requests))
	for _, r := range view.Requests {
		rows = append(rows, []string{
			valueOr(r.EmployeeName, r.EmployeeID),
			valueOr(r.Department, "-"),
			string(r.Type),
			r.StartDate.String(),
			r.EndDate.String(),
			strconv.Itoa(r.DurationDays),
			string(r.Status),
		})
	}

	subtitle := ""
	if filter.Department != "" {
		subtitle += "Department: " + filter.Department + "  "
	}
	if filter.Type != "" {
		subtitle += "Type: " + string(filter.Type)
	}

	return pdf.Render(w, pdf.Table{
		Title:    fmt.Sprintf("Leave calendar %s %d", month, year),
		Subtitle: subtitle,
		Columns: []pdf.Column{
			{Header: "Employee", Width: 60},
			{Header: "Department", Width: 45},
			{Header: "Type", Width: 30},
			{Header: "Start", Width: 28},
			{Header: "End", Width: 28},
			{Header: "Days", Width: 18},
			{Header: "Status", Width: 28},
		},
		Rows:        rows,
		GeneratedAt: s.now().UTC(),
	})
}

func (s *CalendarService) load(ctx context.Context, filter *leave.CalendarFilter) ([]leave.LeaveRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if len(filter.Statuses) == 0 {
		filter.Statuses = defaultCalendarStatuses
	}

	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{Type: filter.Type})
	if err != nil {
		return nil, persistenceError("failed to list leave requests", err)
	}
	return requests, nil
}

func validateMonth(year int, month time.Month) error {
	var errs validator.ValidationErrors
	if year < 1 || year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 1 and 9999"})
	}
	if month < time.January || month > time.December {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func sortByStart(requests []leave.LeaveRequest) []leave.LeaveRequest {
	sort.SliceStable(requests, func(i, j int) bool {
		if !requests[i].StartDate.Equal(requests[j].StartDate) {
			return requests[i].StartDate.Before(requests[j].StartDate)
		}
		return requests[i].EmployeeID < requests[j].EmployeeID
	})
	return requests
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
