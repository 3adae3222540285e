package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func spanning(id string, start, end leave.Date, status leave.LeaveRequestStatus, department string) leave.LeaveRequest {
	req := leave.LeaveRequest{
		ID:         id,
		EmployeeID: "E-" + id,
		Type:       leave.LeaveTypePaid,
		StartDate:  start,
		EndDate:    end,
		Status:     status,
	}
	if department != "" {
		req.Department = strPtr(department)
	}
	return req
}

func ids(requests []leave.LeaveRequest) []string {
	out := make([]string, 0, len(requests))
	for _, r := range requests {
		out = append(out, r.ID)
	}
	return out
}

func TestLeavesOverlapping_InclusiveBounds(t *testing.T) {
	requests := []leave.LeaveRequest{
		spanning("starts", leave.NewDate(2024, 3, 6), leave.NewDate(2024, 3, 8), leave.LeaveRequestStatusApproved, ""),
		spanning("ends", leave.NewDate(2024, 3, 1), leave.NewDate(2024, 3, 6), leave.LeaveRequestStatusApproved, ""),
		spanning("before", leave.NewDate(2024, 3, 1), leave.NewDate(2024, 3, 5), leave.LeaveRequestStatusApproved, ""),
		spanning("after", leave.NewDate(2024, 3, 7), leave.NewDate(2024, 3, 9), leave.LeaveRequestStatusApproved, ""),
	}

	got := LeavesOverlapping(requests, leave.NewDate(2024, 3, 6), leave.CalendarFilter{})
	assert.Equal(t, []string{"starts", "ends"}, ids(got))
}

func TestLeavesOverlapping_Filters(t *testing.T) {
	day := leave.NewDate(2024, 3, 6)
	sick := spanning("sick", day, day, leave.LeaveRequestStatusPending, "Engineering")
	sick.Type = leave.LeaveTypeSick
	requests := []leave.LeaveRequest{
		spanning("eng", day, day, leave.LeaveRequestStatusApproved, "Engineering"),
		spanning("sales", day, day, leave.LeaveRequestStatusApproved, "Sales"),
		spanning("nodept", day, day, leave.LeaveRequestStatusApproved, ""),
		spanning("rejected", day, day, leave.LeaveRequestStatusRejected, "Engineering"),
		sick,
	}

	tests := []struct {
		name   string
		filter leave.CalendarFilter
		want   []string
	}{
		{name: "no filter", filter: leave.CalendarFilter{}, want: []string{"eng", "sales", "nodept", "rejected", "sick"}},
		{name: "department", filter: leave.CalendarFilter{Department: "Engineering"}, want: []string{"eng", "rejected", "sick"}},
		{name: "type", filter: leave.CalendarFilter{Type: leave.LeaveTypeSick}, want: []string{"sick"}},
		{
			name:   "statuses",
			filter: leave.CalendarFilter{Statuses: []leave.LeaveRequestStatus{leave.LeaveRequestStatusApproved}},
			want:   []string{"eng", "sales", "nodept"},
		},
		{
			name: "combined",
			filter: leave.CalendarFilter{
				Department: "Engineering",
				Statuses:   []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved},
			},
			want: []string{"eng", "sick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(LeavesOverlapping(requests, day, tt.filter)))
		})
	}
}

func TestLeavesOverlappingMonth(t *testing.T) {
	requests := []leave.LeaveRequest{
		spanning("spill-in", leave.NewDate(2024, 1, 30), leave.NewDate(2024, 2, 2), leave.LeaveRequestStatusApproved, ""),
		spanning("leap", leave.NewDate(2024, 2, 29), leave.NewDate(2024, 2, 29), leave.LeaveRequestStatusApproved, ""),
		spanning("spill-out", leave.NewDate(2024, 2, 28), leave.NewDate(2024, 3, 3), leave.LeaveRequestStatusApproved, ""),
		spanning("march", leave.NewDate(2024, 3, 1), leave.NewDate(2024, 3, 3), leave.LeaveRequestStatusApproved, ""),
		spanning("january", leave.NewDate(2024, 1, 2), leave.NewDate(2024, 1, 3), leave.LeaveRequestStatusApproved, ""),
	}

	got := LeavesOverlappingMonth(requests, 2024, time.February, leave.CalendarFilter{})
	assert.Equal(t, []string{"spill-in", "leap", "spill-out"}, ids(got))
}

func TestMonthWindow(t *testing.T) {
	first, last := MonthWindow(2023, time.February)
	assert.Equal(t, "2023-02-01", first.String())
	assert.Equal(t, "2023-02-28", last.String())

	first, last = MonthWindow(2024, time.December)
	assert.Equal(t, "2024-12-01", first.String())
	assert.Equal(t, "2024-12-31", last.String())
}

func TestLeavesOverlapping_EmptyInput(t *testing.T) {
	got := LeavesOverlapping(nil, leave.NewDate(2024, 3, 6), leave.CalendarFilter{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLeavesOverlapping_BoundaryDays(t *testing.T) {
	req := spanning("R1", leave.NewDate(2024, 3, 10), leave.NewDate(2024, 3, 12), leave.LeaveRequestStatusApproved, "")
	requests := []leave.LeaveRequest{req}

	for day := 9; day <= 13; day++ {
		got := LeavesOverlapping(requests, leave.NewDate(2024, 3, day), leave.CalendarFilter{})
		if day >= 10 && day <= 12 {
			assert.Len(t, got, 1, "2024-03-%02d", day)
		} else {
			assert.Empty(t, got, "2024-03-%02d", day)
		}
	}
}
