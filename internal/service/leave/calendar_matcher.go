package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

// LeavesOverlapping returns the requests whose inclusive [start, end] range
// contains day, after applying filter.
func LeavesOverlapping(requests []leave.LeaveRequest, day leave.Date, filter leave.CalendarFilter) []leave.LeaveRequest {
	return leavesInWindow(requests, day, day, filter)
}

// LeavesOverlappingMonth returns the requests intersecting the given month.
func LeavesOverlappingMonth(requests []leave.LeaveRequest, year int, month time.Month, filter leave.CalendarFilter) []leave.LeaveRequest {
	first, last := MonthWindow(year, month)
	return leavesInWindow(requests, first, last, filter)
}

// MonthWindow returns the first and last day of a month.
func MonthWindow(year int, month time.Month) (leave.Date, leave.Date) {
	first := leave.NewDate(year, month, 1)
	return first, first.LastOfMonth()
}

func leavesInWindow(requests []leave.LeaveRequest, from, to leave.Date, filter leave.CalendarFilter) []leave.LeaveRequest {
	matched := make([]leave.LeaveRequest, 0)
	for _, req := range requests {
		if !matchesFilter(req, filter) {
			continue
		}
		if req.StartDate.After(to) || req.EndDate.Before(from) {
			continue
		}
		matched = append(matched, req)
	}
	return matched
}

func matchesFilter(req leave.LeaveRequest, filter leave.CalendarFilter) bool {
	if filter.Department != "" && (req.Department == nil || *req.Department != filter.Department) {
		return false
	}
	if filter.Type != "" && req.Type != filter.Type {
		return false
	}
	if len(filter.Statuses) > 0 {
		for _, s := range filter.Statuses {
			if req.Status == s {
				return true
			}
		}
		return false
	}
	return true
}
