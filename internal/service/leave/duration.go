package leave

import (
	"fmt"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

// CalculateDuration returns the inclusive number of days between two
// "YYYY-MM-DD" dates. A single-day leave lasts 1 day.
func CalculateDuration(startDate, endDate string) (int, error) {
	start, err := leave.ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("start date: %w", err)
	}
	end, err := leave.ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("end date: %w", err)
	}
	return DurationBetween(start, end)
}

// DurationBetween is CalculateDuration over parsed dates. Reversed ranges are
// rejected rather than normalized.
func DurationBetween(start, end leave.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, leave.ErrInvalidDate
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s > %s", leave.ErrInvalidDateRange, start, end)
	}
	return start.DaysUntil(end) + 1, nil
}
