package event

import (
	"fmt"
	"time"

	"github.com/sharath018/event-management-backend/internal/apierror"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// parseClock parses a zero-padded 24-hour "HH:mm" string into minutes of day.
// time.Parse with the "15:04" layout rejects "9:30", "24:00" and trailing
// garbage, which is exactly the strictness the API promises.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// validateInterval checks the textual formats and the strict ordering of a
// proposed interval. On success it returns the parsed calendar date and the
// interval as minutes of day.
func validateInterval(date, startTime, endTime string) (time.Time, int, int, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, 0, 0, apierror.NewFormat("Invalid date format. Please use YYYY-MM-DD.")
	}

	start, err := parseClock(startTime)
	if err != nil {
		return time.Time{}, 0, 0, apierror.NewFormat(fmt.Sprintf("Invalid startTime %q. Please use HH:mm.", startTime))
	}
	end, err := parseClock(endTime)
	if err != nil {
		return time.Time{}, 0, 0, apierror.NewFormat(fmt.Sprintf("Invalid endTime %q. Please use HH:mm.", endTime))
	}

	if start >= end {
		return time.Time{}, 0, 0, apierror.NewOrder("Start time must be before end time.")
	}

	return day, start, end, nil
}

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints (e1 == s2) do not conflict. The single
// inequality covers all four textbook cases: partial overlap either way,
// engulfing, and being engulfed.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
