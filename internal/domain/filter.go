package domain

import "time"

// Wildcard is the sentinel that disables a categorical or date-range filter.
const Wildcard = "All"

// Named date-range windows, resolved relative to "now" at filter time.
const (
	RangeAll       = Wildcard
	RangeLast7     = "Last 7 Days"
	RangeLast30    = "Last 30 Days"
	RangeLastMonth = "Last Month"
	RangeCustom    = "Custom"
)

// Criteria describes one filter pass over the normalized collection. The
// zero value plus Wildcard selections matches everything.
type Criteria struct {
	Search    string
	Platform  string
	Objective string
	Device    string
	Segment   string

	DateRange   string
	CustomStart time.Time
	CustomEnd   time.Time
}

// DefaultCriteria returns criteria with every filter at its wildcard value.
func DefaultCriteria() Criteria {
	return Criteria{
		Platform:  Wildcard,
		Objective: Wildcard,
		Device:    Wildcard,
		Segment:   Wildcard,
		DateRange: RangeAll,
	}
}

// Window resolves the criteria's date range to inclusive [start, end]
// calendar bounds relative to now. ok is false when no date filter applies,
// either because the range is the wildcard or because a custom range is
// missing one of its bounds.
func (c Criteria) Window(now time.Time) (start, end time.Time, ok bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch c.DateRange {
	case RangeLast7:
		start = today.AddDate(0, 0, -6)
		end = endOfDay(today)
	case RangeLast30:
		start = today.AddDate(0, 0, -29)
		end = endOfDay(today)
	case RangeLastMonth:
		start = time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, today.Location())
		// Day zero of the current month is the last day of the previous one.
		end = endOfDay(time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, today.Location()))
	case RangeCustom:
		if c.CustomStart.IsZero() || c.CustomEnd.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		s := c.CustomStart
		start = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
		end = endOfDay(c.CustomEnd)
	default:
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
