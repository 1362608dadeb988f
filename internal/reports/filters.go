package reports

import (
	"errors"
	"time"
)

var errCustomRange = errors.New("start_date and end_date required for custom range")

// GetDateRange returns the [start, end] window for a preset, or for a custom
// range given as "2006-01-02" strings. An empty preset means no window and
// returns zero times.
func GetDateRange(dateRange, startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()

	switch dateRange {
	case DateRangeAll:
		return time.Time{}, time.Time{}, nil
	case DateRangeDaily:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return start, start.Add(24*time.Hour - time.Second), nil
	case DateRangeWeekly:
		// last 7 days including today
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, loc)
		start := time.Date(now.Year(), now.Month(), now.Day()-6, 0, 0, 0, 0, loc)
		return start, end, nil
	case DateRangeMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Second), nil
	case DateRangeYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		end := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, loc)
		return start, end, nil
	case DateRangeCustom:
		if startStr == "" || endStr == "" {
			return time.Time{}, time.Time{}, errCustomRange
		}
		start, err := time.ParseInLocation("2006-01-02", startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// include entire end day
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		if start.After(end) {
			return time.Time{}, time.Time{}, errors.New("start_date must be before end_date")
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, errors.New("unknown date_range " + dateRange)
	}
}
