package reports

import (
	"strconv"
	"testing"
	"time"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func TestGetDateRange(t *testing.T) {
	now := time.Date(2026, 3, 20, 15, 4, 5, 0, time.UTC)

	cases := []struct {
		name       string
		dateRange  string
		start, end string
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{"all", DateRangeAll, "", "", time.Time{}, time.Time{}},
		{"daily", DateRangeDaily, "", "", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC)},
		{"weekly", DateRangeWeekly, "", "", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC)},
		{"monthly", DateRangeMonthly, "", "", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)},
		{"yearly", DateRangeYearly, "", "", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"custom", DateRangeCustom, "2026-02-01", "2026-02-03", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 3, 23, 59, 59, 0, time.UTC)},
	}

	for _, tc := range cases {
		start, end, err := GetDateRange(tc.dateRange, tc.start, tc.end, now)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
			t.Fatalf("%s: got [%s, %s], want [%s, %s]", tc.name, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestGetDateRangeRejects(t *testing.T) {
	now := time.Now()
	bad := [][3]string{
		{DateRangeCustom, "", "2026-01-01"},
		{DateRangeCustom, "2026-13-01", "2026-01-01"},
		{DateRangeCustom, "2026-02-01", "2026-01-01"},
		{"fortnightly", "", ""},
	}
	for _, b := range bad {
		if _, _, err := GetDateRange(b[0], b[1], b[2], now); err == nil {
			t.Fatalf("expected error for %v", b)
		}
	}
}
