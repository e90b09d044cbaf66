package utils

import "time"

const dateLayout = "2006-01-02"

// IsWeekStart reports whether d is a Monday at midnight.
func IsWeekStart(d time.Time) bool {
	return d.Weekday() == time.Monday &&
		d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0
}

// WeekEnd returns the Sunday closing the week that starts at periodStart,
// inclusive.
func WeekEnd(periodStart time.Time) time.Time {
	return periodStart.AddDate(0, 0, 6)
}

// MustParseDate parses a yyyy-MM-dd literal, panicking on malformed input.
func MustParseDate(dateStr string) time.Time {
	t, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
