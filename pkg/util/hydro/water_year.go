// Package hydro provides water-year calendar helpers.
//
// A water year runs from October 1 through September 30 and is labeled
// by the calendar year in which it ends.
package hydro

import "time"

// dateLayout is the day-resolution format used by water supply services.
const dateLayout = "2006-01-02"

// WaterYearStart returns October 1 of the water year containing t.
func WaterYearStart(t time.Time) time.Time {
	year := t.Year()
	if t.Month() <= time.September {
		year--
	}
	return time.Date(year, time.October, 1, 0, 0, 0, 0, t.Location())
}

// WaterYear returns the water year label for t, which is the calendar
// year in which the water year ends.
func WaterYear(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year() + 1
	}
	return t.Year()
}

// WaterYearWindow returns the begin and end dates, formatted as
// YYYY-MM-DD, spanning from the start of the current water year through t.
func WaterYearWindow(t time.Time) (string, string) {
	return WaterYearStart(t).Format(dateLayout), t.Format(dateLayout)
}

// FormatDate formats t at day resolution.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a day-resolution date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// InSeason reports whether t falls between the month-day bounds,
// inclusive, ignoring the year. Bounds are given as "MM-DD".
func InSeason(t time.Time, fromMonthDay, toMonthDay string) bool {
	md := t.Format("01-02")
	return md >= fromMonthDay && md <= toMonthDay
}
