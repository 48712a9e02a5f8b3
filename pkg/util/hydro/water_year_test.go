package hydro

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWaterYearStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"january belongs to previous october", date(2025, time.January, 15), date(2024, time.October, 1)},
		{"september is the last month of the year", date(2025, time.September, 30), date(2024, time.October, 1)},
		{"october starts a new year", date(2025, time.October, 1), date(2025, time.October, 1)},
		{"december stays in the new year", date(2025, time.December, 31), date(2025, time.October, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WaterYearStart(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("WaterYearStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWaterYear(t *testing.T) {
	tests := []struct {
		in   time.Time
		want int
	}{
		{date(2024, time.October, 1), 2025},
		{date(2025, time.April, 15), 2025},
		{date(2025, time.September, 30), 2025},
		{date(2025, time.October, 1), 2026},
	}

	for _, tt := range tests {
		if got := WaterYear(tt.in); got != tt.want {
			t.Errorf("WaterYear(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWaterYearWindow(t *testing.T) {
	begin, end := WaterYearWindow(date(2025, time.August, 31))
	if begin != "2024-10-01" {
		t.Errorf("begin = %s, want 2024-10-01", begin)
	}
	if end != "2025-08-31" {
		t.Errorf("end = %s, want 2025-08-31", end)
	}
}

func TestInSeason(t *testing.T) {
	tests := []struct {
		in   time.Time
		from string
		to   string
		want bool
	}{
		{date(2025, time.April, 1), "04-01", "07-31", true},
		{date(2025, time.July, 31), "04-01", "07-31", true},
		{date(2025, time.March, 31), "04-01", "07-31", false},
		{date(2025, time.August, 1), "04-01", "07-31", false},
	}

	for _, tt := range tests {
		if got := InSeason(tt.in, tt.from, tt.to); got != tt.want {
			t.Errorf("InSeason(%v, %s, %s) = %v, want %v", tt.in, tt.from, tt.to, got, tt.want)
		}
	}
}
