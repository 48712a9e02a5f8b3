package model

import (
	"fmt"
	"strings"
)

// SeriesPoint is one observation in a station series. Value is nil when the
// station reported no value for the date.
type SeriesPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Series is the tabular form of one element's water-year observations
type Series struct {
	StationTriplet string        `json:"stationTriplet"`
	ElementCode    string        `json:"elementCode"`
	Duration       string        `json:"duration"`
	UnitCode       string        `json:"unitCode"`
	Label          string        `json:"label"`
	Points         []SeriesPoint `json:"points"`
}

// SeriesLabel builds the display label for an element column,
// e.g. "WTEQ (in)". Underscores in element codes become dashes.
func SeriesLabel(elementCode, unitCode string) string {
	return fmt.Sprintf("%s (%s)", strings.ReplaceAll(elementCode, "_", "-"), unitCode)
}

// IsEmpty reports whether the series holds no observations
func (s *Series) IsEmpty() bool {
	return len(s.Points) == 0
}
