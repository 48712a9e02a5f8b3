package entity

import "time"

// Reading is one observed value of an element at a station. Monthly
// observations carry the first day of the month as Date.
type Reading struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	StationTriplet string    `json:"stationTriplet" gorm:"column:station_triplet;uniqueIndex:idx_reading_key"`
	ElementCode    string    `json:"elementCode" gorm:"uniqueIndex:idx_reading_key"`
	Duration       string    `json:"duration" gorm:"uniqueIndex:idx_reading_key"`
	Date           string    `json:"date" gorm:"uniqueIndex:idx_reading_key"`
	UnitCode       string    `json:"unitCode"`
	Value          *float64  `json:"value"`
	UpdatedAt      time.Time `json:"updatedDate"`
}
