package entity

import "time"

// Forecast is one melted forecast value: the forecast for a single
// exceedance probability published on PublicationDate.
type Forecast struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	StationTriplet  string    `json:"stationTriplet" gorm:"column:station_triplet;uniqueIndex:idx_forecast_key"`
	ElementCode     string    `json:"elementCode" gorm:"uniqueIndex:idx_forecast_key"`
	PublicationDate string    `json:"publicationDate" gorm:"uniqueIndex:idx_forecast_key"`
	Exceedance      string    `json:"exceedance" gorm:"uniqueIndex:idx_forecast_key"`
	Value           float64   `json:"value"`
	UnitCode        string    `json:"unitCode"`
	PeriodBegin     string    `json:"periodBegin"`
	PeriodEnd       string    `json:"periodEnd"`
	UpdatedAt       time.Time `json:"updatedDate"`
}
