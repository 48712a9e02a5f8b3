package entity

import "time"

// Station is a snapshot of AWDB station metadata for the monitored basin
type Station struct {
	StationTriplet  string    `json:"stationTriplet" gorm:"primaryKey;column:station_triplet"`
	StationID       string    `json:"stationId" gorm:"column:station_id"`
	StateCode       string    `json:"stateCode"`
	NetworkCode     string    `json:"networkCode" gorm:"index"`
	Name            string    `json:"name"`
	CountyName      string    `json:"countyName"`
	HUC             string    `json:"huc" gorm:"column:huc;index"`
	Elevation       float64   `json:"elevation"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	IsForecastPoint bool      `json:"isForecastPoint"`
	IsReservoir     bool      `json:"isReservoir"`
	CreatedAt       time.Time `json:"createdDate"`
	UpdatedAt       time.Time `json:"updatedDate"`

	Readings  []Reading  `json:"readings,omitempty" gorm:"foreignKey:StationTriplet;references:StationTriplet"`
	Forecasts []Forecast `json:"forecasts,omitempty" gorm:"foreignKey:StationTriplet;references:StationTriplet"`
}
