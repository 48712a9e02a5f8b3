package api

import (
	"basinmap/internal/domain/model/external"
)

// StationQuery describes one metadata lookup against the stations endpoint
type StationQuery struct {
	Element  string
	Duration string
}

// AwdbGateway talks to the AWDB water data API
type AwdbGateway interface {
	// GetReferenceData returns the raw reference data payload
	GetReferenceData() (map[string]any, error)

	// FindStations searches stations by network wildcard triplets.
	// When activeOnly is false the activeOnly=false parameter is appended.
	FindStations(networks []string, activeOnly bool) ([]external.StationDTO, error)

	// GetStationMetadata returns full metadata (station elements, forecast
	// point and reservoir metadata) for stations matching the triplets and
	// measuring the given element at the given duration.
	GetStationMetadata(stationTriplets []string, query StationQuery) ([]external.StationDTO, error)

	// GetData returns observations for one station between beginDate and
	// endDate (first element of the response array, nil when absent).
	GetData(stationTriplet string, elements string, duration string, beginDate string, endDate string) (*external.StationDataDTO, error)

	// GetForecasts returns forecasts for one station published between the
	// given dates (first element of the response array, nil when absent).
	GetForecasts(stationTriplet string, elementCodes string, beginPublicationDate string, endPublicationDate string) (*external.StationForecastsDTO, error)
}
