package db

import (
	"basinmap/internal/domain/entity"
)

// StationGateway persists station snapshots and their observed data
type StationGateway interface {
	// Station catalog operations
	FindAll(page int, size int, networkCode string, hucPrefix string) ([]entity.Station, error)
	Count(networkCode string, hucPrefix string) (int64, error)
	FindAllWithKeysetPagination(lastTriplet string, size int) ([]entity.Station, error)
	FindByTriplet(triplet string) (*entity.Station, error)
	UpsertStations(stations []entity.Station) error
	DeleteByTriplet(triplet string) error

	// Reading snapshot operations
	FindReadings(triplet string) ([]entity.Reading, error)
	ReplaceReadings(triplet string, readings []entity.Reading) error

	// Forecast snapshot operations
	FindForecasts(triplet string) ([]entity.Forecast, error)
	ReplaceForecasts(triplet string, forecasts []entity.Forecast) error
}
