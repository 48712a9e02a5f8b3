package basin

import (
	"encoding/json"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/model"
)

type UseCase interface {
	// BuildMap assembles the full map view: boundary overlay plus one marker
	// per monitored station with its popup chart spec
	BuildMap() (*model.MapView, error)

	// GetBoundary returns the basin boundary GeoJSON document
	GetBoundary() (json.RawMessage, error)

	// GetReferenceData returns the raw AWDB reference data payload
	GetReferenceData() (map[string]any, error)

	// ListStations returns a paginated list of station snapshots with filters
	ListStations(page int, size int, networkCode string, hucPrefix string) (*model.Page[entity.Station], error)

	// GetStationSeries returns the water-year observation table for a station
	GetStationSeries(triplet string) (*model.Series, error)

	// GetStationForecasts returns the melted seasonal forecast table for a station
	GetStationForecasts(triplet string) (*model.ForecastTable, error)

	// SyncStationCatalog queries the AWDB station metadata for the configured
	// basin and upserts the station snapshots
	SyncStationCatalog() error

	// RefreshStation fetches fresh observations and forecasts for one station
	// and replaces its snapshots
	RefreshStation(station entity.Station) error

	// EnqueueRefreshAll enqueues every stored station for refresh in batches
	EnqueueRefreshAll()

	// RefreshAllScheduled enqueues every stored station for refresh using
	// key-set pagination, tagged with the scheduler request id
	RefreshAllScheduled(requestID string) error
}
