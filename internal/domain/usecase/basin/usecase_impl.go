package basin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/gateway/api"
	"basinmap/internal/domain/gateway/db"
	"basinmap/internal/domain/gateway/queue"
	"basinmap/internal/domain/model"
	"basinmap/internal/domain/model/external"
	"basinmap/pkg/log"
	"basinmap/pkg/redis"
	"basinmap/pkg/util/hydro"

	"go.uber.org/zap"
)

const (
	durationDaily   = "DAILY"
	durationMonthly = "MONTHLY"
)

// Config carries the basin monitoring tunables
type Config struct {
	BasinName           string
	QueueName           string
	BatchSize           int
	HUCPrefix           string
	Networks            []string
	GageNameFilter      string
	SnowElement         string
	ReservoirElement    string
	GageElement         string
	ForecastPeriodBegin string
	ForecastPeriodEnd   string
	CenterLat           float64
	CenterLng           float64
	Zoom                int
}

type basinUseCase struct {
	config         Config
	awdbGateway    api.AwdbGateway
	basinGateway   api.BasinGateway
	stationGateway db.StationGateway
	queueSender    queue.Sender
	referenceCache *redis.Cache
	boundaryCache  *redis.Cache
	seriesCache    *redis.Cache
}

func NewBasinUseCase(
	config Config,
	awdbGateway api.AwdbGateway,
	basinGateway api.BasinGateway,
	stationGateway db.StationGateway,
	queueSender queue.Sender,
	referenceCache *redis.Cache,
	boundaryCache *redis.Cache,
	seriesCache *redis.Cache,
) UseCase {
	return &basinUseCase{
		config:         config,
		awdbGateway:    awdbGateway,
		basinGateway:   basinGateway,
		stationGateway: stationGateway,
		queueSender:    queueSender,
		referenceCache: referenceCache,
		boundaryCache:  boundaryCache,
		seriesCache:    seriesCache,
	}
}

// GetReferenceData returns the raw AWDB reference data payload, cached
func (uc *basinUseCase) GetReferenceData() (map[string]any, error) {
	var reference map[string]any
	err := uc.referenceCache.GetOrSet(context.Background(), "reference-data", &reference, func() (interface{}, error) {
		return uc.awdbGateway.GetReferenceData()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reference data: %w", err)
	}
	return reference, nil
}

// GetBoundary returns the basin boundary GeoJSON document, cached
func (uc *basinUseCase) GetBoundary() (json.RawMessage, error) {
	var boundary json.RawMessage
	err := uc.boundaryCache.GetOrSet(context.Background(), "boundary", &boundary, func() (interface{}, error) {
		return uc.basinGateway.GetBoundary()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get basin boundary: %w", err)
	}
	return boundary, nil
}

// ListStations returns a paginated list of station snapshots with filters
func (uc *basinUseCase) ListStations(page int, size int, networkCode string, hucPrefix string) (*model.Page[entity.Station], error) {
	var wg sync.WaitGroup
	var stations []entity.Station
	var totalElements int64
	var stationsErr, countErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		stations, stationsErr = uc.stationGateway.FindAll(page, size, networkCode, hucPrefix)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		totalElements, countErr = uc.stationGateway.Count(networkCode, hucPrefix)
	}()

	wg.Wait()

	if stationsErr != nil {
		return nil, fmt.Errorf("failed to find stations: %w", stationsErr)
	}
	if countErr != nil {
		return nil, fmt.Errorf("failed to count stations: %w", countErr)
	}

	return model.NewPage(stations, page, size, totalElements), nil
}

// SyncStationCatalog queries the AWDB station metadata for the configured
// basin and upserts the station snapshots
func (uc *basinUseCase) SyncStationCatalog() error {
	found, err := uc.awdbGateway.FindStations(uc.config.Networks, false)
	if err != nil {
		return fmt.Errorf("failed to search stations: %w", err)
	}

	triplets := make([]string, 0, len(found))
	for _, station := range found {
		if strings.HasPrefix(station.HUC, uc.config.HUCPrefix) {
			triplets = append(triplets, station.StationTriplet)
		}
	}

	if len(triplets) == 0 {
		log.Warnf("No stations found for HUC prefix %s", uc.config.HUCPrefix)
		return nil
	}

	catalog := make(map[string]entity.Station)

	snow, err := uc.awdbGateway.GetStationMetadata(triplets, api.StationQuery{Element: uc.config.SnowElement, Duration: durationDaily})
	if err != nil {
		log.Warnf("Failed to fetch snow station metadata: %v", err)
	}
	for _, dto := range snow {
		catalog[dto.StationTriplet] = stationEntity(dto)
	}

	reservoirs, err := uc.awdbGateway.GetStationMetadata(triplets, api.StationQuery{Element: uc.config.ReservoirElement, Duration: durationMonthly})
	if err != nil {
		log.Warnf("Failed to fetch reservoir station metadata: %v", err)
	}
	for _, dto := range reservoirs {
		catalog[dto.StationTriplet] = stationEntity(dto)
	}

	gages, err := uc.awdbGateway.GetStationMetadata(triplets, api.StationQuery{Element: uc.config.GageElement, Duration: durationMonthly})
	if err != nil {
		log.Warnf("Failed to fetch gage station metadata: %v", err)
	}
	nameFilter := strings.ToLower(uc.config.GageNameFilter)
	for _, dto := range gages {
		if nameFilter != "" && !strings.Contains(strings.ToLower(dto.Name), nameFilter) {
			continue
		}
		catalog[dto.StationTriplet] = stationEntity(dto)
	}

	stations := make([]entity.Station, 0, len(catalog))
	for _, station := range catalog {
		stations = append(stations, station)
	}

	if err := uc.stationGateway.UpsertStations(stations); err != nil {
		return fmt.Errorf("failed to upsert station catalog: %w", err)
	}

	log.Infof("Station catalog synced: %d stations for basin %s", len(stations), uc.config.BasinName)
	return nil
}

// stationEntity maps an AWDB station DTO to a snapshot entity
func stationEntity(dto external.StationDTO) entity.Station {
	return entity.Station{
		StationTriplet:  dto.StationTriplet,
		StationID:       dto.StationID,
		StateCode:       dto.StateCode,
		NetworkCode:     dto.NetworkCode,
		Name:            dto.Name,
		CountyName:      dto.CountyName,
		HUC:             dto.HUC,
		Elevation:       dto.Elevation,
		Latitude:        dto.Latitude,
		Longitude:       dto.Longitude,
		IsForecastPoint: dto.ForecastPoint != nil,
		IsReservoir:     dto.ReservoirMetadata != nil,
	}
}

// elementFor picks the element and duration queried for a station
func (uc *basinUseCase) elementFor(station entity.Station) (string, string) {
	switch {
	case station.IsReservoir:
		return uc.config.ReservoirElement, durationMonthly
	case station.NetworkCode == "SNTL":
		return uc.config.SnowElement, durationDaily
	default:
		return uc.config.GageElement, durationMonthly
	}
}

// GetStationSeries returns the water-year observation table for a station
func (uc *basinUseCase) GetStationSeries(triplet string) (*model.Series, error) {
	station, err := uc.stationGateway.FindByTriplet(triplet)
	if err != nil {
		return nil, fmt.Errorf("failed to find station: %w", err)
	}
	if station == nil {
		return nil, errors.New("station not found")
	}

	return uc.stationSeries(*station), nil
}

// stationSeries fetches the water-year series for a station, preferring the
// cache, falling back to stored snapshots when the upstream call fails
func (uc *basinUseCase) stationSeries(station entity.Station) *model.Series {
	element, duration := uc.elementFor(station)

	var series model.Series
	err := uc.seriesCache.GetOrSet(context.Background(), station.StationTriplet, &series, func() (interface{}, error) {
		return uc.fetchSeries(station.StationTriplet, element, duration)
	})
	if err == nil {
		return &series
	}

	log.Warnf("Series fetch failed for station %s, serving snapshot: %v", station.StationTriplet, err)

	readings, err := uc.stationGateway.FindReadings(station.StationTriplet)
	if err != nil || len(readings) == 0 {
		return &model.Series{
			StationTriplet: station.StationTriplet,
			ElementCode:    element,
			Duration:       duration,
			Label:          model.SeriesLabel(element, ""),
			Points:         []model.SeriesPoint{},
		}
	}

	return seriesFromReadings(station.StationTriplet, readings)
}

// fetchSeries queries the AWDB data endpoint for the current water year
func (uc *basinUseCase) fetchSeries(triplet string, element string, duration string) (*model.Series, error) {
	beginDate, endDate := hydro.WaterYearWindow(time.Now())

	dto, err := uc.awdbGateway.GetData(triplet, element, duration, beginDate, endDate)
	if err != nil {
		return nil, err
	}

	return seriesFromData(triplet, element, duration, dto), nil
}

// GetStationForecasts returns the melted seasonal forecast table for a station
func (uc *basinUseCase) GetStationForecasts(triplet string) (*model.ForecastTable, error) {
	station, err := uc.stationGateway.FindByTriplet(triplet)
	if err != nil {
		return nil, fmt.Errorf("failed to find station: %w", err)
	}
	if station == nil {
		return nil, errors.New("station not found")
	}

	return uc.stationForecasts(*station), nil
}

// stationForecasts fetches and melts forecasts, falling back to snapshots
func (uc *basinUseCase) stationForecasts(station entity.Station) *model.ForecastTable {
	table, err := uc.fetchForecasts(station.StationTriplet)
	if err == nil {
		return table
	}

	log.Warnf("Forecast fetch failed for station %s, serving snapshot: %v", station.StationTriplet, err)

	forecasts, err := uc.stationGateway.FindForecasts(station.StationTriplet)
	if err != nil || len(forecasts) == 0 {
		return &model.ForecastTable{
			StationTriplet: station.StationTriplet,
			PeriodBegin:    uc.config.ForecastPeriodBegin,
			PeriodEnd:      uc.config.ForecastPeriodEnd,
			Rows:           []model.ForecastRow{},
		}
	}

	return tableFromForecastEntities(station.StationTriplet, forecasts)
}

// fetchForecasts queries the AWDB forecasts endpoint for the current water year
func (uc *basinUseCase) fetchForecasts(triplet string) (*model.ForecastTable, error) {
	beginDate, endDate := hydro.WaterYearWindow(time.Now())

	dto, err := uc.awdbGateway.GetForecasts(triplet, uc.config.GageElement, beginDate, endDate)
	if err != nil {
		return nil, err
	}

	return meltForecasts(triplet, uc.config.ForecastPeriodBegin, uc.config.ForecastPeriodEnd, dto), nil
}

// BuildMap assembles the full map view
func (uc *basinUseCase) BuildMap() (*model.MapView, error) {
	view := &model.MapView{
		BasinName: uc.config.BasinName,
		CenterLat: uc.config.CenterLat,
		CenterLng: uc.config.CenterLng,
		Zoom:      uc.config.Zoom,
		Markers:   []model.MapMarker{},
	}

	boundary, err := uc.GetBoundary()
	if err != nil {
		log.Warnf("Basin boundary unavailable, rendering map without overlay: %v", err)
	} else {
		view.Boundary = boundary
	}

	var lastTriplet string
	for {
		stations, err := uc.stationGateway.FindAllWithKeysetPagination(lastTriplet, uc.config.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list stations for map: %w", err)
		}
		if len(stations) == 0 {
			break
		}

		for _, station := range stations {
			view.Markers = append(view.Markers, uc.buildMarker(station))
		}

		lastTriplet = stations[len(stations)-1].StationTriplet
	}

	return view, nil
}

// buildMarker builds one station marker with its popup chart spec
func (uc *basinUseCase) buildMarker(station entity.Station) model.MapMarker {
	marker := model.MapMarker{
		StationTriplet: station.StationTriplet,
		Name:           station.Name,
		NetworkCode:    station.NetworkCode,
		Latitude:       station.Latitude,
		Longitude:      station.Longitude,
		Elevation:      station.Elevation,
		Icon:           model.NetworkIcon(station.NetworkCode),
		Color:          model.NetworkColor(station.NetworkCode),
	}

	if station.IsForecastPoint {
		table := uc.stationForecasts(station)
		observed := cumulativeSeasonVolume(uc.stationSeries(station), uc.config.ForecastPeriodBegin, uc.config.ForecastPeriodEnd)
		if table.IsEmpty() && observed.IsEmpty() {
			return marker
		}
		marker.HasData = true
		marker.ChartSpec = model.ForecastLayerSpec(table, observed)
		return marker
	}

	series := uc.stationSeries(station)
	if series.IsEmpty() {
		return marker
	}

	marker.HasData = true
	if station.NetworkCode == "SNTL" {
		marker.ChartSpec = model.DailyLineSpec(series)
	} else {
		marker.ChartSpec = model.MonthlyBarSpec(series)
	}
	return marker
}

// RefreshStation fetches fresh observations and forecasts for one station
// and replaces its snapshots. Observations are mandatory, forecasts are
// refreshed only for forecast points and never fail the refresh.
func (uc *basinUseCase) RefreshStation(station entity.Station) error {
	if station.StationTriplet == "" {
		return errors.New("station triplet is required")
	}

	element, duration := uc.elementFor(station)

	series, err := uc.fetchSeries(station.StationTriplet, element, duration)
	if err != nil {
		return fmt.Errorf("failed to fetch series for station %s: %w", station.StationTriplet, err)
	}

	if err := uc.stationGateway.ReplaceReadings(station.StationTriplet, readingEntities(series)); err != nil {
		return fmt.Errorf("failed to replace readings for station %s: %w", station.StationTriplet, err)
	}

	if err := uc.seriesCache.Set(context.Background(), station.StationTriplet, series); err != nil {
		log.Warnf("Failed to refresh series cache for station %s: %v", station.StationTriplet, err)
	}

	if station.IsForecastPoint {
		table, err := uc.fetchForecasts(station.StationTriplet)
		if err != nil {
			log.Warnf("Forecast refresh failed for station %s: %v", station.StationTriplet, err)
		} else if err := uc.stationGateway.ReplaceForecasts(station.StationTriplet, forecastEntities(table)); err != nil {
			log.Warnf("Failed to replace forecasts for station %s: %v", station.StationTriplet, err)
		}
	}

	log.Infof("Successfully refreshed station %s (%d observations)", station.StationTriplet, len(series.Points))
	return nil
}

// EnqueueRefreshAll enqueues every stored station for refresh in batches
func (uc *basinUseCase) EnqueueRefreshAll() {
	ctx := context.Background()
	page := 0

	for {
		stations, err := uc.stationGateway.FindAll(page, uc.config.BatchSize, "", "")
		if err != nil {
			log.Warnf("Failed to fetch stations for page %d: %v", page, err)
			break
		}

		if len(stations) == 0 {
			break
		}

		messages := make([]queue.BatchMessage, len(stations))
		for i, station := range stations {
			messages[i] = queue.BatchMessage{
				MessageID: fmt.Sprintf("station-%d-%d", page, i),
				Body:      station,
			}
		}

		result, err := uc.queueSender.SendMessageBatch(ctx, uc.config.QueueName, messages)
		if err != nil {
			log.Warnf("Failed to send batch for page %d: %v", page, err)
		} else {
			log.Infof("Successfully enqueued %d stations, failed %d stations for page %d",
				len(result.Successful), len(result.Failed), page)
		}

		page++
	}

	log.Infof("Completed batch enqueuing all stations. Total pages processed: %d", page)
}

// RefreshAllScheduled enqueues every stored station for refresh using
// key-set pagination, tagged with the scheduler request id
func (uc *basinUseCase) RefreshAllScheduled(requestID string) error {
	log.Info("Starting scheduled station refresh with key-set pagination", zap.String("request_id", requestID))

	ctx := context.Background()
	var lastTriplet string
	totalProcessed := 0
	totalEnqueued := 0
	totalFailed := 0

	for {
		stations, err := uc.stationGateway.FindAllWithKeysetPagination(lastTriplet, uc.config.BatchSize)
		if err != nil {
			log.Error("Failed to fetch stations with key-set pagination",
				zap.String("request_id", requestID),
				zap.String("last_triplet", lastTriplet),
				zap.Error(err))
			return fmt.Errorf("failed to fetch stations with key-set pagination (lastTriplet: %s): %w", lastTriplet, err)
		}

		if len(stations) == 0 {
			break
		}

		totalProcessed += len(stations)

		messages := make([]queue.BatchMessage, len(stations))
		for i, station := range stations {
			messages[i] = queue.BatchMessage{
				MessageID: fmt.Sprintf("scheduled-%s-station-%d", requestID, totalProcessed-len(stations)+i),
				Body:      station,
			}
		}

		result, err := uc.queueSender.SendMessageBatch(ctx, uc.config.QueueName, messages)
		if err != nil {
			log.Warn("Failed to send batch",
				zap.String("request_id", requestID),
				zap.String("last_triplet", lastTriplet),
				zap.Error(err))
			totalFailed += len(stations)
		} else {
			totalEnqueued += len(result.Successful)
			totalFailed += len(result.Failed)
			for _, failedID := range result.Failed {
				log.Warn("Failed to enqueue station",
					zap.String("request_id", requestID),
					zap.String("message_id", failedID))
			}
		}

		lastTriplet = stations[len(stations)-1].StationTriplet
	}

	log.Info("Completed scheduled station refresh",
		zap.String("request_id", requestID),
		zap.Int("total_processed", totalProcessed),
		zap.Int("total_enqueued", totalEnqueued),
		zap.Int("total_failed", totalFailed))
	return nil
}
