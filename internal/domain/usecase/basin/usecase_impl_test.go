package basin

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/gateway/api"
	"basinmap/internal/domain/gateway/queue"
	"basinmap/internal/domain/model/external"
	"basinmap/pkg/redis"
)

type fakeAwdbGateway struct {
	stations     []external.StationDTO
	stationsErr  error
	metadata     map[string][]external.StationDTO
	metadataErrs map[string]error
	queries      []api.StationQuery
}

func (f *fakeAwdbGateway) GetReferenceData() (map[string]any, error) {
	return nil, errors.New("not used")
}

func (f *fakeAwdbGateway) FindStations(networks []string, activeOnly bool) ([]external.StationDTO, error) {
	return f.stations, f.stationsErr
}

func (f *fakeAwdbGateway) GetStationMetadata(stationTriplets []string, query api.StationQuery) ([]external.StationDTO, error) {
	f.queries = append(f.queries, query)
	if err := f.metadataErrs[query.Element]; err != nil {
		return nil, err
	}
	return f.metadata[query.Element], nil
}

func (f *fakeAwdbGateway) GetData(stationTriplet string, elements string, duration string, beginDate string, endDate string) (*external.StationDataDTO, error) {
	return nil, errors.New("data endpoint unavailable")
}

func (f *fakeAwdbGateway) GetForecasts(stationTriplet string, elementCodes string, beginPublicationDate string, endPublicationDate string) (*external.StationForecastsDTO, error) {
	return nil, errors.New("forecast endpoint unavailable")
}

type fakeBasinGateway struct {
	boundary json.RawMessage
	err      error
}

func (f *fakeBasinGateway) GetBoundary() (json.RawMessage, error) {
	return f.boundary, f.err
}

type fakeStationGateway struct {
	pages    [][]entity.Station
	keyset   map[string][]entity.Station
	upserted []entity.Station
}

func (f *fakeStationGateway) FindAll(page int, size int, networkCode string, hucPrefix string) ([]entity.Station, error) {
	if page >= len(f.pages) {
		return nil, nil
	}
	return f.pages[page], nil
}

func (f *fakeStationGateway) Count(networkCode string, hucPrefix string) (int64, error) {
	total := 0
	for _, p := range f.pages {
		total += len(p)
	}
	return int64(total), nil
}

func (f *fakeStationGateway) FindAllWithKeysetPagination(lastTriplet string, size int) ([]entity.Station, error) {
	return f.keyset[lastTriplet], nil
}

func (f *fakeStationGateway) FindByTriplet(triplet string) (*entity.Station, error) {
	return nil, nil
}

func (f *fakeStationGateway) UpsertStations(stations []entity.Station) error {
	f.upserted = stations
	return nil
}

func (f *fakeStationGateway) DeleteByTriplet(triplet string) error { return nil }

func (f *fakeStationGateway) FindReadings(triplet string) ([]entity.Reading, error) {
	return nil, nil
}

func (f *fakeStationGateway) ReplaceReadings(triplet string, readings []entity.Reading) error {
	return nil
}

func (f *fakeStationGateway) FindForecasts(triplet string) ([]entity.Forecast, error) {
	return nil, nil
}

func (f *fakeStationGateway) ReplaceForecasts(triplet string, forecasts []entity.Forecast) error {
	return nil
}

type fakeSender struct {
	batches [][]queue.BatchMessage
	err     error
}

func (f *fakeSender) SendMessage(ctx context.Context, queueName string, body any) error {
	return f.err
}

func (f *fakeSender) SendMessageBatch(ctx context.Context, queueName string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, messages)
	ids := make([]string, len(messages))
	for i, m := range messages {
		ids[i] = m.MessageID
	}
	return &queue.BatchResult{Successful: ids}, nil
}

func testConfig() Config {
	return Config{
		BasinName:           "Roaring Fork",
		QueueName:           "refresh",
		BatchSize:           2,
		HUCPrefix:           "14010004",
		Networks:            []string{"SNTL", "USGS", "BOR"},
		GageNameFilter:      "roaring",
		SnowElement:         "WTEQ",
		ReservoirElement:    "RESC",
		GageElement:         "SRVO",
		ForecastPeriodBegin: "04-01",
		ForecastPeriodEnd:   "07-31",
	}
}

func TestSyncStationCatalog(t *testing.T) {
	reservoir := &external.ReservoirMetadataDTO{ElevationAtCapacity: 7000}
	awdb := &fakeAwdbGateway{
		stations: []external.StationDTO{
			{StationTriplet: "380:CO:SNTL", HUC: "140100040101"},
			{StationTriplet: "999:CO:SNTL", HUC: "100200030101"}, // outside basin
			{StationTriplet: "09081600:CO:USGS", HUC: "140100040202"},
			{StationTriplet: "1999:CO:BOR", HUC: "140100040303"},
		},
		metadata: map[string][]external.StationDTO{
			"WTEQ": {{StationTriplet: "380:CO:SNTL", NetworkCode: "SNTL", Name: "Independence Pass", HUC: "140100040101"}},
			"RESC": {{StationTriplet: "1999:CO:BOR", NetworkCode: "BOR", Name: "Ruedi Reservoir", HUC: "140100040303", ReservoirMetadata: reservoir}},
			"SRVO": {
				{StationTriplet: "09081600:CO:USGS", NetworkCode: "USGS", Name: "ROARING FORK NR ASPEN", HUC: "140100040202"},
				{StationTriplet: "09085000:CO:USGS", NetworkCode: "USGS", Name: "COLORADO RIVER", HUC: "140100040404"},
			},
		},
		metadataErrs: map[string]error{},
	}
	store := &fakeStationGateway{}

	uc := NewBasinUseCase(testConfig(), awdb, nil, store, nil, nil, nil, nil)

	if err := uc.SyncStationCatalog(); err != nil {
		t.Fatalf("SyncStationCatalog() = %v", err)
	}

	// the gage outside the name filter is dropped, the out-of-basin
	// station never reaches the metadata queries
	if len(store.upserted) != 3 {
		t.Fatalf("upserted = %d stations; want 3", len(store.upserted))
	}

	byTriplet := make(map[string]entity.Station)
	for _, s := range store.upserted {
		byTriplet[s.StationTriplet] = s
	}
	if _, ok := byTriplet["09085000:CO:USGS"]; ok {
		t.Errorf("gage outside the name filter should be dropped")
	}
	if !byTriplet["1999:CO:BOR"].IsReservoir {
		t.Errorf("reservoir metadata should mark the station as reservoir")
	}

	// three metadata queries: snow daily, reservoir monthly, gage monthly
	if len(awdb.queries) != 3 {
		t.Fatalf("metadata queries = %d; want 3", len(awdb.queries))
	}
	if awdb.queries[0].Element != "WTEQ" || awdb.queries[0].Duration != "DAILY" {
		t.Errorf("first query = %+v; want WTEQ DAILY", awdb.queries[0])
	}
	if awdb.queries[1].Element != "RESC" || awdb.queries[1].Duration != "MONTHLY" {
		t.Errorf("second query = %+v; want RESC MONTHLY", awdb.queries[1])
	}
}

func TestSyncStationCatalogDegradesOnMetadataFailure(t *testing.T) {
	awdb := &fakeAwdbGateway{
		stations: []external.StationDTO{
			{StationTriplet: "380:CO:SNTL", HUC: "140100040101"},
		},
		metadata: map[string][]external.StationDTO{
			"WTEQ": {{StationTriplet: "380:CO:SNTL", NetworkCode: "SNTL", Name: "Independence Pass", HUC: "140100040101"}},
		},
		metadataErrs: map[string]error{
			"RESC": errors.New("upstream down"),
			"SRVO": errors.New("upstream down"),
		},
	}
	store := &fakeStationGateway{}

	uc := NewBasinUseCase(testConfig(), awdb, nil, store, nil, nil, nil, nil)

	if err := uc.SyncStationCatalog(); err != nil {
		t.Fatalf("SyncStationCatalog() = %v; failed metadata queries must not fail the sync", err)
	}
	if len(store.upserted) != 1 {
		t.Errorf("upserted = %d stations; want 1", len(store.upserted))
	}
}

func TestSyncStationCatalogSearchFailure(t *testing.T) {
	awdb := &fakeAwdbGateway{stationsErr: errors.New("upstream down")}
	uc := NewBasinUseCase(testConfig(), awdb, nil, &fakeStationGateway{}, nil, nil, nil, nil)

	if err := uc.SyncStationCatalog(); err == nil {
		t.Fatalf("expected error when the station search fails")
	}
}

func TestEnqueueRefreshAll(t *testing.T) {
	store := &fakeStationGateway{
		pages: [][]entity.Station{
			{{StationTriplet: "380:CO:SNTL"}, {StationTriplet: "1999:CO:BOR"}},
			{{StationTriplet: "09081600:CO:USGS"}},
		},
	}
	sender := &fakeSender{}

	uc := NewBasinUseCase(testConfig(), nil, nil, store, sender, nil, nil, nil)
	uc.EnqueueRefreshAll()

	if len(sender.batches) != 2 {
		t.Fatalf("batches = %d; want 2", len(sender.batches))
	}
	if sender.batches[0][0].MessageID != "station-0-0" {
		t.Errorf("message id = %q; want station-0-0", sender.batches[0][0].MessageID)
	}
}

func TestRefreshAllScheduled(t *testing.T) {
	store := &fakeStationGateway{
		keyset: map[string][]entity.Station{
			"":            {{StationTriplet: "09081600:CO:USGS"}, {StationTriplet: "1999:CO:BOR"}},
			"1999:CO:BOR": {{StationTriplet: "380:CO:SNTL"}},
		},
	}
	sender := &fakeSender{}

	uc := NewBasinUseCase(testConfig(), nil, nil, store, sender, nil, nil, nil)

	if err := uc.RefreshAllScheduled("req-1"); err != nil {
		t.Fatalf("RefreshAllScheduled() = %v", err)
	}
	if len(sender.batches) != 2 {
		t.Fatalf("batches = %d; want 2", len(sender.batches))
	}
	if sender.batches[1][0].MessageID != "scheduled-req-1-station-2" {
		t.Errorf("message id = %q; want scheduled-req-1-station-2", sender.batches[1][0].MessageID)
	}
}

// unreachableCache returns a cache backed by a Redis nobody listens on, so
// every read misses and every write fails without blocking the caller
func unreachableCache(name string) *redis.Cache {
	client := redis.NewClient(redis.NewRedisConfig().WithHost("127.0.0.1").WithPort(1))
	return redis.NewCache(client, redis.NewCacheOptions().WithCacheName(name))
}

func TestBuildMapDegradesOnFetchFailure(t *testing.T) {
	awdb := &fakeAwdbGateway{}
	boundary := &fakeBasinGateway{err: errors.New("boundary host unreachable")}
	store := &fakeStationGateway{
		keyset: map[string][]entity.Station{
			"": {
				{StationTriplet: "380:CO:SNTL", Name: "Independence Pass", NetworkCode: "SNTL", Latitude: 39.07, Longitude: -106.61},
				{StationTriplet: "09081600:CO:USGS", Name: "ROARING FORK NR ASPEN", NetworkCode: "USGS", IsForecastPoint: true},
			},
		},
	}

	uc := NewBasinUseCase(testConfig(), awdb, boundary, store, nil,
		nil, unreachableCache("boundary"), unreachableCache("series"))

	view, err := uc.BuildMap()
	if err != nil {
		t.Fatalf("BuildMap() = %v; upstream failures must not abort the map", err)
	}

	if view.Boundary != nil {
		t.Errorf("boundary should be omitted when its fetch fails")
	}
	if len(view.Markers) != 2 {
		t.Fatalf("markers = %d; want one per station even when every fetch fails", len(view.Markers))
	}

	for _, marker := range view.Markers {
		if marker.HasData {
			t.Errorf("marker %s reports data after its fetches failed", marker.StationTriplet)
		}
		if marker.ChartSpec != nil {
			t.Errorf("marker %s carries a chart spec without data", marker.StationTriplet)
		}
	}

	// markers keep their identity so the page still renders them
	if view.Markers[0].Icon != "cloud" || view.Markers[0].Color != "blue" {
		t.Errorf("marker icon/color = %s/%s; want cloud/blue for SNTL",
			view.Markers[0].Icon, view.Markers[0].Color)
	}
	if view.Markers[1].Name != "ROARING FORK NR ASPEN" {
		t.Errorf("marker name = %q; want the stored station name", view.Markers[1].Name)
	}
}

func TestRefreshStationRequiresTriplet(t *testing.T) {
	uc := NewBasinUseCase(testConfig(), nil, nil, &fakeStationGateway{}, nil, nil, nil, nil)

	if err := uc.RefreshStation(entity.Station{}); err == nil {
		t.Fatalf("expected error for empty station triplet")
	}
}
