package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type fakeUseCase struct {
	refreshed  []entity.Station
	refreshErr error
}

func (f *fakeUseCase) BuildMap() (*model.MapView, error)           { return nil, nil }
func (f *fakeUseCase) GetBoundary() (json.RawMessage, error)       { return nil, nil }
func (f *fakeUseCase) GetReferenceData() (map[string]any, error)   { return nil, nil }
func (f *fakeUseCase) SyncStationCatalog() error                   { return nil }
func (f *fakeUseCase) EnqueueRefreshAll()                          {}
func (f *fakeUseCase) RefreshAllScheduled(requestID string) error  { return nil }
func (f *fakeUseCase) GetStationSeries(triplet string) (*model.Series, error) {
	return nil, nil
}
func (f *fakeUseCase) GetStationForecasts(triplet string) (*model.ForecastTable, error) {
	return nil, nil
}
func (f *fakeUseCase) ListStations(page int, size int, networkCode string, hucPrefix string) (*model.Page[entity.Station], error) {
	return nil, nil
}

func (f *fakeUseCase) RefreshStation(station entity.Station) error {
	f.refreshed = append(f.refreshed, station)
	return f.refreshErr
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes the station from the message body", func(t *testing.T) {
		useCase := &fakeUseCase{}
		p := NewStationProcessor(useCase)

		msg := types.Message{
			MessageId: aws.String("m1"),
			Body:      aws.String(`{"stationTriplet": "380:CO:SNTL", "networkCode": "SNTL"}`),
		}

		if err := p.HandleMessage(ctx, msg); err != nil {
			t.Fatalf("HandleMessage() = %v", err)
		}
		if len(useCase.refreshed) != 1 || useCase.refreshed[0].StationTriplet != "380:CO:SNTL" {
			t.Errorf("refreshed = %+v; want the decoded station", useCase.refreshed)
		}
	})

	t.Run("rejects nil body", func(t *testing.T) {
		p := NewStationProcessor(&fakeUseCase{})

		if err := p.HandleMessage(ctx, types.Message{}); err == nil {
			t.Errorf("expected error for nil body")
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		p := NewStationProcessor(&fakeUseCase{})

		msg := types.Message{Body: aws.String(`not json`)}
		if err := p.HandleMessage(ctx, msg); err == nil {
			t.Errorf("expected error for malformed body")
		}
	})

	t.Run("propagates refresh failures so the message is retried", func(t *testing.T) {
		useCase := &fakeUseCase{refreshErr: errors.New("upstream down")}
		p := NewStationProcessor(useCase)

		msg := types.Message{Body: aws.String(`{"stationTriplet": "380:CO:SNTL"}`)}
		if err := p.HandleMessage(ctx, msg); err == nil {
			t.Errorf("expected the handler to propagate the failure")
		}
	})
}
