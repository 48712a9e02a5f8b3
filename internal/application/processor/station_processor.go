package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/usecase/basin"
	"basinmap/pkg/log"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// StationProcessor consumes refresh messages and updates station snapshots
type StationProcessor struct {
	basinUseCase basin.UseCase
}

func NewStationProcessor(basinUseCase basin.UseCase) *StationProcessor {
	return &StationProcessor{
		basinUseCase: basinUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *StationProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return fmt.Errorf("received message with nil body")
	}

	log.Infof("Processing station refresh message: %s", safeID(msg))

	var station entity.Station
	if err := json.Unmarshal([]byte(*msg.Body), &station); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if err := p.basinUseCase.RefreshStation(station); err != nil {
		return fmt.Errorf("failed to refresh station %s: %w", station.StationTriplet, err)
	}

	log.Infof("Successfully processed refresh for station: %s", station.StationTriplet)
	return nil
}

func safeID(msg types.Message) string {
	if msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}
