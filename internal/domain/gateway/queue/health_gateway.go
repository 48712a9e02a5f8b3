package queue

import "basinmap/internal/domain/model"

type HealthQueueGateway interface {
	Health() model.ComponentHealthStatus
}
