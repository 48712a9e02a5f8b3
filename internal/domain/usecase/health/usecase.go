package health

import "basinmap/internal/domain/model"

type UseCase interface {
	// CheckHealth aggregates the health of every application component
	CheckHealth() model.HealthResponse
}
