package db

import "basinmap/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
