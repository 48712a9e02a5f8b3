package cache

import (
	"context"
	"strconv"
	"time"

	"basinmap/internal/domain/model"
	"basinmap/pkg/redis"
)

type HealthCacheGateway interface {
	Health() model.ComponentHealthStatus
}

// RedisHealthGateway reports cache health by exercising the Redis
// connection and collecting rate limiter metrics.
type RedisHealthGateway struct {
	client   *redis.Client
	limiters map[string]*redis.RateLimiter
}

var _ HealthCacheGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{
		client:   client,
		limiters: make(map[string]*redis.RateLimiter),
	}
}

// RegisterRateLimiter adds a rate limiter whose metrics are reported in the health details
func (gateway *RedisHealthGateway) RegisterRateLimiter(name string, limiter *redis.RateLimiter) {
	gateway.limiters[name] = limiter
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := redis.HealthCheck(ctx, gateway.client); err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"message": err.Error(),
			},
		}
	}

	config := gateway.client.GetConfig()
	details := map[string]string{
		"message":  string(model.StatusUp),
		"host":     config.Host,
		"port":     strconv.Itoa(config.Port),
		"database": strconv.Itoa(config.Database),
	}

	for name, limiter := range gateway.limiters {
		metrics, err := limiter.GetMetrics(ctx)
		if err != nil {
			continue
		}
		for key, value := range metrics {
			details[name+"_"+key] = value
		}
	}

	return model.ComponentHealthStatus{
		Status:  model.StatusUp,
		Details: details,
	}
}
