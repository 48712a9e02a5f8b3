package main

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "basinmap/configs"
	_ "basinmap/docs"
	"basinmap/internal/application/controller"
	"basinmap/internal/application/middleware"
	"basinmap/internal/application/processor"
	"basinmap/internal/application/schedule"
	"basinmap/internal/application/views"
	gatewayapi "basinmap/internal/domain/gateway/api"
	"basinmap/internal/domain/gateway/cache"
	"basinmap/internal/domain/gateway/db"
	"basinmap/internal/domain/gateway/queue"
	"basinmap/internal/domain/usecase/basin"
	"basinmap/internal/domain/usecase/health"
	"basinmap/internal/infra/aws"
	"basinmap/internal/infra/database/gorm"
	"basinmap/internal/infra/database/sqldb"
	"basinmap/pkg/http"
	"basinmap/pkg/log"
	"basinmap/pkg/msg"
	"basinmap/pkg/redis"
	"basinmap/pkg/resource"
	"basinmap/pkg/sqs"
)

// @title Basin Map API
// @version 1.0
// @description Watershed monitoring service with an interactive basin map
// @BasePath /basinmap
func main() {
	log.Info(msg.GetMessage("app.start"))

	ctx := context.Background()

	if err := views.LoadTemplates(); err != nil {
		log.Fatalf("Fail to load view templates: %v", err)
	}

	// Init infra
	e := echo.New()
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	redisConfig := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL("reference", resource.GetDuration("app.cache.reference-ttl")).
		WithCacheTTL("boundary", resource.GetDuration("app.cache.boundary-ttl")).
		WithCacheTTL("series", resource.GetDuration("app.cache.series-ttl"))
	redisClient := redis.NewClient(redisConfig)

	referenceCache := redis.NewCache(redisClient, redis.NewCacheOptions().WithCacheName("reference"))
	boundaryCache := redis.NewCache(redisClient, redis.NewCacheOptions().WithCacheName("boundary"))
	seriesCache := redis.NewCache(redisClient, redis.NewCacheOptions().WithCacheName("series"))

	sqsClient := aws.NewSqsClient()
	queueSender := aws.NewSQSSenderAdapter(sqsClient)

	// Init Gateways
	clientOptions := http.ClientOptions{
		Backoff: http.NewBackoffConfig(),
		Logger:  http.NewZapHTTPLogger(),
	}
	awdbGateway := gatewayapi.NewAwdbGateway(resource.GetString("app.awdb.base-url"), clientOptions)
	basinGateway := gatewayapi.NewBasinGateway(resource.GetString("app.awdb.boundary-url"), clientOptions)
	stationGateway := db.NewGormStationGateway(gorm.Db)

	dbHealthGateway := db.NewSQLHealthDBGateway(sqldb.Db)
	cacheHealthGateway := cache.NewRedisHealthGateway(redisClient)
	queueHealthGateway := queue.NewQueueHealthGateway()

	// Init UseCases
	basinConfig := basin.Config{
		BasinName:           resource.GetString("app.basin.name"),
		QueueName:           resource.GetString("app.refresh.queue-name"),
		BatchSize:           resource.GetInt("app.refresh.batch-size"),
		HUCPrefix:           resource.GetString("app.basin.huc"),
		Networks:            strings.Split(resource.GetString("app.basin.networks"), ","),
		GageNameFilter:      resource.GetString("app.basin.gage-name-filter"),
		SnowElement:         resource.GetString("app.basin.elements.snow"),
		ReservoirElement:    resource.GetString("app.basin.elements.reservoir"),
		GageElement:         resource.GetString("app.basin.elements.gage"),
		ForecastPeriodBegin: resource.GetString("app.basin.forecast.period-begin"),
		ForecastPeriodEnd:   resource.GetString("app.basin.forecast.period-end"),
		CenterLat:           resource.GetFloat64("app.basin.center-lat"),
		CenterLng:           resource.GetFloat64("app.basin.center-lng"),
		Zoom:                resource.GetInt("app.basin.zoom"),
	}
	basinUseCase := basin.NewBasinUseCase(
		basinConfig,
		awdbGateway,
		basinGateway,
		stationGateway,
		queueSender,
		referenceCache,
		boundaryCache,
		seriesCache,
	)
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, cacheHealthGateway, queueHealthGateway)

	// Map page rate limiter, shared across instances through Redis
	mapLimiter, err := redis.NewRateLimiter(redisClient, "map-page", redis.NewRateLimiterOptions().
		WithMaxTransactionsPerSecond(resource.GetInt("app.rate-limit.map.max-per-second")).
		WithMaxTransactionsPerMinute(resource.GetInt("app.rate-limit.map.max-per-minute")).
		WithNamespace("basinmap_rate"))
	if err != nil {
		log.Fatalf("Fail to create map rate limiter: %v", err)
	}
	cacheHealthGateway.RegisterRateLimiter("map-page", mapLimiter)

	// Init Controllers
	mapController := controller.NewMapController(api, basinUseCase, middleware.RateLimit(mapLimiter))
	stationController := controller.NewStationController(api, basinUseCase)
	healthController := controller.NewHealthController(api, healthUseCase)

	// Init Routes
	mapController.InitMapRoutes()
	stationController.InitStationRoutes()
	healthController.InitHealthRoutes()
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init Worker
	queueName := resource.GetString("app.refresh.queue-name")
	stationProcessor := processor.NewStationProcessor(basinUseCase)
	worker, err := sqs.NewWorker(ctx, sqsClient, queueName, stationProcessor, &sqs.WorkerConfig{
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     20,
		PoolSize:            resource.GetInt("app.refresh.worker-pool-size"),
		LogLevel:            sqs.InfoLevel,
	})
	if err != nil {
		log.Fatalf("Fail to create station refresh worker: %v", err)
	}
	queueHealthGateway.RegisterWorker(queueName, worker)
	go worker.Start(ctx)

	// Init Schedules
	refreshScheduler := schedule.NewRefreshScheduler(
		basinUseCase,
		redisClient,
		resource.GetString("app.refresh.cron"),
		resource.GetInt("app.refresh.lock-ttl-seconds"),
		resource.GetInt("app.refresh.lock-refresh-seconds"),
	)
	refreshScheduler.InitRefreshScheduleTasks(ctx)

	boundaryWarmer, err := schedule.NewBoundaryWarmer(basinUseCase, resource.GetInt("app.warm.interval-minutes"))
	if err != nil {
		log.Fatalf("Fail to create boundary cache warmer: %v", err)
	}
	if err := boundaryWarmer.Start(); err != nil {
		log.Fatalf("Fail to start boundary cache warmer: %v", err)
	}

	// Initial catalog sync and refresh, off the startup path
	go func() {
		time.Sleep(2 * time.Second)
		if err := basinUseCase.SyncStationCatalog(); err != nil {
			log.Errorf("Initial station catalog sync failed: %v", err)
			return
		}
		basinUseCase.EnqueueRefreshAll()
	}()

	// Start Routes
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
	log.Info(msg.GetMessage("app.started"))
}
