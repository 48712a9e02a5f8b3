package schedule

import (
	"context"
	"time"

	"basinmap/internal/domain/usecase/basin"
	"basinmap/pkg/log"

	"github.com/go-co-op/gocron/v2"
)

// BoundaryWarmer periodically re-warms the basin boundary and reference
// caches so that map requests never pay the upstream latency.
type BoundaryWarmer struct {
	useCase   basin.UseCase
	scheduler gocron.Scheduler
	interval  time.Duration
}

func NewBoundaryWarmer(useCase basin.UseCase, intervalMinutes int) (*BoundaryWarmer, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	interval := time.Duration(intervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	return &BoundaryWarmer{
		useCase:   useCase,
		scheduler: scheduler,
		interval:  interval,
	}, nil
}

// Start schedules the warm-up job and runs an immediate warm-up pass
func (w *BoundaryWarmer) Start() error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func(ctx context.Context) {
			w.warm()
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	w.scheduler.Start()
	log.Infof("Boundary cache warmer started with interval: %s", w.interval)
	return nil
}

func (w *BoundaryWarmer) warm() {
	if _, err := w.useCase.GetBoundary(); err != nil {
		log.Warnf("Boundary cache warm-up failed: %v", err)
	}
	if _, err := w.useCase.GetReferenceData(); err != nil {
		log.Warnf("Reference data cache warm-up failed: %v", err)
	}
}

// Stop shuts the scheduler down, waiting for running jobs to finish
func (w *BoundaryWarmer) Stop() {
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			log.Warnf("Boundary cache warmer shutdown error: %v", err)
		}
	}
}
