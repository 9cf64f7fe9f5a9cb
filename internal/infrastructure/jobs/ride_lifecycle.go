package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"moto-club.backend/pkg/logger"
)

type rideLifecycle interface {
	StartDueRides(ctx context.Context) (int, error)
	CompleteDueRides(ctx context.Context, duration time.Duration) (int, error)
}

// RideLifecycleJob moves rides through Upcoming -> Ongoing -> Completed on a ticker
type RideLifecycleJob struct {
	rides        rideLifecycle
	interval     time.Duration
	rideDuration time.Duration
	stop         chan struct{}
	stopOnce     sync.Once
}

func NewRideLifecycleJob(rides rideLifecycle, interval, rideDuration time.Duration) *RideLifecycleJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RideLifecycleJob{
		rides:        rides,
		interval:     interval,
		rideDuration: rideDuration,
		stop:         make(chan struct{}),
	}
}

func (j *RideLifecycleJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting ride lifecycle job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Ride lifecycle job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Ride lifecycle job stopped")
			return
		case <-ticker.C:
			j.processDueRides(ctx)
		}
	}
}

func (j *RideLifecycleJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *RideLifecycleJob) processDueRides(ctx context.Context) {
	started, err := j.rides.StartDueRides(ctx)
	if err != nil {
		logger.Error(ctx, "Error starting due rides", zap.Error(err))
	} else if started > 0 {
		logger.Info(ctx, "Rides started", zap.Int("count", started))
	}

	completed, err := j.rides.CompleteDueRides(ctx, j.rideDuration)
	if err != nil {
		logger.Error(ctx, "Error completing rides", zap.Error(err))
		return
	}
	if completed > 0 {
		logger.Info(ctx, "Rides completed", zap.Int("count", completed))
	}
}
