package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/dto"
	"github.com/noah-isme/clinic-readiness-api/pkg/jobs"
)

const warmDashboardJob = "warm_dashboard"

type dashboardSource interface {
	Dashboard(ctx context.Context, clinicianID string) (*dto.ClinicianDashboard, bool, error)
}

// DashboardWarmer recomputes a clinician's dashboard in the background after
// writes have invalidated it, so the next read is served from cache.
type DashboardWarmer struct {
	queue  *jobs.Queue
	source dashboardSource
	logger *zap.Logger
}

// NewDashboardWarmer builds a warmer over source.
func NewDashboardWarmer(source dashboardSource, cfg jobs.QueueConfig) *DashboardWarmer {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	w := &DashboardWarmer{source: source, logger: cfg.Logger}
	w.queue = jobs.NewQueue("dashboard-warmer", w.handle, cfg)
	return w
}

// Start launches the workers.
func (w *DashboardWarmer) Start(ctx context.Context) {
	w.queue.Start(ctx)
}

// Stop waits for the workers to exit.
func (w *DashboardWarmer) Stop() {
	w.queue.Stop()
}

// Schedule queues a rebuild of clinicianID's dashboard. Requests for a
// clinician already waiting are coalesced.
func (w *DashboardWarmer) Schedule(clinicianID string) {
	if w == nil || clinicianID == "" {
		return
	}
	if _, err := w.queue.Enqueue(jobs.Job{Type: warmDashboardJob, Key: clinicianID}); err != nil {
		level := w.logger.Warn
		if errors.Is(err, jobs.ErrQueueFull) {
			level = w.logger.Debug
		}
		level("dashboard warm skipped", zap.String("clinician_id", clinicianID), zap.Error(err))
	}
}

func (w *DashboardWarmer) handle(ctx context.Context, job jobs.Job) error {
	_, _, err := w.source.Dashboard(ctx, job.Key)
	return err
}
