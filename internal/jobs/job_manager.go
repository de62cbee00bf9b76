package jobs

import (
	"context"
	"fmt"
	"time"

	"donations/internal/pkg/logger"
	"donations/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Spec() string
	Run(ctx context.Context) error
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	cron    *cron.Cron
	jobs    []Job
	metrics *metrics.CronJobMetrics
	log     *logger.Logger
	timeout time.Duration
}

func NewJobManager(m *metrics.CronJobMetrics, log *logger.Logger, jobs ...Job) *JobManager {
	if log == nil {
		log = logger.Nop()
	}
	return &JobManager{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		jobs:    jobs,
		metrics: m,
		log:     log,
		timeout: time.Minute,
	}
}

// StartAll schedules every job and starts the scheduler. Nothing runs if a spec is invalid.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		job := job
		if _, err := jm.cron.AddFunc(job.Spec(), func() { jm.RunOnce(context.Background(), job) }); err != nil {
			for _, entry := range jm.cron.Entries() {
				jm.cron.Remove(entry.ID)
			}
			return fmt.Errorf("failed to schedule %s job: %w", job.Name(), err)
		}
	}

	jm.cron.Start()
	jm.log.Info(context.Background(), fmt.Sprintf("%d background jobs started", len(jm.jobs)))
	return nil
}

// StopAll stops the scheduler and waits for running jobs to finish.
func (jm *JobManager) StopAll() {
	<-jm.cron.Stop().Done()
	jm.log.Info(context.Background(), "background jobs stopped")
}

// RunOnce executes job with a timeout and records its metrics.
func (jm *JobManager) RunOnce(ctx context.Context, job Job) {
	ctx, cancel := context.WithTimeout(ctx, jm.timeout)
	defer cancel()
	ctx = jm.log.WithField(ctx, "job", job.Name())

	start := time.Now()
	err := job.Run(ctx)
	jm.metrics.ObserveDuration(job.Name(), time.Since(start))
	if err != nil {
		jm.metrics.IncFailure(job.Name())
		jm.log.Error(ctx, "job failed", err)
		return
	}
	jm.metrics.IncSuccess(job.Name())
}
