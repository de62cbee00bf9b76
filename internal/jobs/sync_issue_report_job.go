package jobs

import (
	"context"
	"fmt"

	"donations/internal/pkg/logger"
	"donations/internal/pkg/metrics"
)

type openIssueCounter interface {
	CountOpen(ctx context.Context) (int64, error)
}

// SyncIssueReportJob keeps the open drift gauge current.
type SyncIssueReportJob struct {
	spec    string
	issues  openIssueCounter
	metrics *metrics.DesignationMetrics
	log     *logger.Logger
}

func NewSyncIssueReportJob(
	spec string,
	issues openIssueCounter,
	m *metrics.DesignationMetrics,
	log *logger.Logger,
) *SyncIssueReportJob {
	if log == nil {
		log = logger.Nop()
	}
	return &SyncIssueReportJob{spec: spec, issues: issues, metrics: m, log: log}
}

func (j *SyncIssueReportJob) Name() string { return "sync_issue_report" }
func (j *SyncIssueReportJob) Spec() string { return j.spec }

func (j *SyncIssueReportJob) Run(ctx context.Context) error {
	open, err := j.issues.CountOpen(ctx)
	if err != nil {
		return fmt.Errorf("count open sync issues: %w", err)
	}
	j.metrics.SetOpenSyncIssues(open)
	if open > 0 {
		j.log.Warn(ctx, fmt.Sprintf("%d stockit sync issues awaiting resolution", open), nil)
	}
	return nil
}
