package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	auditRetentionJob *AuditRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(auditStore ports.AuditStore, retention time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		auditRetentionJob: NewAuditRetentionJob(auditStore, retention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.auditRetentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start audit retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.auditRetentionJob.Stop()
}
