package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultAuditRetention is how long audit records are kept before the
// retention job removes them.
const DefaultAuditRetention = 90 * 24 * time.Hour

// AuditRetentionJob purges access-audit records older than the retention
// period. Runs nightly; the audit trail only needs to stay bounded, not
// pruned in real time.
type AuditRetentionJob struct {
	store     ports.AuditStore
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAuditRetentionJob creates the retention job over the audit store.
func NewAuditRetentionJob(store ports.AuditStore, retention time.Duration, logger *slog.Logger) *AuditRetentionJob {
	return &AuditRetentionJob{
		store:     store,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "audit_retention_job"),
	}
}

// Start schedules the nightly purge.
func (j *AuditRetentionJob) Start() error {
	_, err := j.cron.AddFunc("30 3 * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-j.retention)

		purged, purgeErr := j.store.PurgeOlderThan(ctx, cutoff)
		if purgeErr != nil {
			j.logger.ErrorContext(ctx, "Audit retention purge failed", "error", purgeErr)
			return
		}

		j.logger.InfoContext(ctx, "Audit retention purge completed",
			"purged", purged,
			"cutoff", cutoff,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Audit retention job started (running nightly)")
	return nil
}

// Stop stops the retention job.
func (j *AuditRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Audit retention job stopped")
}
