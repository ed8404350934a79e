package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/audit"
)

// AuditSink receives access-audit records. Implementations decide the trail
// format (structured log, database row); callers only hand over the record.
// Record must not block request handling on sink failures.
type AuditSink interface {
	Record(ctx context.Context, record audit.Record)
}

// AuditStore persists audit records and supports retention housekeeping.
type AuditStore interface {
	// Append stores one audit record.
	Append(ctx context.Context, record audit.Record) error

	// PurgeOlderThan deletes records observed before the cutoff and reports
	// how many rows were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
