// Package auditlog adapts the audit trail to its backends: every record is
// written as a structured log line, and optionally persisted through an
// AuditStore for retention.
package auditlog

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/audit"
	"storefront/internal/core/ports"
)

// Sink writes audit records to the structured log and, when a store is
// configured, persists them. A store failure is logged and swallowed: the
// audit trail must never block request handling.
type Sink struct {
	store  ports.AuditStore
	logger *slog.Logger
}

// NewSink creates an audit sink. store may be nil for log-only operation.
func NewSink(store ports.AuditStore, logger *slog.Logger) *Sink {
	return &Sink{
		store:  store,
		logger: logger.With("component", "audit"),
	}
}

// Record implements ports.AuditSink.
func (s *Sink) Record(ctx context.Context, record audit.Record) {
	attrs := []any{
		"event", string(record.Event),
		"requesting_user_id", record.RequestingUserID.Int64(),
		"resource_id", record.ResourceID,
		"resource_type", record.ResourceType,
		"timestamp", record.Timestamp,
	}
	if record.ActualOwnerID != nil {
		attrs = append(attrs, "actual_owner_id", record.ActualOwnerID.Int64())
	}

	switch record.Event {
	case audit.UnauthorizedAccess:
		s.logger.WarnContext(ctx, "access denied", attrs...)
	default:
		s.logger.InfoContext(ctx, "access granted", attrs...)
	}

	if s.store == nil {
		return
	}
	if err := s.store.Append(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist audit record", "error", err)
	}
}
