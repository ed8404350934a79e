package order

import (
	"time"

	"storefront/internal/pkg/errs"
)

// HistoryEntry records one observed status transition: the status the order
// entered and when the transition was observed.
type HistoryEntry struct {
	status     Status
	occurredAt time.Time
}

// NewHistoryEntry creates a history entry for an observed transition.
func NewHistoryEntry(status Status, occurredAt time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return HistoryEntry{status: status, occurredAt: occurredAt}, nil
}

// Status returns the status the order transitioned into.
func (e HistoryEntry) Status() Status {
	return e.status
}

// OccurredAt returns when the transition was observed.
func (e HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}
