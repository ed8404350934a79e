// Package audit defines the access-audit record emitted by ownership checks.
// Records deliberately carry identifiers only, never resource content, so the
// audit trail can be retained without holding customer data.
package audit

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// Event classifies the outcome of an access check.
type Event string

const (
	// AuthorizedAccess records a granted ownership check.
	AuthorizedAccess Event = "authorized_access"

	// UnauthorizedAccess records a denied ownership check.
	UnauthorizedAccess Event = "unauthorized_access"
)

// Record is one audit trail entry for an access decision.
// ActualOwnerID is populated only on denial, and only as an identifier.
type Record struct {
	Timestamp        time.Time
	Event            Event
	RequestingUserID kernel.UserID
	ResourceID       string
	ResourceType     string
	ActualOwnerID    *kernel.UserID
}
