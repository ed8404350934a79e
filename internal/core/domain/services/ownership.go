package services

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/audit"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// DenialReason explains why an ownership check was denied.
type DenialReason string

const (
	// DenialNotOwner means the resource exists but belongs to another user.
	DenialNotOwner DenialReason = "not-owner"

	// DenialMalformedResource means the resource record carries no usable
	// owner identifier. This indicates an upstream data defect, never a
	// user attack.
	DenialMalformedResource DenialReason = "malformed-resource"
)

// OwnershipDecision is the outcome of an ownership check. It never carries
// resource payload; the caller must translate any denial into the same
// externally observable response as "resource does not exist".
type OwnershipDecision struct {
	Granted bool
	Reason  DenialReason
}

// OwnershipValidator compares a requesting user against a resource's recorded
// owner using strict numeric equality, and records every decision in the
// audit trail.
type OwnershipValidator struct {
	sink   ports.AuditSink
	logger *slog.Logger
	now    func() time.Time
}

// NewOwnershipValidator creates a validator writing to the given audit sink.
func NewOwnershipValidator(sink ports.AuditSink, logger *slog.Logger) *OwnershipValidator {
	return &OwnershipValidator{
		sink:   sink,
		logger: logger.With("component", "ownership_validator"),
		now:    time.Now,
	}
}

// Authorize decides whether requester may access the resource owned by owner.
//
// A nil owner denotes a resource record with no usable owner id: the decision
// is a malformed-resource denial, logged at error severity because it points
// at an upstream data defect. A matching owner yields an authorized_access
// audit record and a grant; a mismatch yields an unauthorized_access record
// carrying only the identifiers involved, never resource content.
func (v *OwnershipValidator) Authorize(
	ctx context.Context,
	requester kernel.UserID,
	owner *kernel.UserID,
	resourceID string,
	resourceType string,
) OwnershipDecision {
	if owner == nil {
		v.logger.ErrorContext(ctx, "resource has no usable owner id",
			"resource_id", resourceID,
			"resource_type", resourceType,
			"requesting_user_id", requester.Int64(),
		)
		return OwnershipDecision{Granted: false, Reason: DenialMalformedResource}
	}

	if owner.IsEqual(requester) {
		v.sink.Record(ctx, audit.Record{
			Timestamp:        v.now(),
			Event:            audit.AuthorizedAccess,
			RequestingUserID: requester,
			ResourceID:       resourceID,
			ResourceType:     resourceType,
		})
		return OwnershipDecision{Granted: true}
	}

	actualOwner := *owner
	v.sink.Record(ctx, audit.Record{
		Timestamp:        v.now(),
		Event:            audit.UnauthorizedAccess,
		RequestingUserID: requester,
		ResourceID:       resourceID,
		ResourceType:     resourceType,
		ActualOwnerID:    &actualOwner,
	})
	return OwnershipDecision{Granted: false, Reason: DenialNotOwner}
}
