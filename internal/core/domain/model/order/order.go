package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the RestoreOrder factory. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder")

	// ErrDeliveredBeforeShipped is returned when timestamps violate the shipment
	// ordering invariant: a delivered order must have been shipped no later.
	ErrDeliveredBeforeShipped = errors.New("deliveredAt precedes shippedAt")
)

// Order is the aggregate root for a purchase record. From this subsystem's
// perspective orders are immutable: they are created at checkout and mutated
// by the upstream order store; this core only reads them and reacts to
// status-change events.
//
// Order maintains these invariants:
//   - Valid opaque identifier (ORD-<epoch>-<suffix>)
//   - total = subtotal + shipping
//   - At least one line item, each with positive quantity and unit price
//   - Status history is append-only, one entry per observed transition
//   - deliveredAt implies shippedAt occurred no later
//
// The owner may be absent when upstream data is defective; access control
// treats such orders as malformed rather than rejecting the load.
type Order struct {
	id      kernel.OrderID
	ownerID *kernel.UserID

	status  Status
	history []HistoryEntry

	totals  Totals
	items   []LineItem
	payment *PaymentDescriptor

	shippedAt   *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// RestoreOrder rehydrates an order from persistence, validating every invariant.
//
// Parameters:
//   - id: opaque order identifier
//   - ownerID: owning customer, nil when the stored row is missing one
//   - status: current lifecycle status
//   - history: observed transitions in observation order
//   - totals: monetary breakdown
//   - items: purchased line items (at least one)
//   - payment: optional display-ready payment descriptor
//   - shippedAt, deliveredAt: optional shipment timestamps
func RestoreOrder(
	id kernel.OrderID,
	ownerID *kernel.UserID,
	status Status,
	history []HistoryEntry,
	totals Totals,
	items []LineItem,
	payment *PaymentDescriptor,
	shippedAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		totals.Validate(),
		validateItems(items),
		validateShipmentTimes(shippedAt, deliveredAt),
	); err != nil {
		return nil, err
	}

	for _, entry := range history {
		if err := entry.Status().Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		ownerID:       ownerID,
		status:        status,
		history:       append([]HistoryEntry(nil), history...),
		totals:        totals,
		items:         append([]LineItem(nil), items...),
		payment:       payment,
		shippedAt:     shippedAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateShipmentTimes(shippedAt, deliveredAt *time.Time) error {
	if deliveredAt == nil {
		return nil
	}
	if shippedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt",
			fmt.Errorf("order has deliveredAt but no shippedAt"))
	}
	if deliveredAt.Before(*shippedAt) {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt", ErrDeliveredBeforeShipped)
	}
	return nil
}

// Validate ensures the Order instance was properly constructed through RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's opaque identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Owner returns the owning customer's identifier, or nil when the stored
// order is missing one (an upstream data defect).
func (o *Order) Owner() *kernel.UserID {
	return o.ownerID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns the observed status transitions, oldest first.
// The returned slice is a copy.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Totals returns the monetary breakdown.
func (o *Order) Totals() Totals {
	return o.totals
}

// Items returns the purchased line items. The returned slice is a copy.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// Payment returns the display-ready payment descriptor, or nil when unknown.
func (o *Order) Payment() *PaymentDescriptor {
	return o.payment
}

// ShippedAt returns when the order left the warehouse, or nil if it has not.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// DeliveredAt returns when the carrier confirmed delivery, or nil if it has not.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}
