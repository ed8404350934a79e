package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of a storefront order.
//
// Five statuses form the canonical linear progression used to render the
// order timeline:
//
//	pending ──> paid ──> processing ──> shipped ──> delivered
//
// Three further statuses sit off that path and interrupt the normal
// progression display when current:
//
//	cancelled, refunded, cancellation_requested
//
// Status is a value object. The zero value ("") is invalid; construct from
// the typed constants or through StatusFromString.
type Status string

const (
	// Pending is the initial status after checkout completes, before payment capture.
	Pending Status = "pending"

	// Paid indicates payment has been captured.
	Paid Status = "paid"

	// Processing indicates the warehouse is picking and packing the order.
	Processing Status = "processing"

	// Shipped indicates the order left the warehouse. Orders in this status
	// carry a shippedAt timestamp used for delivery estimation.
	Shipped Status = "shipped"

	// Delivered indicates the carrier confirmed delivery. Terminal.
	Delivered Status = "delivered"

	// Cancelled indicates the order was cancelled before fulfilment. Terminal, off-path.
	Cancelled Status = "cancelled"

	// Refunded indicates the payment was returned after cancellation or a return. Terminal, off-path.
	Refunded Status = "refunded"

	// CancellationRequested indicates the customer asked to cancel and the
	// request is awaiting review. Off-path, not terminal.
	CancellationRequested Status = "cancellation_requested"
)

// Progression returns the canonical ordered sequence of on-path statuses
// used to render a linear order timeline. The returned slice is a fresh copy.
func Progression() []Status {
	return []Status{Pending, Paid, Processing, Shipped, Delivered}
}

// StatusFromString parses a status arriving from an external source
// (webhook payload, database row). Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the Status value is a member of the status model.
func (s Status) Validate() error {
	switch s {
	case Pending, Paid, Processing, Shipped, Delivered,
		Cancelled, Refunded, CancellationRequested:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a valid order status", string(s)),
		)
	}
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsOffPath reports whether the status sits outside the canonical progression.
func (s Status) IsOffPath() bool {
	switch s {
	case Cancelled, Refunded, CancellationRequested:
		return true
	case Pending, Paid, Processing, Shipped, Delivered:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are expected from the status.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Refunded:
		return true
	case Pending, Paid, Processing, Shipped, CancellationRequested:
		return false
	default:
		return false
	}
}

// ProgressionIndex returns the position of the status within the canonical
// progression, or -1 for off-path and unknown statuses.
func (s Status) ProgressionIndex() int {
	switch s {
	case Pending:
		return 0
	case Paid:
		return 1
	case Processing:
		return 2
	case Shipped:
		return 3
	case Delivered:
		return 4
	case Cancelled, Refunded, CancellationRequested:
		return -1
	default:
		return -1
	}
}

// Title returns the short customer-facing label for the status.
func (s Status) Title() string {
	switch s {
	case Pending:
		return "Order placed"
	case Paid:
		return "Payment confirmed"
	case Processing:
		return "Preparing your order"
	case Shipped:
		return "Shipped"
	case Delivered:
		return "Delivered"
	case Cancelled:
		return "Cancelled"
	case Refunded:
		return "Refunded"
	case CancellationRequested:
		return "Cancellation requested"
	default:
		return "Unknown"
	}
}

// Description returns the customer-facing sentence shown for the status.
// For off-path statuses this is the standalone message that replaces the
// progression timeline.
func (s Status) Description() string {
	switch s {
	case Pending:
		return "We have received your order and are waiting for payment confirmation."
	case Paid:
		return "Your payment has been confirmed."
	case Processing:
		return "Your order is being picked and packed."
	case Shipped:
		return "Your order is on its way."
	case Delivered:
		return "Your order has been delivered."
	case Cancelled:
		return "This order has been cancelled. If you were charged, a refund is on its way."
	case Refunded:
		return "Your payment for this order has been refunded."
	case CancellationRequested:
		return "We have received your cancellation request and are reviewing it."
	default:
		return "The current state of this order is unknown."
	}
}
