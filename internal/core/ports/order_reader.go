package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderReader defines the read-only contract against the external order store.
// This subsystem never writes orders; creation and status transitions happen
// upstream and arrive here as webhook events.
type OrderReader interface {
	// Get retrieves one order by its opaque identifier, including line items
	// and status history. Returns errs.ObjectNotFoundError when no order
	// exists with the identifier.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}
