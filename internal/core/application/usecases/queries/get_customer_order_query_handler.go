package queries

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrOrderNotFound is returned both when no order exists with the requested
// identifier and when the order belongs to another customer. Keeping one
// sentinel for both cases guarantees the two are indistinguishable to the
// caller, which prevents order-id enumeration.
var ErrOrderNotFound = errors.New("order not found")

// GetCustomerOrderQueryResponse is the display-ready read model for one order.
type GetCustomerOrderQueryResponse struct {
	Order    *order.Order
	Timeline services.Timeline
	Estimate *services.DeliveryEstimate
}

// GetCustomerOrderQueryHandler fetches one order for an authenticated
// customer, enforcing ownership and enriching the result with the status
// timeline and delivery estimate.
//
// Example:
//
//	handler := NewGetCustomerOrderQueryHandler(reader, ownership, estimator)
//	query, _ := NewGetCustomerOrderQuery(orderID, userID)
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrOrderNotFound) {
//	    // absent OR not owned: render the same not-found response
//	}
type GetCustomerOrderQueryHandler struct {
	reader    ports.OrderReader
	ownership *services.OwnershipValidator
	estimator services.Estimator
}

// NewGetCustomerOrderQueryHandler creates a handler over the order store
// reader and the ownership validator.
func NewGetCustomerOrderQueryHandler(
	reader ports.OrderReader,
	ownership *services.OwnershipValidator,
	estimator services.Estimator,
) GetCustomerOrderQueryHandler {
	return GetCustomerOrderQueryHandler{
		reader:    reader,
		ownership: ownership,
		estimator: estimator,
	}
}

// Handle executes the query. Ownership denial and absence both surface as
// ErrOrderNotFound; store failures surface as wrapped errors for the caller
// to translate into a generic server error.
func (h GetCustomerOrderQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrderQuery,
) (GetCustomerOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerOrderQueryResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return GetCustomerOrderQueryResponse{}, ErrOrderNotFound
		}
		return GetCustomerOrderQueryResponse{}, fmt.Errorf("order store lookup: %w", err)
	}

	decision := h.ownership.Authorize(
		ctx, query.Requester(), o.Owner(), o.ID().String(), "order",
	)
	if !decision.Granted {
		return GetCustomerOrderQueryResponse{}, ErrOrderNotFound
	}

	response := GetCustomerOrderQueryResponse{
		Order:    o,
		Timeline: services.ClassifyTimeline(o.Status(), o.History()),
	}

	if estimate, ok := h.estimator.Estimate(o.ShippedAt(), o.DeliveredAt()); ok {
		response.Estimate = &estimate
	}

	return response, nil
}
