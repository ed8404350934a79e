package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetCustomerOrderQueryIsNotConstructed = errors.New(
	"GetCustomerOrderQuery must be created via NewGetCustomerOrderQuery constructor",
)

// GetCustomerOrderQuery represents an authenticated customer's request to
// view one of their orders.
type GetCustomerOrderQuery struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	requester kernel.UserID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrderQuery creates a query for the given order on behalf of
// the authenticated requester.
func NewGetCustomerOrderQuery(orderID kernel.OrderID, requester kernel.UserID) (GetCustomerOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetCustomerOrderQuery{}, err
	}

	return GetCustomerOrderQuery{
		orderID:   orderID,
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetCustomerOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// Requester returns the authenticated customer making the request.
func (q GetCustomerOrderQuery) Requester() kernel.UserID {
	return q.requester
}
