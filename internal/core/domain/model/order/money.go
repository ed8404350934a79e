package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrTotalsAreNotConstructed is returned when a Totals instance was not created
// through the NewTotals factory.
var ErrTotalsAreNotConstructed = errs.NewValueIsRequiredError("Totals must be created via NewTotals")

// Totals is a value object holding the monetary breakdown of an order.
// Invariant: total = subtotal + shipping, enforced at construction.
// Amounts use decimal arithmetic so fractional currency values compare exactly.
type Totals struct {
	subtotal decimal.Decimal
	shipping decimal.Decimal
	total    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewTotals creates the monetary breakdown for an order.
// Subtotal and shipping must be non-negative and total must equal their sum.
func NewTotals(subtotal, shipping, total decimal.Decimal) (Totals, error) {
	if subtotal.IsNegative() {
		return Totals{}, errs.NewValueIsInvalidError("subtotal")
	}
	if shipping.IsNegative() {
		return Totals{}, errs.NewValueIsInvalidError("shipping")
	}
	if expected := subtotal.Add(shipping); !total.Equal(expected) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("total %s does not equal subtotal %s + shipping %s", total, subtotal, shipping),
		)
	}

	return Totals{
		subtotal: subtotal,
		shipping: shipping,
		total:    total,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Totals were created through the constructor.
func (t Totals) Validate() error {
	return t.guard.Validate(ErrTotalsAreNotConstructed)
}

// Subtotal returns the sum of line item prices.
func (t Totals) Subtotal() decimal.Decimal {
	return t.subtotal
}

// Shipping returns the shipping charge.
func (t Totals) Shipping() decimal.Decimal {
	return t.shipping
}

// Total returns the grand total charged to the customer.
func (t Totals) Total() decimal.Decimal {
	return t.total
}
