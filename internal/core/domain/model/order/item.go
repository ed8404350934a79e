package order

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when a LineItem instance was not created
// through the NewLineItem factory.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("LineItem must be created via NewLineItem")

// LineItem is a value object describing one purchased product position.
// Quantity and unit price must both be positive.
type LineItem struct {
	productID string
	name      string
	unitPrice decimal.Decimal
	quantity  int

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item after validating all fields.
func NewLineItem(productID, name string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the LineItem was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog identifier of the purchased product.
func (i LineItem) ProductID() string {
	return i.productID
}

// Name returns the display name of the product at purchase time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the price per unit at purchase time.
func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Quantity returns the number of units purchased.
func (i LineItem) Quantity() int {
	return i.quantity
}

func (i *LineItem) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if !unitPrice.IsPositive() {
		return errs.NewValueIsInvalidError("unitPrice")
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	i.quantity = quantity
	return nil
}
