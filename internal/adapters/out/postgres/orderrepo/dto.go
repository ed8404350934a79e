// Package orderrepo provides the read-only GORM adapter over the external
// order store. This subsystem never writes orders; the upstream commerce
// store owns all mutations.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO maps the order store's orders table. OwnerID is nullable on
// purpose: rows with a missing owner are an upstream defect the access layer
// must handle, not a load error.
type OrderDTO struct {
	ID      string `gorm:"type:text;primaryKey"`
	OwnerID *int64 `gorm:"index"`
	Status  string

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2)"`
	Shipping decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2)"`

	PaymentMethod *string
	PaymentBrand  *string
	PaymentLast4  *string

	ShippedAt   *time.Time
	DeliveredAt *time.Time

	Items   []OrderItemDTO      `gorm:"foreignKey:OrderID"`
	History []StatusHistoryDTO  `gorm:"foreignKey:OrderID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO maps one purchased line item row.
type OrderItemDTO struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"index"`
	ProductID string
	Name      string
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity  int
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO maps one observed status transition row.
type StatusHistoryDTO struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	OrderID    string `gorm:"index"`
	Status     string
	OccurredAt time.Time
}

// TableName overrides GORM's default naming to use "order_status_history".
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// toDomain converts a database row set to the order aggregate, revalidating
// every invariant on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var ownerID *kernel.UserID
	if dto.OwnerID != nil {
		owner := kernel.NewUserID(*dto.OwnerID)
		ownerID = &owner
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totals, err := order.NewTotals(dto.Subtotal, dto.Shipping, dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(itemDTO.ProductID, itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		entryStatus, statusErr := order.StatusFromString(historyDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		entry, entryErr := order.NewHistoryEntry(entryStatus, historyDTO.OccurredAt)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var payment *order.PaymentDescriptor
	if dto.PaymentMethod != nil {
		descriptor := order.NewPaymentDescriptor(
			*dto.PaymentMethod,
			stringOrEmpty(dto.PaymentBrand),
			stringOrEmpty(dto.PaymentLast4),
		)
		payment = &descriptor
	}

	return order.RestoreOrder(
		id, ownerID, status, history, totals, items, payment,
		dto.ShippedAt, dto.DeliveredAt,
	)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
