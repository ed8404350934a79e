package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTotals(t *testing.T) order.Totals {
	t.Helper()
	totals, err := order.NewTotals(
		decimal.RequireFromString("150.00"),
		decimal.RequireFromString("5.95"),
		decimal.RequireFromString("155.95"),
	)
	require.NoError(t, err)
	return totals
}

func validItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("prod-17", "Linen shirt", decimal.RequireFromString("75.00"), 2)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func TestNewTotals(t *testing.T) {
	t.Run("accepts_consistent_totals", func(t *testing.T) {
		totals := validTotals(t)

		assert.Equal(t, "150", totals.Subtotal().String())
		assert.Equal(t, "5.95", totals.Shipping().String())
		assert.Equal(t, "155.95", totals.Total().String())
	})

	t.Run("rejects_mismatched_total", func(t *testing.T) {
		_, err := order.NewTotals(
			decimal.RequireFromString("150.00"),
			decimal.RequireFromString("5.95"),
			decimal.RequireFromString("155.00"),
		)
		require.Error(t, err)
	})

	t.Run("rejects_negative_amounts", func(t *testing.T) {
		_, err := order.NewTotals(
			decimal.RequireFromString("-1"),
			decimal.Zero,
			decimal.RequireFromString("-1"),
		)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var totals order.Totals
		assert.Equal(t, order.ErrTotalsAreNotConstructed, totals.Validate())
	})
}

func TestNewLineItem(t *testing.T) {
	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, err := order.NewLineItem("prod-1", "Socks", decimal.RequireFromString("4.50"), 0)
		require.Error(t, err)

		_, err = order.NewLineItem("prod-1", "Socks", decimal.RequireFromString("4.50"), -2)
		require.Error(t, err)
	})

	t.Run("rejects_non_positive_price", func(t *testing.T) {
		_, err := order.NewLineItem("prod-1", "Socks", decimal.Zero, 1)
		require.Error(t, err)
	})

	t.Run("rejects_missing_identifiers", func(t *testing.T) {
		_, err := order.NewLineItem("", "Socks", decimal.RequireFromString("4.50"), 1)
		require.Error(t, err)

		_, err = order.NewLineItem("prod-1", "", decimal.RequireFromString("4.50"), 1)
		require.Error(t, err)
	})
}

func TestNewPaymentDescriptor(t *testing.T) {
	t.Run("keeps_four_digit_last4", func(t *testing.T) {
		p := order.NewPaymentDescriptor("card", "visa", "4242")
		assert.Equal(t, "4242", p.Last4())
	})

	t.Run("drops_malformed_last4", func(t *testing.T) {
		for _, last4 := range []string{"", "424", "42424", "42a2", "****"} {
			p := order.NewPaymentDescriptor("card", "visa", last4)
			assert.Empty(t, p.Last4(), "last4 %q", last4)
		}
	})
}

func TestRestoreOrder(t *testing.T) {
	owner := kernel.NewUserID(2)
	shipped := time.Date(2026, time.March, 30, 10, 0, 0, 0, time.UTC)
	delivered := shipped.Add(72 * time.Hour)

	t.Run("restores_valid_order", func(t *testing.T) {
		id := kernel.NewOrderID()
		entry, err := order.NewHistoryEntry(order.Pending, shipped.Add(-96*time.Hour))
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			id, &owner, order.Shipped,
			[]order.HistoryEntry{entry},
			validTotals(t), validItems(t), nil,
			&shipped, nil,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Shipped, o.Status())
		require.NotNil(t, o.Owner())
		assert.True(t, o.Owner().IsEqual(owner))
		assert.Len(t, o.History(), 1)
	})

	t.Run("allows_missing_owner", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewOrderID(), nil, order.Paid,
			nil, validTotals(t), validItems(t), nil, nil, nil,
		)

		require.NoError(t, err)
		assert.Nil(t, o.Owner())
	})

	t.Run("rejects_delivered_without_shipped", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewOrderID(), &owner, order.Delivered,
			nil, validTotals(t), validItems(t), nil,
			nil, &delivered,
		)
		require.Error(t, err)
	})

	t.Run("rejects_delivered_before_shipped", func(t *testing.T) {
		early := shipped.Add(-time.Hour)
		_, err := order.RestoreOrder(
			kernel.NewOrderID(), &owner, order.Delivered,
			nil, validTotals(t), validItems(t), nil,
			&shipped, &early,
		)
		require.ErrorIs(t, err, order.ErrDeliveredBeforeShipped)
	})

	t.Run("rejects_missing_items", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewOrderID(), &owner, order.Paid,
			nil, validTotals(t), nil, nil, nil, nil,
		)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
