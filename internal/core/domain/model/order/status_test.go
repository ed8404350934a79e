package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("accepts_all_model_members", func(t *testing.T) {
		for _, raw := range []string{
			"pending", "paid", "processing", "shipped", "delivered",
			"cancelled", "refunded", "cancellation_requested",
		} {
			status, err := order.StatusFromString(raw)
			require.NoError(t, err, "status %q", raw)
			assert.Equal(t, raw, status.String())
		}
	})

	t.Run("rejects_unknown_values", func(t *testing.T) {
		for _, raw := range []string{"", "unknown", "PAID", "shipped ", "canceled"} {
			_, err := order.StatusFromString(raw)
			require.Error(t, err, "status %q", raw)
		}
	})
}

func TestProgression(t *testing.T) {
	t.Run("canonical_order", func(t *testing.T) {
		assert.Equal(t, []order.Status{
			order.Pending, order.Paid, order.Processing, order.Shipped, order.Delivered,
		}, order.Progression())
	})

	t.Run("indexes_match_positions", func(t *testing.T) {
		for i, s := range order.Progression() {
			assert.Equal(t, i, s.ProgressionIndex(), "status %s", s)
		}
	})
}

func TestStatus_IsOffPath(t *testing.T) {
	offPath := map[order.Status]bool{
		order.Pending:               false,
		order.Paid:                  false,
		order.Processing:            false,
		order.Shipped:               false,
		order.Delivered:             false,
		order.Cancelled:             true,
		order.Refunded:              true,
		order.CancellationRequested: true,
	}

	for status, want := range offPath {
		assert.Equal(t, want, status.IsOffPath(), "status %s", status)
		if want {
			assert.Equal(t, -1, status.ProgressionIndex(), "status %s", status)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{
		order.Pending:               false,
		order.Paid:                  false,
		order.Processing:            false,
		order.Shipped:               false,
		order.Delivered:             true,
		order.Cancelled:             true,
		order.Refunded:              true,
		order.CancellationRequested: false,
	}

	for status, want := range terminal {
		assert.Equal(t, want, status.IsTerminal(), "status %s", status)
	}
}

func TestStatus_Display(t *testing.T) {
	t.Run("every_status_has_title_and_description", func(t *testing.T) {
		all := append(order.Progression(),
			order.Cancelled, order.Refunded, order.CancellationRequested)

		for _, status := range all {
			assert.NotEqual(t, "Unknown", status.Title(), "status %s", status)
			assert.NotEmpty(t, status.Description(), "status %s", status)
		}
	})

	t.Run("unknown_status_falls_back", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status("bogus").Title())
	})
}
