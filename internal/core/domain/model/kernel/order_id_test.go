package kernel_test

import (
	"strings"
	"testing"

	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("generates_canonical_format", func(t *testing.T) {
		id := kernel.NewOrderID()

		require.NoError(t, id.Validate())
		assert.True(t, strings.HasPrefix(id.String(), "ORD-"))

		parsed, err := kernel.OrderIDFromString(id.String())
		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("generates_unique_identifiers", func(t *testing.T) {
		a := kernel.NewOrderID()
		b := kernel.NewOrderID()

		assert.False(t, a.IsEqual(b))
	})
}

func TestOrderIDFromString(t *testing.T) {
	t.Run("accepts_valid_identifier", func(t *testing.T) {
		id, err := kernel.OrderIDFromString("ORD-1714656000-9f3ab2c1")

		require.NoError(t, err)
		assert.Equal(t, "ORD-1714656000-9f3ab2c1", id.String())
	})

	t.Run("rejects_malformed_identifiers", func(t *testing.T) {
		for _, input := range []string{
			"",
			"ORD-",
			"ORD-abc-123",
			"ord-1714656000-9f3ab2c1",
			"ORDER-1714656000-9f3ab2c1",
			"ORD-1714656000-",
			"ORD-1714656000-UPPER",
		} {
			_, err := kernel.OrderIDFromString(input)
			require.Error(t, err, "input %q", input)
		}
	})
}

func TestOrderID_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var id kernel.OrderID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrOrderIDIsNotConstructed, err)
	})
}

func TestUserID(t *testing.T) {
	t.Run("strict_numeric_equality", func(t *testing.T) {
		assert.True(t, kernel.NewUserID(42).IsEqual(kernel.NewUserID(42)))
		assert.False(t, kernel.NewUserID(42).IsEqual(kernel.NewUserID(43)))
		assert.True(t, kernel.NewUserID(0).IsEqual(kernel.NewUserID(0)))
		assert.True(t, kernel.NewUserID(-7).IsEqual(kernel.NewUserID(-7)))
		assert.False(t, kernel.NewUserID(-7).IsEqual(kernel.NewUserID(7)))

		large := int64(1) << 62
		assert.True(t, kernel.NewUserID(large).IsEqual(kernel.NewUserID(large)))
		assert.False(t, kernel.NewUserID(large).IsEqual(kernel.NewUserID(large-1)))
	})

	t.Run("string_representation", func(t *testing.T) {
		assert.Equal(t, "-7", kernel.NewUserID(-7).String())
		assert.Equal(t, "0", kernel.NewUserID(0).String())
	})
}
