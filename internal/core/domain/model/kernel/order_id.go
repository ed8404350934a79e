package kernel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not properly initialized
// through one of the constructor functions. This error is returned when validating
// a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString",
)

// orderIDPattern matches the opaque order identifier format "ORD-<epoch>-<suffix>".
// The suffix is an opaque lowercase alphanumeric token.
var orderIDPattern = regexp.MustCompile(`^ORD-\d+-[a-z0-9]+$`)

// OrderID is a value object that represents the opaque identifier of an order,
// formatted as "ORD-<epoch>-<suffix>". The zero value is invalid; construct
// through NewOrderID or OrderIDFromString.
//
// OrderID is immutable and safe for concurrent use.
//
// Example usage:
//
//	// Mint a new identifier at checkout
//	id := kernel.NewOrderID()
//
//	// Parse an identifier received from the order store
//	id, err := kernel.OrderIDFromString("ORD-1714656000-9f3ab2c1")
//	if err != nil {
//	    // handle error
//	}
type OrderID struct {
	value string
}

// NewOrderID mints a new order identifier from the current Unix timestamp and
// a random suffix derived from a v4 UUID.
func NewOrderID() OrderID {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return OrderID{
		value: fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), suffix),
	}
}

// OrderIDFromString parses an order identifier from its string representation.
// Returns an error if the string does not match the "ORD-<epoch>-<suffix>" format.
// This function is typically used when reconstructing orders from persistence
// or parsing identifiers arriving on webhook payloads.
func OrderIDFromString(s string) (OrderID, error) {
	if !orderIDPattern.MatchString(s) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"orderId",
			fmt.Errorf("%q does not match ORD-<epoch>-<suffix>", s),
		)
	}
	return OrderID{value: s}, nil
}

// String returns the identifier in its canonical "ORD-<epoch>-<suffix>" form.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate checks that the OrderID was created through a constructor.
// Returns ErrOrderIDIsNotConstructed for zero-value instances.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
