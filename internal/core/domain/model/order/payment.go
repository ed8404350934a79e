package order

import "regexp"

var last4Pattern = regexp.MustCompile(`^\d{4}$`)

// PaymentDescriptor describes how the order was paid, for display purposes
// only. It never carries a full card number. A last-4 value that is not
// exactly four digits is dropped rather than stored malformed.
type PaymentDescriptor struct {
	method string
	brand  string
	last4  string
}

// NewPaymentDescriptor creates a display-ready payment descriptor.
// last4 is kept only when it is exactly four digits.
func NewPaymentDescriptor(method, brand, last4 string) PaymentDescriptor {
	if !last4Pattern.MatchString(last4) {
		last4 = ""
	}
	return PaymentDescriptor{
		method: method,
		brand:  brand,
		last4:  last4,
	}
}

// Method returns the payment method, e.g. "card".
func (p PaymentDescriptor) Method() string {
	return p.method
}

// Brand returns the card brand, e.g. "visa".
func (p PaymentDescriptor) Brand() string {
	return p.brand
}

// Last4 returns the last four digits of the payment instrument,
// or the empty string when unknown.
func (p PaymentDescriptor) Last4() string {
	return p.last4
}
