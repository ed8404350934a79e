package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OutboundEmail is the provider-facing shape of one email delivery.
type OutboundEmail struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
	Tags    []string
}

// NotificationTransport sends one email through the external mail provider.
// Send returns the provider's message identifier on success. Implementations
// must convert provider-reported errors into returned errors; retrying is the
// caller's responsibility.
type NotificationTransport interface {
	Send(ctx context.Context, email OutboundEmail) (providerMessageID string, err error)
}

// StatusChangeData is the structured order data handed to the template
// renderer when building a status-change notification.
type StatusChangeData struct {
	OrderID        string
	CustomerName   string
	Status         order.Status
	PreviousStatus *order.Status
	Note           string
	Items          []order.LineItem
	Totals         order.Totals
	CreatedAt      string
}

// TemplateRenderer builds the customer-facing subject and markup body for a
// status-change notification. Rendering is an external collaborator; this
// subsystem never assembles HTML itself.
type TemplateRenderer interface {
	RenderStatusChange(ctx context.Context, data StatusChangeData) (subject, html string, err error)
}
