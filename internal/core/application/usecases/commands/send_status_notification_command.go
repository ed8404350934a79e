package commands

import (
	"errors"
	"regexp"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrSendStatusNotificationCommandIsNotConstructed = errors.New(
		"SendStatusNotificationCommand must be created via NewSendStatusNotificationCommand constructor",
	)
)

// emailPattern is a deliberately loose shape check: one "@", no whitespace,
// a dot in the domain part. Full RFC validation is the mail provider's job.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailShaped reports whether the string loosely resembles an email address.
func IsEmailShaped(s string) bool {
	return emailPattern.MatchString(s)
}

// SendStatusNotificationCommand represents a request to deliver one
// status-change notification to a customer.
//
// Example:
//
//	cmd, err := NewSendStatusNotificationCommand(
//	    []string{"customer@example.com"},
//	    "Your order has shipped",
//	    "<html>...</html>",
//	    "support@example.com",
//	    []string{"order-status"},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid notification: %w", err)
//	}
//	result := handler.Handle(ctx, cmd)
type SendStatusNotificationCommand struct { //nolint:recvcheck //using for validation
	recipients []string
	subject    string
	htmlBody   string
	replyTo    string
	tags       []string

	guard guard.ConstructorGuard
}

// NewSendStatusNotificationCommand creates a notification command.
// At least one email-shaped recipient and a non-empty subject and body are
// required; replyTo, when given, must also be email-shaped.
func NewSendStatusNotificationCommand(
	recipients []string,
	subject string,
	htmlBody string,
	replyTo string,
	tags []string,
) (SendStatusNotificationCommand, error) {
	cmd := SendStatusNotificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecipients(recipients),
		cmd.setSubject(subject),
		cmd.setHTMLBody(htmlBody),
		cmd.setReplyTo(replyTo),
	); err != nil {
		return SendStatusNotificationCommand{}, err
	}

	cmd.tags = append([]string(nil), tags...)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendStatusNotificationCommand) Validate() error {
	return c.guard.Validate(ErrSendStatusNotificationCommandIsNotConstructed)
}

// Recipients returns the destination addresses.
func (c SendStatusNotificationCommand) Recipients() []string {
	return append([]string(nil), c.recipients...)
}

// Subject returns the email subject line.
func (c SendStatusNotificationCommand) Subject() string {
	return c.subject
}

// HTMLBody returns the rendered markup body.
func (c SendStatusNotificationCommand) HTMLBody() string {
	return c.htmlBody
}

// ReplyTo returns the reply-to address, or empty when unset.
func (c SendStatusNotificationCommand) ReplyTo() string {
	return c.replyTo
}

// Tags returns the provider-side routing tags.
func (c SendStatusNotificationCommand) Tags() []string {
	return append([]string(nil), c.tags...)
}

func (c *SendStatusNotificationCommand) setRecipients(recipients []string) error {
	if len(recipients) == 0 {
		return errs.NewValueIsRequiredError("recipients")
	}
	for _, r := range recipients {
		if !IsEmailShaped(r) {
			return errs.NewValueIsInvalidError("recipient")
		}
	}
	c.recipients = append([]string(nil), recipients...)
	return nil
}

func (c *SendStatusNotificationCommand) setSubject(subject string) error {
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}
	c.subject = subject
	return nil
}

func (c *SendStatusNotificationCommand) setHTMLBody(htmlBody string) error {
	if htmlBody == "" {
		return errs.NewValueIsRequiredError("htmlBody")
	}
	c.htmlBody = htmlBody
	return nil
}

func (c *SendStatusNotificationCommand) setReplyTo(replyTo string) error {
	if replyTo != "" && !IsEmailShaped(replyTo) {
		return errs.NewValueIsInvalidError("replyTo")
	}
	c.replyTo = replyTo
	return nil
}
