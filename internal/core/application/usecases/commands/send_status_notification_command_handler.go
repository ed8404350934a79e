package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/retry"
)

// MaxDeliveryAttempts bounds how many times one notification is handed to the
// transport before giving up.
const MaxDeliveryAttempts = 3

// NotificationResult reports the outcome of a dispatch, successful or not.
// The handler never returns an error: every transport failure is folded into
// this shape so notification delivery can never break the caller's flow.
type NotificationResult struct {
	Success           bool
	ProviderMessageID string
	Error             string
	AttemptNumber     int
}

// SendStatusNotificationCommandHandler delivers customer notifications
// through the external transport with bounded, sequential retries and
// exponential backoff.
//
// When a recipient override is configured (non-production tiers), every
// dispatch is redirected to the override address and the substitution is
// logged so it is always observable.
type SendStatusNotificationCommandHandler struct {
	transport         ports.NotificationTransport
	policy            retry.Policy
	recipientOverride string
	sleep             retry.SleepFunc
	logger            *slog.Logger
}

// NewSendStatusNotificationCommandHandler creates a dispatch handler.
// recipientOverride may be empty to disable redirection. sleep may be nil to
// use real delays; tests inject a recording function.
func NewSendStatusNotificationCommandHandler(
	transport ports.NotificationTransport,
	policy retry.Policy,
	recipientOverride string,
	sleep retry.SleepFunc,
	logger *slog.Logger,
) SendStatusNotificationCommandHandler {
	if sleep == nil {
		sleep = time.Sleep
	}
	return SendStatusNotificationCommandHandler{
		transport:         transport,
		policy:            policy,
		recipientOverride: recipientOverride,
		sleep:             sleep,
		logger:            logger.With("component", "notification_dispatcher"),
	}
}

// Handle dispatches the notification, retrying transient transport failures
// up to MaxDeliveryAttempts times with capped exponential backoff.
//
// Retries are strictly sequential: each attempt observes the previous
// attempt's outcome before the backoff delay starts. If ctx is cancelled
// mid-retry the in-flight attempt completes but no new attempt starts.
// Handle never panics and never returns an error; all failures are reported
// through the result.
func (h SendStatusNotificationCommandHandler) Handle(
	ctx context.Context,
	cmd SendStatusNotificationCommand,
) NotificationResult {
	if err := cmd.Validate(); err != nil {
		return NotificationResult{Success: false, Error: err.Error(), AttemptNumber: 0}
	}

	recipients := cmd.Recipients()
	if h.recipientOverride != "" {
		h.logger.WarnContext(ctx, "recipient override active, redirecting notification",
			"original_recipients", recipients,
			"override_recipient", h.recipientOverride,
		)
		recipients = []string{h.recipientOverride}
	}

	email := ports.OutboundEmail{
		To:      recipients,
		Subject: cmd.Subject(),
		HTML:    cmd.HTMLBody(),
		ReplyTo: cmd.ReplyTo(),
		Tags:    cmd.Tags(),
	}

	var providerMessageID string
	attempts, err := retry.Do(ctx, MaxDeliveryAttempts, h.policy, h.sleep, func(attempt int) error {
		// Log lines carry recipient and subject only; body content may hold
		// customer data and stays out of the logs.
		h.logger.InfoContext(ctx, "delivery attempt",
			"attempt", attempt,
			"max_attempts", MaxDeliveryAttempts,
			"recipients", email.To,
			"subject", email.Subject,
		)

		id, sendErr := h.send(ctx, email)
		if sendErr != nil {
			h.logger.WarnContext(ctx, "delivery attempt failed",
				"attempt", attempt,
				"error", sendErr,
			)
			return sendErr
		}

		providerMessageID = id
		return nil
	})

	if err != nil {
		h.logger.ErrorContext(ctx, "notification delivery exhausted retries",
			"attempts", attempts,
			"recipients", email.To,
			"subject", email.Subject,
			"error", err,
		)
		return NotificationResult{Success: false, Error: err.Error(), AttemptNumber: attempts}
	}

	return NotificationResult{
		Success:           true,
		ProviderMessageID: providerMessageID,
		AttemptNumber:     attempts,
	}
}

// send invokes the transport, converting panics into errors so a misbehaving
// provider client can never unwind through the dispatcher.
func (h SendStatusNotificationCommandHandler) send(
	ctx context.Context,
	email ports.OutboundEmail,
) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport panic: %v", r)
		}
	}()

	return h.transport.Send(ctx, email)
}
