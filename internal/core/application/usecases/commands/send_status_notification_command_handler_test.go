package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransport struct{ mock.Mock }

func (m *MockTransport) Send(ctx context.Context, email ports.OutboundEmail) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type panickingTransport struct{}

func (panickingTransport) Send(context.Context, ports.OutboundEmail) (string, error) {
	panic("provider client blew up")
}

func testPolicy(t *testing.T) retry.Policy {
	t.Helper()
	p, err := retry.NewPolicy(500*time.Millisecond, 8*time.Second)
	require.NoError(t, err)
	return p
}

func testCommand(t *testing.T) commands.SendStatusNotificationCommand {
	t.Helper()
	cmd, err := commands.NewSendStatusNotificationCommand(
		[]string{"customer@example.com"}, "Your order has shipped", "<p>On its way.</p>", "", nil,
	)
	require.NoError(t, err)
	return cmd
}

func newHandler(
	transport ports.NotificationTransport,
	policy retry.Policy,
	override string,
	sleep retry.SleepFunc,
) commands.SendStatusNotificationCommandHandler {
	return commands.NewSendStatusNotificationCommandHandler(
		transport, policy, override, sleep, slog.New(slog.DiscardHandler),
	)
}

func TestSendStatusNotificationCommandHandler_Handle_FirstAttemptSucceeds(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).Return("msg-123", nil).Once()

	slept := make([]time.Duration, 0)
	h := newHandler(transport, testPolicy(t), "", func(d time.Duration) { slept = append(slept, d) })

	result := h.Handle(t.Context(), testCommand(t))

	assert.True(t, result.Success)
	assert.Equal(t, "msg-123", result.ProviderMessageID)
	assert.Equal(t, 1, result.AttemptNumber)
	assert.Empty(t, slept)
	transport.AssertExpectations(t)
}

func TestSendStatusNotificationCommandHandler_Handle_FailsTwiceThenSucceeds(t *testing.T) {
	transport := new(MockTransport)
	mock.InOrder(
		transport.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited")).Twice(),
		transport.On("Send", mock.Anything, mock.Anything).Return("msg-456", nil).Once(),
	)

	slept := make([]time.Duration, 0)
	h := newHandler(transport, testPolicy(t), "", func(d time.Duration) { slept = append(slept, d) })

	result := h.Handle(t.Context(), testCommand(t))

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.AttemptNumber)
	assert.Equal(t, "msg-456", result.ProviderMessageID)
	// Exactly two delays following min(INITIAL*2^(n-1), MAX).
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 1 * time.Second}, slept)
	transport.AssertExpectations(t)
}

func TestSendStatusNotificationCommandHandler_Handle_AllAttemptsFail(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).Return("", errors.New("provider down")).Times(3)

	slept := make([]time.Duration, 0)
	h := newHandler(transport, testPolicy(t), "", func(d time.Duration) { slept = append(slept, d) })

	result := h.Handle(t.Context(), testCommand(t))

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.AttemptNumber)
	assert.Contains(t, result.Error, "provider down")
	assert.Empty(t, result.ProviderMessageID)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 1 * time.Second}, slept)
	transport.AssertExpectations(t)
}

func TestSendStatusNotificationCommandHandler_Handle_TransportPanic(t *testing.T) {
	slept := make([]time.Duration, 0)
	h := newHandler(panickingTransport{}, testPolicy(t), "", func(d time.Duration) { slept = append(slept, d) })

	var result commands.NotificationResult
	require.NotPanics(t, func() {
		result = h.Handle(t.Context(), testCommand(t))
	})

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.AttemptNumber)
	assert.Contains(t, result.Error, "transport panic")
}

func TestSendStatusNotificationCommandHandler_Handle_RecipientOverride(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.MatchedBy(func(email ports.OutboundEmail) bool {
		return len(email.To) == 1 && email.To[0] == "qa-inbox@example.com"
	})).Return("msg-789", nil).Once()

	h := newHandler(transport, testPolicy(t), "qa-inbox@example.com", func(time.Duration) {})

	result := h.Handle(t.Context(), testCommand(t))

	assert.True(t, result.Success)
	transport.AssertExpectations(t)
}

func TestSendStatusNotificationCommandHandler_Handle_UnconstructedCommand(t *testing.T) {
	transport := new(MockTransport)
	h := newHandler(transport, testPolicy(t), "", func(time.Duration) {})

	result := h.Handle(t.Context(), commands.SendStatusNotificationCommand{})

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.AttemptNumber)
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendStatusNotificationCommandHandler_Handle_StopsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return("", errors.New("transient")).Once()

	h := newHandler(transport, testPolicy(t), "", func(time.Duration) {})

	result := h.Handle(ctx, testCommand(t))

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.AttemptNumber, "no new attempt after the caller disconnected")
	transport.AssertExpectations(t)
}
