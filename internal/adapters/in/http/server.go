package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server implements the HTTP entry points of the notification and
// access-control subsystem. It coordinates between HTTP handlers and
// application use cases.
type Server struct {
	webhookSecret string

	renderer   ports.TemplateRenderer
	identity   ports.IdentityResolver
	dispatcher commands.SendStatusNotificationCommandHandler
	getOrder   queries.GetCustomerOrderQueryHandler

	logger *slog.Logger
}

// NewServer creates the HTTP server with its collaborators.
func NewServer(
	webhookSecret string,
	renderer ports.TemplateRenderer,
	identity ports.IdentityResolver,
	dispatcher commands.SendStatusNotificationCommandHandler,
	getOrder queries.GetCustomerOrderQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		webhookSecret: webhookSecret,
		renderer:      renderer,
		identity:      identity,
		dispatcher:    dispatcher,
		getOrder:      getOrder,
		logger:        logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches the server's handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/webhooks/order-status", s.HandleOrderStatusWebhook)
	e.GET("/api/v1/orders/:orderId", s.GetOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the body for authentication, validation, not-found and
// server-error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WebhookResponse is the success-shaped envelope returned to the upstream
// order store. Success reflects the delivery outcome but the HTTP status is
// 200 either way; the upstream must not retry or block on delivery failures.
type WebhookResponse struct {
	Success           bool   `json:"success"`
	ProviderMessageID string `json:"providerMessageId,omitempty"`
	Error             string `json:"error,omitempty"`
	Message           string `json:"message"`
}

type webhookItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

type webhookOrderData struct {
	Items     []webhookItem   `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt string          `json:"createdAt"`
}

type webhookPayload struct {
	OrderID             string           `json:"orderId"`
	CustomerEmail       string           `json:"customerEmail"`
	CustomerName        string           `json:"customerName"`
	OrderStatus         string           `json:"orderStatus"`
	OrderData           webhookOrderData `json:"orderData"`
	PreviousOrderStatus string           `json:"previousOrderStatus"`
	StatusChangeNote    string           `json:"statusChangeNote"`
}

// HandleOrderStatusWebhook handles POST /api/v1/webhooks/order-status.
//
// The endpoint is a server-to-server trust boundary secured by a shared
// secret; no ownership check applies here. After the secret and payload pass
// validation, the response is always HTTP 200: delivery failures are reported
// only through the success flag so the upstream order store never couples its
// own transaction to notification reliability.
func (s *Server) HandleOrderStatusWebhook(ctx echo.Context) error {
	presented := ctx.Request().Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(presented), []byte(s.webhookSecret)) != 1 {
		// The presented value is never logged.
		s.logger.WarnContext(ctx.Request().Context(), "webhook secret mismatch",
			"remote_addr", ctx.Request().RemoteAddr,
		)
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid webhook secret"})
	}

	var payload webhookPayload
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	data, err := s.validateWebhookPayload(payload)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid webhook payload: " + err.Error(),
		})
	}

	subject, html, err := s.renderStatusChange(ctx, data)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "notification rendering failed",
			"order_id", data.OrderID,
			"error", err,
		)
		return ctx.JSON(http.StatusOK, WebhookResponse{
			Success: false,
			Error:   "notification rendering failed",
			Message: "Order status processed",
		})
	}

	cmd, err := commands.NewSendStatusNotificationCommand(
		[]string{payload.CustomerEmail}, subject, html, "", []string{"order-status"},
	)
	if err != nil {
		return ctx.JSON(http.StatusOK, WebhookResponse{
			Success: false,
			Error:   err.Error(),
			Message: "Order status processed",
		})
	}

	result := s.dispatcher.Handle(ctx.Request().Context(), cmd)

	return ctx.JSON(http.StatusOK, WebhookResponse{
		Success:           result.Success,
		ProviderMessageID: result.ProviderMessageID,
		Error:             result.Error,
		Message:           "Order status processed",
	})
}

// validateWebhookPayload checks the payload schema and converts it into the
// structured data handed to the template renderer.
func (s *Server) validateWebhookPayload(payload webhookPayload) (ports.StatusChangeData, error) {
	if payload.OrderID == "" {
		return ports.StatusChangeData{}, errs.NewValueIsRequiredError("orderId")
	}
	if !commands.IsEmailShaped(payload.CustomerEmail) {
		return ports.StatusChangeData{}, errs.NewValueIsInvalidError("customerEmail")
	}

	status, err := order.StatusFromString(payload.OrderStatus)
	if err != nil {
		return ports.StatusChangeData{}, err
	}

	var previous *order.Status
	if payload.PreviousOrderStatus != "" {
		prev, prevErr := order.StatusFromString(payload.PreviousOrderStatus)
		if prevErr != nil {
			return ports.StatusChangeData{}, prevErr
		}
		previous = &prev
	}

	if len(payload.OrderData.Items) == 0 {
		return ports.StatusChangeData{}, errs.NewValueIsRequiredError("orderData.items")
	}

	items := make([]order.LineItem, 0, len(payload.OrderData.Items))
	for _, raw := range payload.OrderData.Items {
		item, itemErr := order.NewLineItem(raw.ProductID, raw.Name, raw.UnitPrice, raw.Quantity)
		if itemErr != nil {
			return ports.StatusChangeData{}, itemErr
		}
		items = append(items, item)
	}

	totals, err := order.NewTotals(
		payload.OrderData.Subtotal, payload.OrderData.Shipping, payload.OrderData.Total,
	)
	if err != nil {
		return ports.StatusChangeData{}, err
	}

	return ports.StatusChangeData{
		OrderID:        payload.OrderID,
		CustomerName:   payload.CustomerName,
		Status:         status,
		PreviousStatus: previous,
		Note:           payload.StatusChangeNote,
		Items:          items,
		Totals:         totals,
		CreatedAt:      payload.OrderData.CreatedAt,
	}, nil
}

// renderStatusChange invokes the external renderer, converting panics into
// errors so a faulty template can never turn into a non-success response.
func (s *Server) renderStatusChange(
	ctx echo.Context,
	data ports.StatusChangeData,
) (subject, html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()

	return s.renderer.RenderStatusChange(ctx.Request().Context(), data)
}

// OrderResponse is the display-ready payload for one order.
type OrderResponse struct {
	ID          string                 `json:"id"`
	Status      string                 `json:"status"`
	StatusTitle string                 `json:"statusTitle"`
	Items       []OrderItemResponse    `json:"items"`
	Totals      OrderTotalsResponse    `json:"totals"`
	Payment     *OrderPaymentResponse  `json:"payment,omitempty"`
	History     []OrderHistoryResponse `json:"history"`
	ShippedAt   *time.Time             `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time             `json:"deliveredAt,omitempty"`
	Timeline    TimelineResponse       `json:"timeline"`
	Estimate    *EstimateResponse      `json:"estimate,omitempty"`
}

type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type OrderTotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type OrderPaymentResponse struct {
	Method string `json:"method"`
	Brand  string `json:"brand,omitempty"`
	Last4  string `json:"last4,omitempty"`
}

type OrderHistoryResponse struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

type TimelineResponse struct {
	Entries []TimelineEntryResponse `json:"entries"`
	OffPath bool                    `json:"offPath"`
	Message string                  `json:"message,omitempty"`
}

type TimelineEntryResponse struct {
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Current     bool   `json:"current"`
}

type EstimateResponse struct {
	Status     string     `json:"status"`
	Date       *time.Time `json:"date,omitempty"`
	RangeStart *time.Time `json:"rangeStart,omitempty"`
	RangeEnd   *time.Time `json:"rangeEnd,omitempty"`
	Formatted  string     `json:"formatted"`
}

// GetOrder handles GET /api/v1/orders/:orderId.
//
// An absent order, a malformed order id and an ownership denial all produce
// the same not-found body, so order ids cannot be enumerated. Identity and
// store failures collapse into one generic server error that does not reveal
// which lookup failed.
func (s *Server) GetOrder(ctx echo.Context) error {
	token, ok := bearerToken(ctx.Request().Header.Get("Authorization"))
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
	}

	requester, err := s.identity.ResolveBearer(ctx.Request().Context(), token)
	if err != nil {
		if errors.Is(err, errs.ErrAuthenticationFailed) {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		}
		s.logger.ErrorContext(ctx.Request().Context(), "identity resolution failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Unable to retrieve order"})
	}

	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	}

	query, err := queries.NewGetCustomerOrderQuery(orderID, requester)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	}

	response, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		}
		s.logger.ErrorContext(ctx.Request().Context(), "order lookup failed",
			"order_id", orderID.String(),
			"error", err,
		)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Unable to retrieve order"})
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// bearerToken extracts the token from a "Bearer <token>" authorization
// header. Missing scheme or empty token both fail.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func toOrderResponse(result queries.GetCustomerOrderQueryResponse) OrderResponse {
	o := result.Order

	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().StringFixed(2),
			Quantity:  item.Quantity(),
		})
	}

	history := make([]OrderHistoryResponse, 0, len(o.History()))
	for _, entry := range o.History() {
		history = append(history, OrderHistoryResponse{
			Status:     entry.Status().String(),
			OccurredAt: entry.OccurredAt(),
		})
	}

	entries := make([]TimelineEntryResponse, 0, len(result.Timeline.Entries))
	for _, entry := range result.Timeline.Entries {
		entries = append(entries, TimelineEntryResponse{
			Status:      entry.Status.String(),
			Title:       entry.Title,
			Description: entry.Description,
			Completed:   entry.Completed,
			Current:     entry.Current,
		})
	}

	response := OrderResponse{
		ID:          o.ID().String(),
		Status:      o.Status().String(),
		StatusTitle: o.Status().Title(),
		Items:       items,
		Totals: OrderTotalsResponse{
			Subtotal: o.Totals().Subtotal().StringFixed(2),
			Shipping: o.Totals().Shipping().StringFixed(2),
			Total:    o.Totals().Total().StringFixed(2),
		},
		History:     history,
		ShippedAt:   o.ShippedAt(),
		DeliveredAt: o.DeliveredAt(),
		Timeline: TimelineResponse{
			Entries: entries,
			OffPath: result.Timeline.OffPath,
			Message: result.Timeline.Message,
		},
	}

	if payment := o.Payment(); payment != nil {
		response.Payment = &OrderPaymentResponse{
			Method: payment.Method(),
			Brand:  payment.Brand(),
			Last4:  payment.Last4(),
		}
	}

	if result.Estimate != nil {
		estimate := &EstimateResponse{
			Status:    string(result.Estimate.Status),
			Formatted: result.Estimate.Formatted,
		}
		switch result.Estimate.Status {
		case services.EstimateDelivered:
			date := result.Estimate.Date
			estimate.Date = &date
		case services.EstimateProjected:
			start, end := result.Estimate.RangeStart, result.Estimate.RangeEnd
			estimate.RangeStart = &start
			estimate.RangeEnd = &end
		}
		response.Estimate = estimate
	}

	return response
}
