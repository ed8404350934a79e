package cmd

import (
	"log/slog"
	"time"

	adapterhttp "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/auditlog"
	"storefront/internal/adapters/out/mailer"
	"storefront/internal/adapters/out/postgres/auditrepo"
	"storefront/internal/adapters/out/postgres/identityrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/render"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/jobs"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/retry"

	"gorm.io/gorm"
)

// Delivery estimation window in calendar days after shipment.
const (
	estimateMinDays = 3
	estimateMaxDays = 7
)

// Retry pacing for notification delivery.
const (
	retryInitialDelay = 500 * time.Millisecond
	retryMaxDelay     = 8 * time.Second
)

// CompositionRoot wires adapters, domain services and use case handlers.
type CompositionRoot struct {
	config config.Config
	gormDB *gorm.DB
	logger *slog.Logger
}

// NewCompositionRoot creates the composition root over an open database
// connection and the validated configuration.
func NewCompositionRoot(cfg config.Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config: cfg,
		gormDB: gormDB,
		logger: logger,
	}
}

func (c *CompositionRoot) createAuditStore() *auditrepo.GormAuditStore {
	return auditrepo.NewGormAuditStore(c.gormDB)
}

func (c *CompositionRoot) createOwnershipValidator() *services.OwnershipValidator {
	sink := auditlog.NewSink(c.createAuditStore(), c.logger)
	return services.NewOwnershipValidator(sink, c.logger)
}

// CreateSendStatusNotificationCommandHandler builds the notification
// dispatcher over the mail provider client.
func (c *CompositionRoot) CreateSendStatusNotificationCommandHandler() (
	commands.SendStatusNotificationCommandHandler, error,
) {
	policy, err := retry.NewPolicy(retryInitialDelay, retryMaxDelay)
	if err != nil {
		return commands.SendStatusNotificationCommandHandler{}, err
	}

	transport := mailer.NewClient(mailer.DefaultBaseURL, c.config.MailerAPIKey, c.config.MailerFrom)

	return commands.NewSendStatusNotificationCommandHandler(
		transport, policy, c.config.RecipientOverride, nil, c.logger,
	), nil
}

// CreateGetCustomerOrderQueryHandler builds the order read handler with
// ownership enforcement, timeline classification and delivery estimation.
func (c *CompositionRoot) CreateGetCustomerOrderQueryHandler() (queries.GetCustomerOrderQueryHandler, error) {
	estimator, err := services.NewEstimator(estimateMinDays, estimateMaxDays)
	if err != nil {
		return queries.GetCustomerOrderQueryHandler{}, err
	}

	return queries.NewGetCustomerOrderQueryHandler(
		orderrepo.NewGormOrderReader(c.gormDB),
		c.createOwnershipValidator(),
		estimator,
	), nil
}

// CreateWebServer builds the HTTP server with both entry points wired.
func (c *CompositionRoot) CreateWebServer() (*adapterhttp.Server, error) {
	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	dispatcher, err := c.CreateSendStatusNotificationCommandHandler()
	if err != nil {
		return nil, err
	}

	getOrder, err := c.CreateGetCustomerOrderQueryHandler()
	if err != nil {
		return nil, err
	}

	return adapterhttp.NewServer(
		c.config.WebhookSecret,
		renderer,
		identityrepo.NewGormIdentityResolver(c.gormDB),
		dispatcher,
		getOrder,
		c.logger,
	), nil
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.createAuditStore(), jobs.DefaultAuditRetention, c.logger)
}
