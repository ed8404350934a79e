package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderReaderIntegrationTestSuite provides integration tests for the order
// reader using PostgreSQL containers to verify load and mapping behavior.
type OrderReaderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	reader    *orderrepo.GormOrderReader
}

func (suite *OrderReaderIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusHistoryDTO{},
	))
}

func (suite *OrderReaderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history").Error,
	)
	suite.reader = orderrepo.NewGormOrderReader(suite.db)
}

func (suite *OrderReaderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderReaderIntegrationTestSuite) seedOrder(id string, ownerID *int64) {
	shippedAt := time.Date(2026, 3, 30, 10, 0, 0, 0, time.UTC)
	method := "card"
	brand := "visa"
	last4 := "4242"

	dto := orderrepo.OrderDTO{
		ID:            id,
		OwnerID:       ownerID,
		Status:        "shipped",
		Subtotal:      decimal.RequireFromString("150.00"),
		Shipping:      decimal.RequireFromString("5.95"),
		Total:         decimal.RequireFromString("155.95"),
		PaymentMethod: &method,
		PaymentBrand:  &brand,
		PaymentLast4:  &last4,
		ShippedAt:     &shippedAt,
		Items: []orderrepo.OrderItemDTO{
			{OrderID: id, ProductID: "SKU-1", Name: "Desk Lamp", UnitPrice: decimal.RequireFromString("150.00"), Quantity: 1},
		},
		History: []orderrepo.StatusHistoryDTO{
			{OrderID: id, Status: "shipped", OccurredAt: shippedAt},
			{OrderID: id, Status: "paid", OccurredAt: shippedAt.Add(-48 * time.Hour)},
		},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *OrderReaderIntegrationTestSuite) TestGet_ExistingOrder_LoadsAggregate() {
	ctx := context.Background()
	owner := int64(42)
	suite.seedOrder("ORD-1700000000-abc12345", &owner)

	orderID, err := kernel.OrderIDFromString("ORD-1700000000-abc12345")
	suite.Require().NoError(err)

	loaded, err := suite.reader.Get(ctx, orderID)
	suite.Require().NoError(err)

	suite.Equal("ORD-1700000000-abc12345", loaded.ID().String())
	suite.Require().NotNil(loaded.Owner())
	suite.Equal(int64(42), loaded.Owner().Int64())
	suite.Equal(order.Shipped, loaded.Status())
	suite.True(loaded.Totals().Total().Equal(decimal.RequireFromString("155.95")))
	suite.Len(loaded.Items(), 1)
	suite.Require().NotNil(loaded.Payment())
	suite.Equal("4242", loaded.Payment().Last4())
	suite.Require().NotNil(loaded.ShippedAt())
	suite.Nil(loaded.DeliveredAt())
}

func (suite *OrderReaderIntegrationTestSuite) TestGet_HistoryOrderedByOccurrence() {
	ctx := context.Background()
	owner := int64(42)
	// Seeded with the shipped entry first; the reader must return history in
	// occurrence order regardless of insertion order.
	suite.seedOrder("ORD-1700000000-abc12345", &owner)

	orderID, err := kernel.OrderIDFromString("ORD-1700000000-abc12345")
	suite.Require().NoError(err)

	loaded, err := suite.reader.Get(ctx, orderID)
	suite.Require().NoError(err)

	history := loaded.History()
	suite.Require().Len(history, 2)
	suite.Equal(order.Paid, history[0].Status())
	suite.Equal(order.Shipped, history[1].Status())
	suite.True(history[0].OccurredAt().Before(history[1].OccurredAt()))
}

func (suite *OrderReaderIntegrationTestSuite) TestGet_MissingOwner_StillLoads() {
	ctx := context.Background()
	suite.seedOrder("ORD-1700000000-noowner1", nil)

	orderID, err := kernel.OrderIDFromString("ORD-1700000000-noowner1")
	suite.Require().NoError(err)

	loaded, err := suite.reader.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Nil(loaded.Owner())
}

func (suite *OrderReaderIntegrationTestSuite) TestGet_UnknownOrder_NotFound() {
	ctx := context.Background()

	orderID, err := kernel.OrderIDFromString("ORD-1700000000-missing0")
	suite.Require().NoError(err)

	_, err = suite.reader.Get(ctx, orderID)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderReaderIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderReaderIntegrationTestSuite))
}
