package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.Order{},
		&model.OrderItem{},
		&model.WebhookEvent{},
		&model.Notification{},
	))
	return db
}

func testOrder() *model.Order {
	return &model.Order{
		TransactionNumber: "TRX-20260901120000-ABCD1234",
		UserID:            "user-1",
		TenantID:          "tenant-1",
		Status:            model.StatusCreated,
		SourceOfFund:      "mandiri",
		PaymentType:       "va",
		Currency:          "IDR",
		Subtotal:          20000,
		TaxAmount:         2200,
		TotalPrice:        22200,
	}
}

func testItems() []*model.OrderItem {
	return []*model.OrderItem{
		{ProductID: "KF-PCT-500", ProductName: "Paracetamol 500mg", UnitPrice: 10000, Quantity: 2, BaseQuantity: 2, Content: 1, TotalPrice: 20000},
	}
}

func TestCreateOrderWithItems(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	ctx := context.Background()

	order := testOrder()
	require.NoError(t, repo.Create(ctx, order, testItems()))
	require.NotZero(t, order.ID)

	items, err := repo.ItemsByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, order.ID, items[0].OrderID)
	assert.Equal(t, int64(20000), items[0].TotalPrice)
}

func TestCreateOrderIsAtomic(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	// two items forced onto the same primary key: the item insert fails
	// after the order row was already written inside the transaction
	items := []*model.OrderItem{
		{ID: 1, ProductID: "KF-PCT-500", ProductName: "Paracetamol 500mg", UnitPrice: 10000, Quantity: 1, BaseQuantity: 1, Content: 1, TotalPrice: 10000},
		{ID: 1, ProductID: "KF-AMX-250", ProductName: "Amoxicillin 250mg", UnitPrice: 25000, Quantity: 1, BaseQuantity: 10, Content: 10, TotalPrice: 250000},
	}

	err := repo.Create(ctx, testOrder(), items)
	require.Error(t, err)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount, "a failed item insert must roll back the order row")
	assert.Zero(t, itemCount)
}

func TestFindByTransactionNumber(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	ctx := context.Background()

	order := testOrder()
	require.NoError(t, repo.Create(ctx, order, testItems()))

	found, err := repo.FindByTransactionNumber(ctx, order.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByTransactionNumber(ctx, "TRX-NOPE")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStatusCompareAndSet(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	ctx := context.Background()

	order := testOrder()
	order.Status = model.StatusPending
	require.NoError(t, repo.Create(ctx, order, testItems()))

	moved, err := repo.UpdateStatus(ctx, order.ID, []model.OrderStatus{model.StatusPending}, model.StatusPaid)
	require.NoError(t, err)
	assert.True(t, moved)

	// the expiry timer firing late finds no pending row to move
	moved, err = repo.UpdateStatus(ctx, order.ID, []model.OrderStatus{model.StatusPending}, model.StatusExpired)
	require.NoError(t, err)
	assert.False(t, moved)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, found.Status)
}

func TestFindByStatusListsPendingOrders(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	ctx := context.Background()

	pending := testOrder()
	pending.Status = model.StatusPending
	require.NoError(t, repo.Create(ctx, pending, testItems()))

	paid := testOrder()
	paid.TransactionNumber = "TRX-20260901120001-EFGH5678"
	paid.Status = model.StatusPaid
	require.NoError(t, repo.Create(ctx, paid, testItems()))

	// the startup re-arm scan only picks up orders still awaiting payment
	got, err := repo.FindByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
}

func TestSetSnapTokenOverwrites(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	ctx := context.Background()

	order := testOrder()
	require.NoError(t, repo.Create(ctx, order, testItems()))

	require.NoError(t, repo.SetSnapToken(ctx, order.ID, "token-1"))
	require.NoError(t, repo.SetSnapToken(ctx, order.ID, "token-2"))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-2", found.SnapToken)
	// the transaction number, the gateway correlation key, never changes
	assert.Equal(t, order.TransactionNumber, found.TransactionNumber)
}

func TestSetGatewayTransaction(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	ctx := context.Background()

	order := testOrder()
	require.NoError(t, repo.Create(ctx, order, testItems()))

	require.NoError(t, repo.SetGatewayTransaction(ctx, order.ID, "mt-111", "8888123456"))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "mt-111", found.GatewayTransactionID)
	assert.Equal(t, "8888123456", found.VANumber)
}

func TestWebhookEventDedup(t *testing.T) {
	repo := NewWebhookEventRepository(testDB(t))
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "mt-111:settlement")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.MarkProcessed(ctx, "mt-111:settlement", "settlement"))

	exists, err = repo.Exists(ctx, "mt-111:settlement")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNotificationBatch(t *testing.T) {
	repo := NewNotificationRepository(testDB(t))
	ctx := context.Background()

	rows := []*model.Notification{
		{ID: "n-1", UserID: "admin-1", Type: "order.placed", TransactionNumber: "TRX-1"},
		{ID: "n-2", UserID: "admin-2", Type: "order.placed", TransactionNumber: "TRX-1"},
	}
	require.NoError(t, repo.CreateBatch(ctx, rows))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	got, err := repo.ListByUser(ctx, "admin-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "n-1", got[0].ID)
}
