package service

import (
	"context"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
)

type mockOrderRepo struct {
	createFn                  func(ctx context.Context, order *model.Order, items []*model.OrderItem) error
	findByIDFn                func(ctx context.Context, orderID uint) (*model.Order, error)
	findByTransactionNumberFn func(ctx context.Context, transactionNumber string) (*model.Order, error)
	findByStatusFn            func(ctx context.Context, status model.OrderStatus) ([]*model.Order, error)
	itemsByOrderIDFn          func(ctx context.Context, orderID uint) ([]*model.OrderItem, error)
	updateStatusFn            func(ctx context.Context, orderID uint, from []model.OrderStatus, to model.OrderStatus) (bool, error)
	setSnapTokenFn            func(ctx context.Context, orderID uint, token string) error
	setGatewayTransactionFn   func(ctx context.Context, orderID uint, gatewayTransactionID, vaNumber string) error
}

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	return m.createFn(ctx, order, items)
}
func (m *mockOrderRepo) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	return m.findByIDFn(ctx, orderID)
}
func (m *mockOrderRepo) FindByTransactionNumber(ctx context.Context, transactionNumber string) (*model.Order, error) {
	return m.findByTransactionNumberFn(ctx, transactionNumber)
}
func (m *mockOrderRepo) FindByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	if m.findByStatusFn == nil {
		return nil, nil
	}
	return m.findByStatusFn(ctx, status)
}
func (m *mockOrderRepo) ItemsByOrderID(ctx context.Context, orderID uint) ([]*model.OrderItem, error) {
	return m.itemsByOrderIDFn(ctx, orderID)
}
func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID uint, from []model.OrderStatus, to model.OrderStatus) (bool, error) {
	return m.updateStatusFn(ctx, orderID, from, to)
}
func (m *mockOrderRepo) SetSnapToken(ctx context.Context, orderID uint, token string) error {
	if m.setSnapTokenFn == nil {
		return nil
	}
	return m.setSnapTokenFn(ctx, orderID, token)
}
func (m *mockOrderRepo) SetGatewayTransaction(ctx context.Context, orderID uint, gatewayTransactionID, vaNumber string) error {
	if m.setGatewayTransactionFn == nil {
		return nil
	}
	return m.setGatewayTransactionFn(ctx, orderID, gatewayTransactionID, vaNumber)
}

type mockWebhookEventRepo struct {
	existsFn        func(ctx context.Context, eventKey string) (bool, error)
	markProcessedFn func(ctx context.Context, eventKey, transactionStatus string) error
}

func (m *mockWebhookEventRepo) Exists(ctx context.Context, eventKey string) (bool, error) {
	if m.existsFn == nil {
		return false, nil
	}
	return m.existsFn(ctx, eventKey)
}
func (m *mockWebhookEventRepo) MarkProcessed(ctx context.Context, eventKey, transactionStatus string) error {
	if m.markProcessedFn == nil {
		return nil
	}
	return m.markProcessedFn(ctx, eventKey, transactionStatus)
}

type mockProductRepo struct {
	seedFn     func(ctx context.Context) error
	findByIDFn func(ctx context.Context, productID string) (*model.Product, error)
	findManyFn func(ctx context.Context, productIDs []string) ([]*model.Product, error)
}

func (m *mockProductRepo) Seed(ctx context.Context) error { return m.seedFn(ctx) }
func (m *mockProductRepo) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	return m.findByIDFn(ctx, productID)
}
func (m *mockProductRepo) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	return m.findManyFn(ctx, productIDs)
}

type mockUserRepo struct {
	findByIDFn         func(ctx context.Context, userID string) (*model.User, error)
	adminsByPharmacyFn func(ctx context.Context, pharmacyID string) ([]*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	return m.findByIDFn(ctx, userID)
}
func (m *mockUserRepo) AdminsByPharmacy(ctx context.Context, pharmacyID string) ([]*model.User, error) {
	return m.adminsByPharmacyFn(ctx, pharmacyID)
}

type mockNotificationRepo struct {
	createBatchFn func(ctx context.Context, notifications []*model.Notification) error
	listByUserFn  func(ctx context.Context, userID string) ([]*model.Notification, error)
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, notifications []*model.Notification) error {
	return m.createBatchFn(ctx, notifications)
}
func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	return m.listByUserFn(ctx, userID)
}

type mockMidtransClient struct {
	createSnapTransactionFn func(ctx context.Context, req *model.SnapRequest) (*model.SnapTokenResponse, error)
}

func (m *mockMidtransClient) CreateSnapTransaction(ctx context.Context, req *model.SnapRequest) (*model.SnapTokenResponse, error) {
	return m.createSnapTransactionFn(ctx, req)
}

type mockCreditClient struct {
	ensureAvailableFn func(ctx context.Context, tenantID string, amount int64) error
}

func (m *mockCreditClient) EnsureAvailable(ctx context.Context, tenantID string, amount int64) error {
	if m.ensureAvailableFn == nil {
		return nil
	}
	return m.ensureAvailableFn(ctx, tenantID, amount)
}

type mockNotifier struct {
	placed []*model.Order
}

func (m *mockNotifier) OrderPlaced(order *model.Order) {
	m.placed = append(m.placed, order)
}
