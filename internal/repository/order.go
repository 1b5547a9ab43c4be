package repository

import (
	"context"
	"time"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create inserts the order and all of its items as one atomic unit.
	Create(ctx context.Context, order *model.Order, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID uint) (*model.Order, error)
	FindByTransactionNumber(ctx context.Context, transactionNumber string) (*model.Order, error)
	// FindByStatus lists every order currently in the given status, used at
	// startup to re-arm expiry timers lost with the previous process.
	FindByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error)
	ItemsByOrderID(ctx context.Context, orderID uint) ([]*model.OrderItem, error)
	// UpdateStatus moves the order to the target status only if its current
	// status is still one of from (compare-and-set). Returns false when the
	// row was not in any of the expected source states.
	UpdateStatus(ctx context.Context, orderID uint, from []model.OrderStatus, to model.OrderStatus) (bool, error)
	SetSnapToken(ctx context.Context, orderID uint, token string) error
	SetGatewayTransaction(ctx context.Context, orderID uint, gatewayTransactionID, vaNumber string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByTransactionNumber(ctx context.Context, transactionNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("transaction_number = ?", transactionNumber).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ItemsByOrderID(ctx context.Context, orderID uint) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID uint, from []model.OrderStatus, to model.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where(`
			id = ?
			AND status IN ?
		`,
			orderID,
			from,
		).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) SetSnapToken(ctx context.Context, orderID uint, token string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"snap_token": token,
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepoImpl) SetGatewayTransaction(ctx context.Context, orderID uint, gatewayTransactionID, vaNumber string) error {
	updates := map[string]interface{}{
		"gateway_transaction_id": gatewayTransactionID,
		"updated_at":             time.Now(),
	}
	if vaNumber != "" {
		updates["va_number"] = vaNumber
	}
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}
