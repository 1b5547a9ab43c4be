package repository

import (
	"context"
	"time"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"gorm.io/gorm"
)

type WebhookEventRepository interface {
	Exists(ctx context.Context, eventKey string) (bool, error)
	MarkProcessed(ctx context.Context, eventKey, transactionStatus string) error
}

type webhookEventRepoImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepoImpl{db: db}
}

func (r *webhookEventRepoImpl) Exists(ctx context.Context, eventKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("event_key = ?", eventKey).
		Count(&count).Error

	return count > 0, err
}

func (r *webhookEventRepoImpl) MarkProcessed(ctx context.Context, eventKey, transactionStatus string) error {
	return r.db.WithContext(ctx).Create(&model.WebhookEvent{
		EventKey:          eventKey,
		TransactionStatus: transactionStatus,
		ProcessedAt:       time.Now(),
	}).Error
}
