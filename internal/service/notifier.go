package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/Chifaaan/kdmpxkfa/internal/repository"
	"github.com/google/uuid"
)

const notificationTypeNewOrder = "order.placed"

// Notifier informs internal stakeholders about order events. Implementations
// must be fire-and-forget: they run after the order transaction commits and
// never block or fail the checkout response.
type Notifier interface {
	OrderPlaced(order *model.Order)
}

type adminNotifier struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	timeout       time.Duration
}

func NewAdminNotifier(users repository.UserRepository, notifications repository.NotificationRepository) Notifier {
	return &adminNotifier{
		users:         users,
		notifications: notifications,
		timeout:       5 * time.Second,
	}
}

func (n *adminNotifier) OrderPlaced(order *model.Order) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[notifier] panic notifying for order %s: %v", order.TransactionNumber, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		admins, err := n.users.AdminsByPharmacy(ctx, order.PharmacyID)
		if err != nil {
			log.Printf("[notifier] list pharmacy admins for order %s: %v", order.TransactionNumber, err)
			return
		}
		if len(admins) == 0 {
			return
		}

		rows := make([]*model.Notification, len(admins))
		for i, admin := range admins {
			rows[i] = &model.Notification{
				ID:                uuid.NewString(),
				UserID:            admin.ID,
				Type:              notificationTypeNewOrder,
				Title:             "New order received",
				Body:              fmt.Sprintf("Order %s placed, total %d %s", order.TransactionNumber, order.TotalPrice, order.Currency),
				OrderID:           order.ID,
				TransactionNumber: order.TransactionNumber,
			}
		}

		if err := n.notifications.CreateBatch(ctx, rows); err != nil {
			log.Printf("[notifier] store notifications for order %s: %v", order.TransactionNumber, err)
		}
	}()
}
