package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/Chifaaan/kdmpxkfa/internal/client"
	"github.com/Chifaaan/kdmpxkfa/internal/config"
	"github.com/Chifaaan/kdmpxkfa/internal/dto"
	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/Chifaaan/kdmpxkfa/internal/repository"
	"gorm.io/gorm"
)

type PaymentService interface {
	// SnapToken returns the order's gateway session token, issuing a fresh
	// one when none is stored. The requesting user must own the order.
	SnapToken(ctx context.Context, orderID uint, userID string) (*dto.SnapTokenResponse, error)
	// HandleNotification applies an asynchronous gateway callback to the
	// order it references by transaction number.
	HandleNotification(ctx context.Context, n *model.GatewayNotification) error
}

type paymentServiceImpl struct {
	midtransClient client.MidtransClient
	orders         repository.OrderRepository
	webhookEvents  repository.WebhookEventRepository
	expiry         *ExpiryScheduler
	midtransCfg    *config.Midtrans
}

func NewPaymentService(
	midtransClient client.MidtransClient,
	orders repository.OrderRepository,
	webhookEvents repository.WebhookEventRepository,
	expiry *ExpiryScheduler,
	midtransCfg *config.Midtrans,
) PaymentService {
	return &paymentServiceImpl{
		midtransClient: midtransClient,
		orders:         orders,
		webhookEvents:  webhookEvents,
		expiry:         expiry,
		midtransCfg:    midtransCfg,
	}
}

func (s *paymentServiceImpl) SnapToken(ctx context.Context, orderID uint, userID string) (*dto.SnapTokenResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if order.UserID != userID {
		return nil, ErrUnauthorized
	}

	// a paid, cancelled or expired order never gets a new payment session;
	// issuing one would open a second charge path for a settled order
	if order.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	if order.SnapToken != "" && order.Status == model.StatusPending {
		return s.tokenResponse(order.SnapToken, "", order.TotalPrice), nil
	}

	return s.issueForOrder(ctx, order)
}

// issueForOrder requests a fresh session token from the gateway and persists
// it. It runs after the order-creation transaction has committed; the network
// round-trip never holds a database transaction open. Reissuing overwrites
// any stored token.
func (s *paymentServiceImpl) issueForOrder(ctx context.Context, order *model.Order) (*dto.SnapTokenResponse, error) {
	items, err := s.orders.ItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	itemDetails := buildItemDetails(order, items)

	var gross int64
	for _, it := range itemDetails {
		gross += it.Price * it.Quantity
	}
	if gross != order.TotalPrice {
		// the gateway rejects a mismatched amount at settlement; refuse to
		// issue a token for an order whose items disagree with its total
		return nil, fmt.Errorf("order %d: item details sum %d != total price %d", order.ID, gross, order.TotalPrice)
	}

	snapReq := &model.SnapRequest{
		TransactionDetails: model.TransactionDetails{
			OrderID:     order.TransactionNumber,
			GrossAmount: order.TotalPrice,
		},
		CustomerDetails: model.CustomerDetails{
			FirstName: order.BillingName,
			Email:     order.BillingEmail,
			Phone:     order.BillingPhone,
		},
		ItemDetails: itemDetails,
	}
	if s.midtransCfg.Is3DS {
		snapReq.CreditCard = &model.SnapCreditCard{Secure: true}
	}

	resp, err := s.midtransClient.CreateSnapTransaction(ctx, snapReq)
	if err != nil {
		// the order keeps its pre-gateway status; payment is not confirmed
		log.Printf("[payment] snap token issuance failed for order %s: %v", order.TransactionNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if err := s.orders.SetSnapToken(ctx, order.ID, resp.Token); err != nil {
		return nil, fmt.Errorf("persist snap token: %w", err)
	}

	// first issuance arms the payment window; a reissue finds the order
	// already pending and leaves the running timer alone
	next, terr := Transition(order.Status, EventPlaced)
	if terr == nil && next != order.Status {
		moved, err := s.orders.UpdateStatus(ctx, order.ID, []model.OrderStatus{order.Status}, next)
		if err != nil {
			return nil, fmt.Errorf("mark order pending: %w", err)
		}
		if moved {
			s.expiry.Arm(order.ID)
		}
	}

	return s.tokenResponse(resp.Token, resp.RedirectURL, order.TotalPrice), nil
}

func (s *paymentServiceImpl) tokenResponse(token, redirectURL string, gross int64) *dto.SnapTokenResponse {
	return &dto.SnapTokenResponse{
		SnapToken:    token,
		RedirectURL:  redirectURL,
		GrossAmount:  gross,
		ClientKey:    s.midtransCfg.ClientKey,
		IsProduction: s.midtransCfg.IsProduction,
	}
}

// buildItemDetails flattens the order into gateway line items. Item prices
// stay tax-exclusive; tax, shipping and discount ride as their own lines so
// the sum equals gross_amount exactly.
func buildItemDetails(order *model.Order, items []*model.OrderItem) []model.ItemDetail {
	details := make([]model.ItemDetail, 0, len(items)+3)
	for _, item := range items {
		details = append(details, model.ItemDetail{
			ID:       item.ProductID,
			Price:    item.UnitPrice * item.Content,
			Quantity: item.Quantity,
			Name:     item.ProductName,
		})
	}
	if order.TaxAmount > 0 {
		details = append(details, model.ItemDetail{ID: "TAX", Price: order.TaxAmount, Quantity: 1, Name: "PPN"})
	}
	if order.ShippingAmount > 0 {
		details = append(details, model.ItemDetail{ID: "SHIPPING", Price: order.ShippingAmount, Quantity: 1, Name: "Ongkos Kirim"})
	}
	if order.DiscountAmount > 0 {
		details = append(details, model.ItemDetail{ID: "DISCOUNT", Price: -order.DiscountAmount, Quantity: 1, Name: "Diskon"})
	}
	return details
}

func (s *paymentServiceImpl) HandleNotification(ctx context.Context, n *model.GatewayNotification) error {
	if n.SignatureKey != "" && !validSignature(n, s.midtransCfg.ServerKey) {
		return ErrBadSignature
	}

	order, err := s.orders.FindByTransactionNumber(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find order by transaction number: %w", err)
	}

	ev, ok := EventForNotification(n.TransactionStatus, n.FraudStatus)
	if !ok {
		log.Printf("[payment] ignoring unhandled transaction_status %q for order %s", n.TransactionStatus, n.OrderID)
		return nil
	}

	// the key carries the order so a callback with a blank transaction_id
	// never collides across orders
	eventKey := n.OrderID + ":" + n.TransactionID + ":" + n.TransactionStatus
	processed, err := s.webhookEvents.Exists(ctx, eventKey)
	if err != nil {
		return fmt.Errorf("check processed callbacks: %w", err)
	}
	if processed {
		log.Printf("[payment] duplicate callback %s for order %s, already applied", eventKey, n.OrderID)
		return nil
	}

	next, err := Transition(order.Status, ev)
	if err != nil {
		log.Printf("[payment] callback %s rejected: order %s is %s", n.TransactionStatus, n.OrderID, order.Status)
		return ErrInvalidTransition
	}

	if next == order.Status {
		// duplicate signal for a state already reached, ack without side effects
		if err := s.webhookEvents.MarkProcessed(ctx, eventKey, n.TransactionStatus); err != nil {
			log.Printf("[payment] record duplicate callback %s: %v", eventKey, err)
		}
		return nil
	}

	// compare-and-set against the status read above so a racing callback or
	// the expiry timer cannot both win
	moved, err := s.orders.UpdateStatus(ctx, order.ID, []model.OrderStatus{order.Status}, next)
	if err != nil {
		return fmt.Errorf("apply status transition: %w", err)
	}
	if !moved {
		log.Printf("[payment] order %s changed concurrently, callback %s not applied", n.OrderID, n.TransactionStatus)
		return nil
	}

	// an order the gateway itself moved to pending gets its payment window
	// here; a finished order releases its timer
	switch {
	case next == model.StatusPending:
		s.expiry.Arm(order.ID)
	case next.Terminal():
		s.expiry.Cancel(order.ID)
	}

	if n.TransactionID != "" {
		vaNumber := ""
		if len(n.VANumbers) > 0 {
			vaNumber = n.VANumbers[0].VANumber
		}
		if err := s.orders.SetGatewayTransaction(ctx, order.ID, n.TransactionID, vaNumber); err != nil {
			log.Printf("[payment] persist gateway transaction id for order %s: %v", n.OrderID, err)
		}
	}

	if err := s.webhookEvents.MarkProcessed(ctx, eventKey, n.TransactionStatus); err != nil {
		log.Printf("[payment] record callback %s: %v", eventKey, err)
	}

	log.Printf("[payment] order %s: %s -> %s (%s)", n.OrderID, order.Status, next, n.TransactionStatus)
	return nil
}

// validSignature checks sha512(order_id + status_code + gross_amount + server_key).
func validSignature(n *model.GatewayNotification, serverKey string) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}
