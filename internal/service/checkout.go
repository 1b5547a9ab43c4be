package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Chifaaan/kdmpxkfa/internal/client"
	"github.com/Chifaaan/kdmpxkfa/internal/config"
	"github.com/Chifaaan/kdmpxkfa/internal/dto"
	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/Chifaaan/kdmpxkfa/internal/money"
	"github.com/Chifaaan/kdmpxkfa/internal/repository"
	"github.com/google/uuid"
)

const (
	PaymentTypeGateway = "va"  // virtual account through the payment gateway
	PaymentTypeCredit  = "cad" // settled against the tenant's credit line
)

type CheckoutService interface {
	// Checkout persists the order with its items atomically, notifies the
	// fulfilling pharmacy's admins best-effort, and for gateway payment
	// issues a session token. A non-nil response with ErrGatewayUnavailable
	// means the order exists but token issuance should be retried.
	Checkout(ctx context.Context, userID, tenantID, pharmacyID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	orders       repository.OrderRepository
	products     repository.ProductRepository
	creditClient client.CreditClient
	notifier     Notifier
	payments     PaymentService
	paymentCfg   *config.Payment
}

func NewCheckoutService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	creditClient client.CreditClient,
	notifier Notifier,
	payments PaymentService,
	paymentCfg *config.Payment,
) CheckoutService {
	return &checkoutServiceImpl{
		orders:       orders,
		products:     products,
		creditClient: creditClient,
		notifier:     notifier,
		payments:     payments,
		paymentCfg:   paymentCfg,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID, tenantID, pharmacyID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(req.Cart))
	for i, item := range req.Cart {
		productIDs[i] = item.ID
	}

	products, err := s.products.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	productByID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	// a cart line whose product is gone fails the whole checkout; silently
	// dropping it would change the charged total behind the buyer's back
	lines := make([]money.Line, len(req.Cart))
	orderItems := make([]*model.OrderItem, len(req.Cart))
	for i, item := range req.Cart {
		product, found := productByID[item.ID]
		if !found {
			return nil, newValidationError("cart", fmt.Sprintf("product %s not found", item.ID))
		}

		lines[i] = money.Line{UnitPrice: item.Price, Quantity: item.Quantity, Content: product.Content}
		orderItems[i] = &model.OrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			ProductSKU:         product.SKU,
			ProductDescription: product.Description,
			UnitPrice:          item.Price,
			TotalPrice:         money.ItemTotal(item.Price, item.Quantity, product.Content),
			Quantity:           item.Quantity,
			BaseQuantity:       item.Quantity * product.Content,
			OrderUnit:          product.OrderUnit,
			BaseUOM:            product.BaseUOM,
			Content:            product.Content,
		}
	}

	totals := money.Calculate(lines, s.paymentCfg.TaxRateBps, 0, 0)

	if req.PaymentType == PaymentTypeCredit {
		if err := s.creditClient.EnsureAvailable(ctx, tenantID, totals.Total); err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		TransactionNumber: generateTransactionNumber(),
		UserID:            userID,
		TenantID:          tenantID,
		PharmacyID:        pharmacyID,
		Status:            model.StatusCreated,
		SourceOfFund:      req.SourceOfFund,
		PaymentType:       req.PaymentType,
		PaymentMethod:     "midtrans",
		Currency:          s.paymentCfg.Currency,
		Subtotal:          totals.Subtotal,
		TaxAmount:         totals.Tax,
		ShippingAmount:    0,
		DiscountAmount:    0,
		TotalPrice:        totals.Total,

		BillingName:    strings.TrimSpace(req.Billing.FirstName + " " + req.Billing.LastName),
		BillingEmail:   req.Billing.Email,
		BillingPhone:   req.Billing.Phone,
		BillingAddress: req.Billing.Address,
		BillingCity:    req.Billing.City,
		BillingState:   req.Billing.State,
		BillingZip:     req.Billing.Zip,

		ShippingName:    strings.TrimSpace(req.Shipping.FirstName + " " + req.Shipping.LastName),
		ShippingAddress: req.Shipping.Address,
		ShippingCity:    req.Shipping.City,
		ShippingState:   req.Shipping.State,
		ShippingZip:     req.Shipping.Zip,

		CustomerNotes: req.CustomerNotes,
	}
	if req.PaymentType == PaymentTypeCredit {
		order.PaymentMethod = "credit"
	}

	if err := s.orders.Create(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// after the commit, never inside it
	s.notifier.OrderPlaced(order)

	resp := &dto.CheckoutResponse{
		OrderID:           order.ID,
		TransactionNumber: order.TransactionNumber,
		Status:            order.Status.String(),
		TotalPrice:        order.TotalPrice,
	}

	switch req.PaymentType {
	case PaymentTypeGateway:
		token, err := s.payments.SnapToken(ctx, order.ID, userID)
		if err != nil {
			// order stands; the client retries via the token endpoint
			return resp, err
		}
		resp.SnapToken = token.SnapToken
		resp.RedirectURL = token.RedirectURL
		resp.Status = model.StatusPending.String()
	case PaymentTypeCredit:
		if next, err := Transition(order.Status, EventAccepted); err == nil {
			if _, err := s.orders.UpdateStatus(ctx, order.ID, []model.OrderStatus{order.Status}, next); err != nil {
				return nil, fmt.Errorf("accept credit order: %w", err)
			}
			resp.Status = next.String()
		}
	}

	return resp, nil
}

func validateCheckout(req *dto.CheckoutRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.SourceOfFund) == "" {
		fields["source_of_fund"] = "source of fund is required"
	}
	switch req.PaymentType {
	case PaymentTypeGateway, PaymentTypeCredit:
	default:
		fields["payment_type"] = "payment type must be va or cad"
	}
	if len(req.Cart) == 0 {
		fields["cart"] = "cart is empty"
	}
	for _, item := range req.Cart {
		if item.Quantity <= 0 {
			fields["cart"] = fmt.Sprintf("quantity for %s must be positive", item.ID)
		}
		if item.Price < 0 {
			fields["cart"] = fmt.Sprintf("price for %s must not be negative", item.ID)
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// generateTransactionNumber builds the gateway-facing order identifier:
// timestamp plus a random suffix, unique for the order's lifetime.
func generateTransactionNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TRX-%s-%s", time.Now().Format("20060102150405"), suffix)
}
