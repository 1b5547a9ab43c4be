package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Chifaaan/kdmpxkfa/internal/dto"
	"github.com/Chifaaan/kdmpxkfa/internal/middleware"
	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/Chifaaan/kdmpxkfa/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) SnapToken(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	resp, err := h.paymentService.SnapToken(ctx, uint(orderID), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, "order is no longer payable")
		case errors.Is(err, service.ErrGatewayUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to generate payment token")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Webhook receives the gateway's payment notifications. Per webhook
// convention receipt is acknowledged with 200 on every outcome, including a
// transition the order cannot take; only a transaction number that does not
// exist yields 404.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	var notification model.GatewayNotification
	if err := c.Bind(&notification); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification body")
	}

	err := h.paymentService.HandleNotification(ctx, &notification)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto.WebhookAck{Status: "ok"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
	case errors.Is(err, service.ErrInvalidTransition):
		// logged in the service; the gateway must not retry this
		return c.JSON(http.StatusOK, dto.WebhookAck{Status: "ok"})
	case errors.Is(err, service.ErrBadSignature):
		return echo.NewHTTPError(http.StatusForbidden, "invalid signature")
	default:
		return err
	}
}
