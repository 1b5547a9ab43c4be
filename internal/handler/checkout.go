package handler

import (
	"errors"
	"net/http"

	"github.com/Chifaaan/kdmpxkfa/internal/client"
	"github.com/Chifaaan/kdmpxkfa/internal/dto"
	"github.com/Chifaaan/kdmpxkfa/internal/middleware"
	"github.com/Chifaaan/kdmpxkfa/internal/service"
	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.Checkout(ctx, middleware.UserID(c), middleware.TenantID(c), middleware.PharmacyID(c), &req)
	if err != nil {
		return checkoutErrorResponse(c, resp, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// checkoutErrorResponse maps the typed error taxonomy onto field-level error
// codes. Collaborator failures keep their own actionable codes instead of
// collapsing into one generic message.
func checkoutErrorResponse(c echo.Context, resp *dto.CheckoutResponse, err error) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": vErr.Fields})
	case errors.Is(err, client.ErrCreditLimitExceeded):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": echo.Map{
			"credit_limit_error": "Insufficient credit limit to complete this transaction.",
		}})
	case errors.Is(err, client.ErrTenantNotMapped):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": echo.Map{
			"mapping_error": "Koperasi belum dimapping dengan Apotek KF, silakan hubungi administrator.",
		}})
	case errors.Is(err, service.ErrGatewayUnavailable):
		// the order was created; the client retries token issuance later
		body := echo.Map{"errors": echo.Map{
			"generic_payment_error": "Payment gateway is unavailable, please retry the payment.",
		}}
		if resp != nil {
			body["order_id"] = resp.OrderID
			body["transaction_number"] = resp.TransactionNumber
		}
		return c.JSON(http.StatusServiceUnavailable, body)
	default:
		c.Logger().Error("checkout failed: ", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"errors": echo.Map{
			"generic_payment_error": "A critical error occurred. Our team has been notified. Please try again later.",
		}})
	}
}
