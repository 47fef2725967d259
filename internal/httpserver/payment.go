package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/logging"
	"github.com/shopnext/backend/internal/payment"
	"github.com/shopnext/backend/internal/transport"
)

type PaymentHandler struct {
	Provider payment.Provider
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}

	intent, err := h.Provider.CreateIntent(ctx, req.Amount)
	if err != nil {
		logging.FromContext(ctx).Error("payment intent failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong"})
	}
	return c.JSON(http.StatusOK, intent)
}
