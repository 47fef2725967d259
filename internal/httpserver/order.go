package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/logging"
	"github.com/shopnext/backend/internal/service"
	"github.com/shopnext/backend/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

// PlaceOrder keeps the legacy contract: the customer token travels in the
// request body, and an invalid one is a 403 with no side effects.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	receipt, err := h.Svc.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("place order rejected", "reason", "invalid token")
			return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
		}
		l.Warn("place order failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, receipt)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	raw, err := headerToken(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListForUser(c.Request().Context(), raw)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) AdminOrders(c echo.Context) error {
	rows, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		l.Warn("status update failed", "order_id", req.ID, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}
