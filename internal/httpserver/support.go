package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/service"
	"github.com/shopnext/backend/internal/transport"
)

type SupportHandler struct {
	Svc *service.SupportService
}

func (h *SupportHandler) Submit(c echo.Context) error {
	var req transport.SupportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and message are required")
	}

	if err := h.Svc.Submit(c.Request().Context(), req.Name, req.Email, req.Message); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to process your request"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message sent successfully!"})
}
