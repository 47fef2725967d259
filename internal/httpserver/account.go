package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/service"
	"github.com/shopnext/backend/internal/transport"
)

type AccountHandler struct {
	Svc *service.AccountService
}

func (h *AccountHandler) Info(c echo.Context) error {
	raw, err := headerToken(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Info(c.Request().Context(), raw)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"name": user.Name, "email": user.Email})
}

func (h *AccountHandler) Update(c echo.Context) error {
	raw, err := headerToken(c)
	if err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Update(c.Request().Context(), raw, req.Field, req.Value); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "Updated")
}

func (h *AccountHandler) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AccountHandler) Delete(c echo.Context) error {
	raw, err := headerToken(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), raw); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "Deleted")
}
