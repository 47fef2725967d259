package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/service"
	"github.com/shopnext/backend/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Exists")
		}
		return httpError(err)
	}
	return c.String(http.StatusOK, "OK")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tok, err := h.Svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: tok})
}

// AdminLogin issues an admin session token. The old behavior of answering
// "AdminOK" with no credential left every admin route open.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tok, err := h.Svc.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid")
	}
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: tok})
}

func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req transport.OTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SendOTP(c.Request().Context(), req.Email); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "OTP Sent")
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req transport.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "OTP verified")
}

func (h *AuthHandler) SendResetOTP(c echo.Context) error {
	var req transport.OTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SendResetOTP(c.Request().Context(), req.Email); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "OTP sent to "+req.Email)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.Password); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "Password Reset Successful")
}
