package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/token"
)

type Deps struct {
	Tokens         *token.Service
	AuthHandler    *AuthHandler
	OrderHandler   *OrderHandler
	ProductHandler *ProductHandler
	SearchHandler  *SearchHandler
	AccountHandler *AccountHandler
	PaymentHandler *PaymentHandler
	SupportHandler *SupportHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/admin", d.AuthHandler.AdminLogin)

	e.POST("/send-otp", d.AuthHandler.SendOTP)
	e.POST("/verify-otp", d.AuthHandler.VerifyOTP)
	e.POST("/send-reset-otp", d.AuthHandler.SendResetOTP)
	e.POST("/reset-password", d.AuthHandler.ResetPassword)

	e.GET("/products", d.ProductHandler.List)
	e.GET("/products/:id", d.ProductHandler.Get)
	if d.SearchHandler != nil {
		e.GET("/search", d.SearchHandler.Search)
	}

	e.POST("/order", d.OrderHandler.PlaceOrder)
	e.GET("/my-orders", d.OrderHandler.MyOrders)

	e.POST("/create-payment", d.PaymentHandler.CreatePayment)

	e.GET("/user/info", d.AccountHandler.Info)
	e.PATCH("/user/update", d.AccountHandler.Update)
	e.DELETE("/user/delete", d.AccountHandler.Delete)

	e.POST("/support", d.SupportHandler.Submit)

	e.GET("/admin-dashboard", d.ProductHandler.Dashboard, RequireAdmin(d.Tokens))

	admin := e.Group("/admin", RequireAdmin(d.Tokens))
	admin.POST("/product", d.ProductHandler.Create)
	admin.PATCH("/product/:id", d.ProductHandler.Update)
	admin.DELETE("/product/:id", d.ProductHandler.Delete)
	admin.GET("/orders", d.OrderHandler.AdminOrders)
	admin.POST("/update-status", d.OrderHandler.UpdateStatus)
	admin.GET("/users", d.AccountHandler.ListUsers)
}
