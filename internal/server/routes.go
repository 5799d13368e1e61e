package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.PaymentWebhook.RegisterRoutes(e)

	//JWT任意（ゲストカート対応）
	h.Cart.RegisterRoutes(e, cfg)

	//要認証
	h.Order.RegisterRoutes(e, cfg)
	h.PaymentMock.RegisterRoutes(e, cfg)
	h.Account.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)
	h.Garage.RegisterRoutes(e, cfg)

	//要ADMIN
	h.AdminProduct.RegisterRoutes(e, cfg)
}
