package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラをまとめてDIする。
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	AdminProduct   *handler.AdminProductHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	PaymentMock    *handler.PaymentMockHandler
	PaymentWebhook *handler.PaymentWebhookHandler
	Account        *handler.AccountHandler
	Address        *handler.AddressHandler
	Garage         *handler.GarageHandler
}

// New はechoを組み立ててルートを登録する。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, h)

	return e
}

// Start はサーバを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
