package server

import (
	"syrupstore/internal/config"
	"syrupstore/internal/handler"

	"github.com/labstack/echo/v4"
)

// APIサーバーの全ルートを登録する。
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	shippingH *handler.ShippingHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	adminProductH *handler.AdminProductHandler,
	adminOrderH *handler.AdminOrderHandler,
) {
	authH.RegisterRoutes(e)
	productH.RegisterRoutes(e)
	shippingH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	adminProductH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)
}
