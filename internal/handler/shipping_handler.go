package handler

import (
	"net/http"

	"syrupstore/internal/shipping"

	"github.com/labstack/echo/v4"
)

// 配送見積もりの公開API。認証不要。
type ShippingHandler struct{}

func NewShippingHandler() *ShippingHandler {
	return &ShippingHandler{}
}

type ShippingEstimateResponse struct {
	Cents int64  `json:"cents"`
	Zone  string `json:"zone"`
}

func (h *ShippingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/shipping/estimate", h.estimate)
}

func (h *ShippingHandler) estimate(c echo.Context) error {
	//どんな入力でも失敗しない（空ならINTERNATIONALに落ちる）
	cents, zone := shipping.Estimate(
		c.QueryParam("country"),
		c.QueryParam("region"),
		c.QueryParam("postal"),
	)

	return c.JSON(http.StatusOK, ShippingEstimateResponse{Cents: cents, Zone: zone})
}
