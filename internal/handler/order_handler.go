package handler

import (
	"net/http"
	"strconv"
	"time"

	"syrupstore/internal/config"
	"syrupstore/internal/mail"
	"syrupstore/internal/middleware"
	"syrupstore/internal/receipt"
	"syrupstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトと注文照会のHTTP
type OrderHandler struct {
	orderUC  *usecase.OrderUsecase
	authUC   *usecase.AuthUsecase
	notifier *mail.Notifier
	receipts *receipt.Client
}

// DI
func NewOrderHandler(
	orderUC *usecase.OrderUsecase,
	authUC *usecase.AuthUsecase,
	notifier *mail.Notifier,
	receipts *receipt.Client,
) *OrderHandler {
	return &OrderHandler{
		orderUC:  orderUC,
		authUC:   authUC,
		notifier: notifier,
		receipts: receipts,
	}
}

type CheckoutRequest struct {
	PaymentReference string `json:"payment_reference"`
	PayerEmail       string `json:"payer_email"`
	ShippingAddress1 string `json:"shipping_address1"`
	ShippingAddress2 string `json:"shipping_address2"`
	ShippingCity     string `json:"shipping_city"`
	ShippingCountry  string `json:"shipping_country"`
	ShippingRegion   string `json:"shipping_region"`
	ShippingPostal   string `json:"shipping_postal"`
}

type CheckoutResponse struct {
	Order             usecase.OrderOutput `json:"order"`
	ConfirmationEmail bool                `json:"confirmation_email"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	auth := middleware.AuthJWT(cfg)

	e.POST("/checkout", h.checkout, auth)

	g := e.Group("/orders")
	g.Use(auth)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.GET("/:id/receipt", h.receipt)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		PaymentReference: req.PaymentReference,
		PayerEmail:       req.PayerEmail,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		ShippingCity:     req.ShippingCity,
		ShippingCountry:  req.ShippingCountry,
		ShippingRegion:   req.ShippingRegion,
		ShippingPostal:   req.ShippingPostal,
	})
	if err != nil {
		return writeError(c, err)
	}

	//通知は注文確定のあと。失敗しても注文は成功のまま返す。
	//宛先はアカウントのメールを優先し、無ければpayer_emailに落ちる
	confirmed := false
	user, uerr := h.authUC.GetUser(c.Request().Context(), userID)
	if uerr == nil {
		confirmed = h.notifier.SendOrderConfirmation(out, user.Username, user.Email)
		h.notifier.SendAdminOrderAlert(out, user.Username, user.Email)
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{
		Order:             out,
		ConfirmationEmail: confirmed,
	})
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	outs, err := h.orderUC.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// receipt はレシートPDFの生成をレシートサービスへ依頼する。
// 本人の注文以外は404（detailと同じ扱い）。
func (h *OrderHandler) receipt(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := h.receipts.Generate(c.Request().Context(), toReceiptRequest(out))
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "receipt service unavailable"})
	}
	return c.JSON(http.StatusOK, resp)
}

func toReceiptRequest(o usecase.OrderOutput) receipt.Request {
	items := make([]receipt.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, receipt.Item{
			Name:       it.Name,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}

	address := o.ShippingAddress1
	if o.ShippingAddress2 != "" {
		address += ", " + o.ShippingAddress2
	}

	return receipt.Request{
		OrderID:         o.ID,
		UserEmail:       o.PayerEmail,
		TotalCents:      o.TotalCents,
		ShippingCents:   o.ShippingCents,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		Items:           items,
		ShippingAddress: address,
		ShippingCity:    o.ShippingCity,
		ShippingCountry: o.ShippingCountry,
	}
}
