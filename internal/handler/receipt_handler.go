package handler

import (
	"net/http"
	"strconv"

	"syrupstore/internal/receipt"

	"github.com/labstack/echo/v4"
)

// レシートPDFサービスのHTTP。APIサーバーとは別プロセスで動く。
type ReceiptHandler struct {
	renderer *receipt.Renderer
}

func NewReceiptHandler(renderer *receipt.Renderer) *ReceiptHandler {
	return &ReceiptHandler{renderer: renderer}
}

type ReceiptLookupResponse struct {
	Exists   bool   `json:"exists"`
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	OrderID  int64  `json:"order_id"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *ReceiptHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/generate-receipt", h.generate)
	e.GET("/receipt/:order_id", h.lookup)
	e.GET("/health", h.health)
}

// generate はスナップショットからPDFを作る。同じ注文IDなら上書き（冪等）。
func (h *ReceiptHandler) generate(c echo.Context) error {
	var req receipt.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.OrderID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order_id required"})
	}

	path, err := h.renderer.Render(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate receipt"})
	}

	return c.JSON(http.StatusOK, receipt.GenerateResponse{
		Success:  true,
		Filename: receipt.Filename(req.OrderID),
		Path:     path,
		OrderID:  req.OrderID,
	})
}

func (h *ReceiptHandler) lookup(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order_id"})
	}

	filename, path, ok := h.renderer.Lookup(orderID)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "receipt not found"})
	}

	return c.JSON(http.StatusOK, ReceiptLookupResponse{
		Exists:   true,
		Filename: filename,
		Path:     path,
		OrderID:  orderID,
	})
}

func (h *ReceiptHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
