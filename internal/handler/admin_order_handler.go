package handler

import (
	"net/http"
	"strconv"

	"syrupstore/internal/config"
	"syrupstore/internal/domain/model"
	"syrupstore/internal/mail"
	"syrupstore/internal/middleware"
	repo "syrupstore/internal/repository"
	"syrupstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/ordersのHTTP（スタッフ専用）
type AdminOrderHandler struct {
	uc       *usecase.AdminOrderUsecase
	authUC   *usecase.AuthUsecase
	notifier *mail.Notifier
}

func NewAdminOrderHandler(
	uc *usecase.AdminOrderUsecase,
	authUC *usecase.AuthUsecase,
	notifier *mail.Notifier,
) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, authUC: authUC, notifier: notifier}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffGuard())

	g.GET("", h.list)
	g.PUT("/:id/status", h.updateStatus)
	g.POST("/:id/paid", h.markPaid)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = n
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = n
	}

	f := repo.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		f.UserID = &userID
	}

	outs, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetStatus(c.Request().Context(), orderID, usecase.AdminUpdateOrderStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	//SHIPPEDになったら発送メール。失敗してもステータス更新は成功のまま。
	//宛先はアカウントのメール優先（無ければNotifier側でpayer_emailに落ちる）
	if out.Status == string(model.OrderStatusShipped) {
		if user, uerr := h.authUC.GetUser(c.Request().Context(), out.UserID); uerr == nil {
			h.notifier.SendShipmentNotice(out, user.Username, user.Email)
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) markPaid(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.MarkPaid(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
