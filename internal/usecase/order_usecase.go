package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"syrupstore/internal/domain/model"
	repo "syrupstore/internal/repository"
	"syrupstore/internal/shipping"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CheckoutInput struct {
	PaymentReference string
	PayerEmail       string
	ShippingAddress1 string
	ShippingAddress2 string
	ShippingCity     string
	ShippingCountry  string
	ShippingRegion   string
	ShippingPostal   string
}

type OrderItemOutput struct {
	ProductID  *int64 `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity"`
}

type OrderOutput struct {
	ID               int64             `json:"id"`
	UserID           int64             `json:"user_id"`
	Status           string            `json:"status"`
	TotalCents       int64             `json:"total_cents"`
	ShippingCents    int64             `json:"shipping_cents"`
	ShippingZone     string            `json:"shipping_zone"`
	ShippingAddress1 string            `json:"shipping_address1"`
	ShippingAddress2 string            `json:"shipping_address2"`
	ShippingCity     string            `json:"shipping_city"`
	ShippingCountry  string            `json:"shipping_country"`
	ShippingRegion   string            `json:"shipping_region"`
	ShippingPostal   string            `json:"shipping_postal"`
	PaymentMethod    string            `json:"payment_method"`
	PaymentReference string            `json:"payment_reference"`
	PayerEmail       string            `json:"payer_email"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []OrderItemOutput `json:"items"`
}

// Checkout はカートを注文に変換する。全ステップが1トランザクション。
// 途中で失敗したら注文もカートも元のまま（部分的な状態は残さない）。
//
// 同じカートへの同時チェックアウトはDBのトランザクション分離以上には
// 直列化しない。二重送信ガードは置かない（低頻度ストアの割り切り）。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.PaymentReference) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment_reference required")
	}
	if strings.TrimSpace(in.PayerEmail) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payer_email required")
	}
	if strings.TrimSpace(in.ShippingAddress1) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping_address1 required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得（無ければ空扱い）
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//小計は商品の「今の」価格で計算する（カートに価格は持たない）
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var subtotal int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//スナップショット（名前・単価を複製）
			productID := p.ID
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   &productID,
				ProductName: p.Name,
				Quantity:    ci.Quantity,
				PriceCents:  p.PriceCents,
			})

			subtotal += p.PriceCents * ci.Quantity
		}

		shippingCents, zone := shipping.Estimate(in.ShippingCountry, in.ShippingRegion, in.ShippingPostal)

		//注文作成。入力の配送・支払いフィールドはそのまま保存
		now := time.Now()
		order := model.Order{
			UserID:           userID,
			TotalCents:       subtotal + shippingCents,
			ShippingCents:    shippingCents,
			ShippingZone:     zone,
			ShippingAddress1: in.ShippingAddress1,
			ShippingAddress2: in.ShippingAddress2,
			ShippingCity:     in.ShippingCity,
			ShippingCountry:  in.ShippingCountry,
			ShippingRegion:   in.ShippingRegion,
			ShippingPostal:   in.ShippingPostal,
			Status:           model.OrderStatusPendingPayment,
			PaymentMethod:    model.PaymentMethodEMT,
			PaymentReference: in.PaymentReference,
			PayerEmail:       in.PayerEmail,
			CreatedAt:        now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細をクリア。カートの行自体は空のまま残る
		if err := r.Carts().ClearItems(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders は自分の注文一覧（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:  it.ProductID,
			Name:       it.ProductName,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		})
	}

	return OrderOutput{
		ID:               o.ID,
		UserID:           o.UserID,
		Status:           string(o.Status),
		TotalCents:       o.TotalCents,
		ShippingCents:    o.ShippingCents,
		ShippingZone:     o.ShippingZone,
		ShippingAddress1: o.ShippingAddress1,
		ShippingAddress2: o.ShippingAddress2,
		ShippingCity:     o.ShippingCity,
		ShippingCountry:  o.ShippingCountry,
		ShippingRegion:   o.ShippingRegion,
		ShippingPostal:   o.ShippingPostal,
		PaymentMethod:    o.PaymentMethod,
		PaymentReference: o.PaymentReference,
		PayerEmail:       o.PayerEmail,
		CreatedAt:        o.CreatedAt,
		Items:            outItems,
	}
}
