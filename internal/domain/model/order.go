package model

import "time"

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// スタッフ操作で受け付けるラベルかどうか。
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 表示用ラベル（メール文面などで使う）。
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPendingPayment:
		return "Pending Payment"
	case OrderStatusPaid:
		return "Paid"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// 支払い方法は手動送金（Interac e-Transfer）のみ。
const PaymentMethodEMT = "EMT"

// 注文。作成後に変わるのは status だけ。
// total_cents = sum(line.price_cents * quantity) + shipping_cents（作成時に確定）。
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	TotalCents    int64  `gorm:"not null" json:"total_cents"`
	ShippingCents int64  `gorm:"not null" json:"shipping_cents"`
	ShippingZone  string `gorm:"type:varchar(32)" json:"shipping_zone"`

	//配送先（作成時の値をそのまま保存）
	ShippingAddress1 string `gorm:"type:varchar(200)" json:"shipping_address1"`
	ShippingAddress2 string `gorm:"type:varchar(200)" json:"shipping_address2"`
	ShippingCity     string `gorm:"type:varchar(100)" json:"shipping_city"`
	ShippingCountry  string `gorm:"type:varchar(64)" json:"shipping_country"`
	ShippingRegion   string `gorm:"type:varchar(64)" json:"shipping_region"`
	ShippingPostal   string `gorm:"type:varchar(32)" json:"shipping_postal"`

	Status OrderStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	PaymentMethod string `gorm:"type:varchar(16);not null;default:'EMT'" json:"payment_method"`

	//購入者が申告する送金参照番号とメール。検証はしない
	PaymentReference string `gorm:"type:varchar(120)" json:"payment_reference"`
	PayerEmail       string `gorm:"type:varchar(255)" json:"payer_email"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
