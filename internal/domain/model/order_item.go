package model

import "time"

// 注文明細スナップショット。作成後は一切変更しない。
// 商品が後で削除されても表示できるよう、名前と単価を複製して持つ。
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	//商品への参照。商品削除時は NULL になる（注文は無効にならない）
	ProductID *int64 `gorm:"index" json:"product_id"`

	ProductName string `gorm:"type:varchar(200);not null" json:"product_name"`
	Quantity    int64  `gorm:"not null" json:"quantity"`

	//購入時点の単価
	PriceCents int64 `gorm:"not null" json:"price_cents"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
