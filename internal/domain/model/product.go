package model

import "time"

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//価格は最小通貨単位（セント）の整数
	PriceCents int64  `gorm:"not null" json:"price_cents"`
	ImageURL   string `gorm:"type:varchar(500)" json:"image_url"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	//在庫は表示用カウンタ。チェックアウトでは減算しない
	Inventory int64 `gorm:"not null;default:0" json:"inventory"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
