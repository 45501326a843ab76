package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	//スタッフフラグ（商品・注文の管理操作を許可）
	IsStaff bool `gorm:"not null;default:false" json:"is_staff"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
