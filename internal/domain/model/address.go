package model

import "time"

// 配送先住所（1ユーザーにつき1件）。
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	//番地など
	Line1 string `gorm:"type:varchar(255)" json:"line1"`

	//建物名・部屋番号など
	Line2 string `gorm:"type:varchar(255)" json:"line2"`

	//市区町村
	City string `gorm:"type:varchar(120)" json:"city"`

	//地域
	Region string `gorm:"type:varchar(120)" json:"region"`

	//郵便番号
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`

	//電話番号
	Phone string `gorm:"type:varchar(32)" json:"phone"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
