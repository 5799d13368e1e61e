package model

import "time"

// ユーザーのガレージ（所有車）。部品の適合確認に使う。
type GarageVehicle struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Make      string    `gorm:"type:varchar(60);not null" json:"make"`
	Model     string    `gorm:"type:varchar(60);not null" json:"model"`
	Year      *int64    `json:"year"`
	VIN       string    `gorm:"column:vin;type:varchar(32)" json:"vin"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
