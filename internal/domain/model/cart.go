package model

import "time"

// 会員カートは user_id で1つ、ゲストカートは user_id NULL + Token で引く。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64    `gorm:"index" json:"user_id"`
	Token     string    `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
