package model

import "time"

// 商品フィールドの変更ログ。「どのフィールドが」「何から何へ」を1行ずつ残す。
type ProductChangeLog struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	Field           string    `gorm:"type:varchar(120);not null" json:"field"`
	OldValue        string    `gorm:"type:text" json:"old_value"`
	NewValue        string    `gorm:"type:text" json:"new_value"`
	ChangedByUserID *int64    `gorm:"index" json:"changed_by_user_id"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
