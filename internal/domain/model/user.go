package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// emailでログインする会員。Balanceはウォレット残高。
type User struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	Name         string          `gorm:"type:varchar(150)" json:"name"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	Role         Role            `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Balance      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time      `json:"last_login_at"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
