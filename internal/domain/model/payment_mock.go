package model

import "time"

type PaymentScenario string

const (
	PaymentScenarioSuccess PaymentScenario = "success"
	PaymentScenarioFail    PaymentScenario = "fail"
	PaymentScenarioPending PaymentScenario = "pending"
)

type PaymentStatus string

const (
	PaymentStatusCreated    PaymentStatus = "created"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// モック決済。scenarioが確定時の結果を決める。
type PaymentMock struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64           `gorm:"not null;index" json:"order_id"`
	Scenario     PaymentScenario `gorm:"type:varchar(10);not null" json:"scenario"`
	Status       PaymentStatus   `gorm:"type:varchar(12);not null;default:'created';index" json:"status"`
	ClientSecret string          `gorm:"type:uuid;uniqueIndex;not null" json:"client_secret"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
