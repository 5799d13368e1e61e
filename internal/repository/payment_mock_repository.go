package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentMockRepository interface {
	Create(ctx context.Context, p model.PaymentMock) (model.PaymentMock, error)
	FindByID(ctx context.Context, paymentID int64) (model.PaymentMock, error)
	UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error
}
