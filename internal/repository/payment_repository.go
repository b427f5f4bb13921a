package repository

import (
	"context"

	"tableside/internal/domain/model"
)

// 決済の永続化。注文1件につき最大1件はDB側のunique indexで守る。
type PaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	Create(ctx context.Context, p model.Payment) (int64, error)
	UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error
}
