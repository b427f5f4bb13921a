package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tableside/internal/domain/model"
	"tableside/internal/event"
	repo "tableside/internal/repository"
)

// PaymentUsecase は決済スタブです。外部ゲートウェイは呼ばない。
// 決済が無ければ「その時点の注文合計」を金額にして作る。
type PaymentUsecase struct {
	tx     repo.TransactionManager
	events event.Publisher
}

func NewPaymentUsecase(tx repo.TransactionManager, events event.Publisher) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, events: events}
}

type PaymentOutput struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
}

// Confirm は決済が無ければPENDINGで作る（あれば何もしない）。
func (u *PaymentUsecase) Confirm(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return ErrDB
		}

		_, err := r.Payments().FindByOrderID(ctx, orderID)
		if err == nil {
			//すでにあるなら何もしない
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return ErrDB
		}

		_, err = createPendingPayment(ctx, r, orderID)
		return err
	})
}

// MarkPaid はデモ決済。無ければ作り、無条件でPAIDにする。
func (u *PaymentUsecase) MarkPaid(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var (
		restaurantID int64
		tableID      int64
		amountCents  int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return ErrDB
		}

		p, err := r.Payments().FindByOrderID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			p, err = createPendingPayment(ctx, r, orderID)
			if err != nil {
				return err
			}
		} else if err != nil {
			return ErrDB
		}

		if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusPaid); err != nil {
			return ErrDB
		}

		restaurantID = o.RestaurantID
		tableID = o.DiningTableID
		amountCents = p.AmountCents
		return nil
	})

	if err != nil {
		return err
	}

	//通知の失敗で決済は失敗させない
	_ = u.events.PublishOrderEvent(ctx, event.OrderEvent{
		Type:          event.TypeOrderPaid,
		OrderID:       orderID,
		RestaurantID:  restaurantID,
		DiningTableID: tableID,
		TotalCents:    amountCents,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

// GetByOrderID は注文の決済を返す。
func (u *PaymentUsecase) GetByOrderID(ctx context.Context, orderID int64) (PaymentOutput, error) {
	if orderID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByOrderID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return ErrDB
		}

		out = PaymentOutput{
			ID:          p.ID,
			OrderID:     p.OrderID,
			AmountCents: p.AmountCents,
			Status:      string(p.Status),
			Provider:    p.Provider,
			CreatedAt:   p.CreatedAt,
		}
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

// 金額は作成時点の注文合計のスナップショット。
func createPendingPayment(ctx context.Context, r repo.TxRepos, orderID int64) (model.Payment, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return model.Payment{}, ErrDB
	}

	now := time.Now().UTC()
	p := model.Payment{
		OrderID:     orderID,
		AmountCents: model.OrderTotalCents(items),
		Status:      model.PaymentStatusPending,
		Provider:    model.PaymentProviderDemo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := r.Payments().Create(ctx, p)
	if err != nil {
		return model.Payment{}, ErrDB
	}
	p.ID = id
	return p, nil
}
