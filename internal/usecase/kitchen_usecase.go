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

// KitchenUsecase はKDS/管理画面向けの注文一覧とステータス前進です。
// DRAFTはこの面には絶対に出さない。
type KitchenUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	events    event.Publisher
}

func NewKitchenUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, events event.Publisher) *KitchenUsecase {
	return &KitchenUsecase{tx: tx, auditRepo: auditRepo, events: events}
}

type KitchenListInput struct {
	RestaurantID int64
	TableID      *int64
	Status       string
	Limit        int
}

type UpdateOrderStatusInput struct {
	Status    string
	ActorName string
}

// 注文一覧（既定はDRAFT/CANCELLED以外、新しい順、直近20件）
func (u *KitchenUsecase) ListActive(ctx context.Context, in KitchenListInput) ([]OrderOutput, error) {
	if in.RestaurantID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid restaurant_id")
	}

	f := repo.ActiveOrderFilter{
		RestaurantID: in.RestaurantID,
		TableID:      in.TableID,
		Limit:        in.Limit,
	}

	if in.Status != "" {
		st, ok := model.ParseOrderStatus(in.Status)
		if !ok || st == model.OrderStatusDraft {
			return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		f.Status = &st
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListActive(ctx, f)
		if err != nil {
			return ErrDB
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return ErrDB
			}
			outs = append(outs, toOrderOutput(ctx, r.Menu(), o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type AuditLogOutput struct {
	ID         int64     `json:"id"`
	ActorName  string    `json:"actor_name,omitempty"`
	Action     string    `json:"action"`
	BeforeJSON string    `json:"before_json"`
	AfterJSON  string    `json:"after_json"`
	CreatedAt  time.Time `json:"created_at"`
}

// 注文のスタッフ操作履歴（新しい順）。
func (u *KitchenUsecase) ListAuditForOrder(ctx context.Context, orderID int64, limit int, offset int) ([]AuditLogOutput, error) {
	if orderID <= 0 {
		return []AuditLogOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	resType := model.AuditResourceOrder
	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		ResourceType: &resType,
		ResourceID:   &orderID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return []AuditLogOutput{}, ErrDB
	}

	outs := make([]AuditLogOutput, 0, len(logs))
	for _, l := range logs {
		outs = append(outs, AuditLogOutput{
			ID:         l.ID,
			ActorName:  l.ActorName,
			Action:     string(l.Action),
			BeforeJSON: l.BeforeJSON,
			AfterJSON:  l.AfterJSON,
			CreatedAt:  l.CreatedAt,
		})
	}
	return outs, nil
}

// ステータス更新。遷移表に無い遷移は拒否する。
// 前進はSUBMITTED→IN_PROGRESS→READY→SERVED、CANCELLEDは終端以外から。
// DRAFT/SUBMITTEDを宛先にはできない（提出はゲスト側のSubmitだけ）。
func (u *KitchenUsecase) UpdateStatus(ctx context.Context, orderID int64, in UpdateOrderStatusInput) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if newStatus == model.OrderStatusDraft || newStatus == model.OrderStatusSubmitted {
		return ErrInvalidTransition
	}

	var ev *event.OrderEvent

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return ErrDB
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}

		if !model.CanTransition(o.Status, newStatus) {
			return ErrInvalidTransition
		}

		beforeStatus := string(o.Status)
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return ErrDB
		}

		// 監査ログ（UPDATE_ORDER_STATUS）。
		// ステータス更新と同じトランザクションで書く。後続が失敗したら監査も巻き戻る。
		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorName:    in.ActorName,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return ErrDB
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return ErrDB
		}

		ev = &event.OrderEvent{
			Type:          event.TypeOrderStatusChanged,
			OrderID:       orderID,
			RestaurantID:  o.RestaurantID,
			DiningTableID: o.DiningTableID,
			Status:        string(newStatus),
			TotalCents:    model.OrderTotalCents(items),
			OccurredAt:    time.Now().UTC(),
		}
		return nil
	})

	if err != nil {
		return err
	}

	//通知の失敗でステータス更新は失敗させない
	if ev != nil {
		_ = u.events.PublishOrderEvent(ctx, *ev)
	}
	return nil
}
