package repository

import (
	"context"

	"tableside/internal/domain/model"
)

// KDS/管理画面向けの絞り込み条件。
// Statusが空ならDRAFTとCANCELLED以外を返す。
type ActiveOrderFilter struct {
	RestaurantID int64
	TableID      *int64
	Status       *model.OrderStatus
	Limit        int
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//テーブルの最新DRAFTを1件。複数あれば新しい方（防御的タイブレーク）。
	FindDraftByTable(ctx context.Context, restaurantID int64, tableID int64) (model.Order, error)

	//DRAFTが無ければ作って返す。作成は即時永続化。
	FindOrCreateDraft(ctx context.Context, restaurantID int64, tableID int64, guestSessionID string) (model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//KDS/管理画面向け。作成日時の降順。
	ListActive(ctx context.Context, f ActiveOrderFilter) ([]model.Order, error)

	//ゲスト向け「このテーブルの注文」。CANCELLEDは除く。作成日時の降順。
	ListByTable(ctx context.Context, restaurantID int64, tableID int64, limit int) ([]model.Order, error)
}
