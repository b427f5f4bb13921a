package repository

import (
	"context"

	"tableside/internal/domain/model"
)

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	FindByID(ctx context.Context, lineID int64) (model.OrderItem, error)

	//明細の同一性は(menu_item_id, notes)。同一ならプラス、無ければ価格スナップショット付きで新規。
	UpsertLine(ctx context.Context, orderID int64, menuItemID int64, notes string, addQty int64, unitPriceCents int64) error

	//同一性は(menu_item_id, notes)
	FindLine(ctx context.Context, orderID int64, menuItemID int64, notes string) (model.OrderItem, error)

	UpdateQuantity(ctx context.Context, lineID int64, qty int64) error
	DeleteByID(ctx context.Context, lineID int64) error

	//明細が指定注文に属しているかを判定
	IsOwnedByOrder(ctx context.Context, lineID int64, orderID int64) (bool, error)

	//注文内の数量合計（明細が無ければ0）
	TotalQuantityByOrderID(ctx context.Context, orderID int64) (int64, error)
}
