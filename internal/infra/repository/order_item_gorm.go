package repository

import (
	"context"
	"errors"
	"time"

	"tableside/internal/domain/model"
	repo "tableside/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 明細を一覧取得
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 明細を取得
func (r *OrderItemGormRepository) FindByID(ctx context.Context, lineID int64) (model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", lineID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return item, nil
}

// (menu_item_id, notes)が同じ明細はプラス
func (r *OrderItemGormRepository) UpsertLine(ctx context.Context, orderID int64, menuItemID int64, notes string, addQty int64, unitPriceCents int64) error {

	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.OrderItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ? AND menu_item_id = ? AND notes = ?", orderID, menuItemID, notes).
			First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			newQty := item.Quantity + addQty

			res := tx.Model(&model.OrderItem{}).
				Where("id = ?", item.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成（価格スナップショットはここでだけ確定する）
		now := time.Now().UTC()
		newItem := model.OrderItem{
			OrderID:        orderID,
			MenuItemID:     menuItemID,
			Quantity:       addQty,
			UnitPriceCents: unitPriceCents,
			Notes:          notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}

		return nil
	})
}

// (menu_item_id, notes)で明細を1件取得
func (r *OrderItemGormRepository) FindLine(ctx context.Context, orderID int64, menuItemID int64, notes string) (model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND menu_item_id = ? AND notes = ?", orderID, menuItemID, notes).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return item, nil
}

// 明細の数量を更新
func (r *OrderItemGormRepository) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id = ?", lineID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *OrderItemGormRepository) DeleteByID(ctx context.Context, lineID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderItem{}, lineID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

//明細が指定注文に属しているかを判定

func (r *OrderItemGormRepository) IsOwnedByOrder(ctx context.Context, lineID int64, orderID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id = ? AND order_id = ?", lineID, orderID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// 注文内の数量合計。明細ゼロなら0。
func (r *OrderItemGormRepository) TotalQuantityByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var total *int64

	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("sum(quantity)").
		Where("order_id = ?", orderID).
		Scan(&total).Error

	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
