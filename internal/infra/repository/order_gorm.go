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

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// テーブルの最新DRAFTを取得。
// 正しく動いていれば1件だが、複数あっても新しい方を選ぶ（防御的タイブレーク）。
func (r *OrderGormRepository) FindDraftByTable(ctx context.Context, restaurantID int64, tableID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND dining_table_id = ? AND status = ?",
			restaurantID, tableID, model.OrderStatusDraft).
		Order("id desc").
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// テーブルのDRAFTを取得し、無ければ作成。
// DB側にはstatus=DRAFTの部分uniqueインデックスがあるので、
// 同時作成で片方が失敗したらもう一度探して同じ結果を返す。
func (r *OrderGormRepository) FindOrCreateDraft(ctx context.Context, restaurantID int64, tableID int64, guestSessionID string) (model.Order, error) {

	var order model.Order

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("restaurant_id = ? AND dining_table_id = ? AND status = ?",
				restaurantID, tableID, model.OrderStatusDraft).
			Order("id desc").
			First(&order).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now().UTC()
		newOrder := model.Order{
			RestaurantID:   restaurantID,
			DiningTableID:  tableID,
			Status:         model.OrderStatusDraft,
			GuestSessionID: guestSessionID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := tx.Create(&newOrder).Error; err != nil {
			retryErr := tx.
				Where("restaurant_id = ? AND dining_table_id = ? AND status = ?",
					restaurantID, tableID, model.OrderStatusDraft).
				Order("id desc").
				First(&order).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		order = newOrder
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// KDS/管理画面向け一覧。DRAFTは絶対に出さない。
func (r *OrderGormRepository) ListActive(ctx context.Context, f repo.ActiveOrderFilter) ([]model.Order, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("restaurant_id = ?", f.RestaurantID)

	if f.TableID != nil {
		q = q.Where("dining_table_id = ?", *f.TableID)
	}

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	} else {
		//既定はDRAFTとCANCELLED以外
		q = q.Where("status NOT IN ?", []model.OrderStatus{
			model.OrderStatusDraft, model.OrderStatusCancelled,
		})
	}

	var items []model.Order
	if err := q.Order("created_at desc, id desc").Limit(limit).Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

// ゲスト向け「このテーブルの注文」。CANCELLEDは除く。
func (r *OrderGormRepository) ListByTable(ctx context.Context, restaurantID int64, tableID int64, limit int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND dining_table_id = ? AND status <> ?",
			restaurantID, tableID, model.OrderStatusCancelled).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}
