package repository

import (
	"context"
	"errors"

	"tableside/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 店舗の参照だけを約束。
type RestaurantRepository interface {
	FindBySlug(ctx context.Context, slug string) (model.Restaurant, error)
	FindByID(ctx context.Context, id int64) (model.Restaurant, error)
}

// テーブルの参照だけを約束。
type DiningTableRepository interface {
	//codeは店舗内で一意
	FindByRestaurantAndCode(ctx context.Context, restaurantID int64, code string) (model.DiningTable, error)
	FindByID(ctx context.Context, id int64) (model.DiningTable, error)
}

// メニュー（カテゴリ＋品目）の参照だけを約束。
type MenuRepository interface {
	//SortOrder昇順
	ListCategories(ctx context.Context, restaurantID int64) ([]model.MenuCategory, error)
	ListItems(ctx context.Context, restaurantID int64) ([]model.MenuItem, error)
	FindItemByID(ctx context.Context, id int64) (model.MenuItem, error)
}
