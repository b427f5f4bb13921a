package model

import "time"

// メニューのカテゴリ。表示順はSortOrder。
type MenuCategory struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID int64     `gorm:"not null;index:idx_categories_restaurant_sort" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	SortOrder    int64     `gorm:"not null;default:0;index:idx_categories_restaurant_sort" json:"sort_order"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
