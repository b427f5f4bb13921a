package model

import "time"

// テーブル。codeはQRに印字する短い識別子で、店舗内で一意。
type DiningTable struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;" json:"id"`
	RestaurantID int64     `gorm:"not null;index;uniqueIndex:ux_tables_restaurant_code" json:"restaurant_id"`
	Code         string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_tables_restaurant_code" json:"code"`
	Seats        int64     `gorm:"not null;default:2" json:"seats"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
