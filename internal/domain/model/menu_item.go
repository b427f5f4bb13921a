package model

import "time"

// メニュー品目。
// 価格は最小通貨単位（セント）のint64で持つ。浮動小数は使わない。
type MenuItem struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuCategoryID int64     `gorm:"not null;index" json:"menu_category_id"`
	RestaurantID   int64     `gorm:"not null;index" json:"restaurant_id"`
	Name           string    `gorm:"type:varchar(160);not null" json:"name"`
	Description    string    `gorm:"type:varchar(400)" json:"description"`
	PriceCents     int64     `gorm:"not null" json:"price_cents"`
	IsAvailable    bool      `gorm:"not null;default:true" json:"is_available"`
	ImageURL       string    `gorm:"type:varchar(400)" json:"image_url"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
