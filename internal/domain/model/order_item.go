package model

import "time"

// 注文明細。
// UnitPriceCentsは追加時点のメニュー価格のスナップショット。
// あとでメニュー価格が変わっても既存明細には反映しない。
// Notesは明細の同一性の一部（同じ品目でもメモが違えば別行）。空文字＝メモなし。
type OrderItem struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64     `gorm:"not null;index" json:"order_id"`
	MenuItemID     int64     `gorm:"not null;index" json:"menu_item_id"`
	Quantity       int64     `gorm:"not null;default:1" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	Notes          string    `gorm:"type:varchar(400);not null;default:''" json:"notes"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
