package model

import "time"

type OrderStatus string

const (
	//DRAFTはカート。KDS/管理画面には出さない。
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusSubmitted  OrderStatus = "SUBMITTED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusServed     OrderStatus = "SERVED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// 前進はSUBMITTED→IN_PROGRESS→READY→SERVEDの一方向のみ。
// CANCELLEDは終端（SERVED/CANCELLED）以外から到達できる。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:      {OrderStatusSubmitted, OrderStatusCancelled},
	OrderStatusSubmitted:  {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusServed, OrderStatusCancelled},
}

// fromからtoへ遷移できるか。
func CanTransition(from OrderStatus, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// 文字列をOrderStatusにする。未知の値はfalse。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusDraft, OrderStatusSubmitted, OrderStatusInProgress,
		OrderStatusReady, OrderStatusServed, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// 注文。DRAFT中はテーブルのカートとして振る舞う。
// 合計金額はカラムに持たない。常に明細から再計算する。
type Order struct {
	ID             int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID   int64       `gorm:"not null;index" json:"restaurant_id"`
	DiningTableID  int64       `gorm:"not null;index" json:"dining_table_id"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	GuestSessionID string      `gorm:"type:varchar(64)" json:"-"`
	CreatedAt      time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 明細からの合計（セント）。
func OrderTotalCents(items []OrderItem) int64 {
	var total int64 = 0
	for _, it := range items {
		total += it.UnitPriceCents * it.Quantity
	}
	return total
}
