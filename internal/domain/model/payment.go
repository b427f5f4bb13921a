package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// 決済プロバイダはスタブ固定。
const PaymentProviderDemo = "DEMO"

// 決済。注文1件につき最大1件。
// AmountCentsは作成時点の注文合計のスナップショット。
type Payment struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	AmountCents int64         `gorm:"not null" json:"amount_cents"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	Provider    string        `gorm:"type:varchar(40);not null" json:"provider"`
	ProviderRef string        `gorm:"type:varchar(120)" json:"provider_ref"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
