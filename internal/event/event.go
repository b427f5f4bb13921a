package event

import (
	"context"
	"time"
)

// 注文ライフサイクルのイベント種別。KDS側が購読する。
type Type string

const (
	TypeOrderSubmitted     Type = "order_submitted"
	TypeOrderStatusChanged Type = "order_status_changed"
	TypeOrderPaid          Type = "order_paid"
)

type OrderEvent struct {
	Type          Type      `json:"type"`
	OrderID       int64     `json:"order_id"`
	RestaurantID  int64     `json:"restaurant_id"`
	DiningTableID int64     `json:"dining_table_id"`
	Status        string    `json:"status"`
	TotalCents    int64     `json:"total_cents"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// 注文イベントの送信の約束。実装はKafka、未設定ならNop。
type Publisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent) error
	Close() error
}

// ブローカー未設定のときに使う何もしない実装。
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(ctx context.Context, ev OrderEvent) error { return nil }
func (NopPublisher) Close() error                                               { return nil }
