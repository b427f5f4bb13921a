package event

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"tableside/internal/event"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// brokersはカンマ区切り。
func NewKafkaPublisher(brokers string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: w}
}

// 同じ注文のイベントが同一パーティションに並ぶようkeyは注文ID。
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, ev event.OrderEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
