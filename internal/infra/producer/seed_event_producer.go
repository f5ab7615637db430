package producer

import (
	"context"
	"encoding/json"
	"fmt"

	evt_model "github.com/RoyceAzure/lab/store_seeder/internal/domain/model/event"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/producer/balancer"
	"github.com/segmentio/kafka-go"
)

type ISeedEventProducer interface {
	ProduceOrderSeededEvent(ctx context.Context, event *evt_model.OrderSeededEvent) error
	ProduceSeedRunFinishedEvent(ctx context.Context, event *evt_model.SeedRunFinishedEvent) error
	Close() error
}

// SeedEventProducer 把seed結果發到kafka，給下游projection暖機
// brokers未設定時整個producer不會被建立，呼叫端以nil判斷略過
type SeedEventProducer struct {
	writer *kafka.Writer
}

func NewSeedEventProducer(brokers []string, topic string, numPartitions int) *SeedEventProducer {
	return &SeedEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     balancer.NewUserBalancer(numPartitions),
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *SeedEventProducer) ProduceOrderSeededEvent(ctx context.Context, event *evt_model.OrderSeededEvent) error {
	return p.produce(ctx, fmt.Sprintf("%d", event.UserID), event)
}

func (p *SeedEventProducer) ProduceSeedRunFinishedEvent(ctx context.Context, event *evt_model.SeedRunFinishedEvent) error {
	return p.produce(ctx, event.AggregateID, event)
}

func (p *SeedEventProducer) produce(ctx context.Context, key string, event evt_model.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event failed: %w", event.Type(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *SeedEventProducer) Close() error {
	return p.writer.Close()
}

var _ ISeedEventProducer = (*SeedEventProducer)(nil)
