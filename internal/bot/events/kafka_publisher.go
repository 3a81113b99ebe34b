package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"

	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

type KafkaPublisher struct {
	producer *kafka.Writer
	logger   *slog.Logger
	topic    string
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(logger.Debug),
		ErrorLogger:            kafka.LoggerFunc(logger.Error),
	}

	return &KafkaPublisher{
		producer: producer,
		logger:   logger,
		topic:    topic,
	}
}

// Publish отправляет событие с ключом account_id, чтобы события одного аккаунта шли в одну партицию.
func (p *KafkaPublisher) Publish(ctx context.Context, event *models.AccountEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	p.logger.Debug("Отправка события аккаунта в Kafka",
		"type", event.Type,
		"accountID", event.AccountID,
		"topic", p.topic,
	)

	err := p.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AccountID.String()),
		Value: EncodeAccountEvent(event),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	})
	if err != nil {
		return errors.Wrapf(err, "write %s event to kafka", event.Type)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher используется, когда транспорт событий отключён.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *models.AccountEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
