package confirmation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "order-confirmations"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type confirmationEvent struct {
	OrderID string    `json:"order_id"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// KafkaSender publishes confirmations for a downstream mailer to pick up.
type KafkaSender struct {
	writer messageWriter
}

func NewKafkaSender(topic string, brokers ...string) *KafkaSender {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return &KafkaSender{writer: w}
}

func (k *KafkaSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(confirmationEvent{
		OrderID: msg.OrderID,
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.confirmation")},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish confirmation: %w", err)
	}
	return nil
}

func (k *KafkaSender) Close() error {
	return k.writer.Close()
}
