package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads ticket events off a topic and hands them, already
// decoded, to a handler. A message that does not decode as a TicketEvent
// is logged and skipped; the stream keeps moving.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks reading ticket events until ctx is canceled or the
// handler fails.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, TicketEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeTicketEvent(msg.Value)
		if err != nil {
			log.Printf("WARNING: skipping undecodable ticket event on %s: %v", msg.Topic, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeTicketEvent(value []byte) (TicketEvent, error) {
	var event TicketEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return TicketEvent{}, err
	}
	return event, nil
}
