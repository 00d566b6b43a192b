package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Writer publishes order events for the outbox relay. Hash balancing keeps
// events for one order on one partition; RequireAll avoids losing events the
// outbox already marked sent.
type Writer struct {
	*kafka.Writer
}

func NewWriter(brokers []string) *Writer {
	return &Writer{
		Writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (w *Writer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return w.Writer.WriteMessages(ctx, msgs...)
}
