package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/goscheduler/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesEnvelope(t *testing.T) {
	writer := &fakeWriter{}
	pub := &KafkaPublisher{writer: writer, logger: zerolog.Nop()}

	created := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	err := pub.Publish(context.Background(), &domain.OutboxEvent{
		ID:            "evt-1",
		AggregateID:   "transfer-1",
		AggregateType: domain.AggregateTypeTransfer,
		EventType:     domain.EventTypeTransferScheduled,
		Payload:       map[string]any{"fee": "12.00"},
		CreatedAt:     created,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(writer.messages))
	}

	msg := writer.messages[0]
	if string(msg.Key) != "transfer-1" {
		t.Fatalf("expected aggregate id key, got %s", msg.Key)
	}
	if len(msg.Headers) != 2 || string(msg.Headers[0].Value) != domain.EventTypeTransferScheduled {
		t.Fatalf("unexpected headers: %v", msg.Headers)
	}

	var got envelope
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("invalid message value: %v", err)
	}
	if got.ID != "evt-1" || got.Payload["fee"] != "12.00" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker unavailable")
	pub := &KafkaPublisher{writer: &fakeWriter{err: boom}, logger: zerolog.Nop()}

	err := pub.Publish(context.Background(), &domain.OutboxEvent{ID: "evt-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestKafkaPublisherClose(t *testing.T) {
	writer := &fakeWriter{}
	pub := &KafkaPublisher{writer: writer, logger: zerolog.Nop()}

	if err := pub.Close(); err != nil || !writer.closed {
		t.Fatalf("expected writer to be closed, err=%v", err)
	}
}

func TestNewKafkaPublisherConfiguresWriter(t *testing.T) {
	pub := NewKafkaPublisher([]string{"localhost:9092"}, "scheduled-transfers", zerolog.Nop())
	defer pub.Close()

	writer, ok := pub.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("expected *kafka.Writer, got %T", pub.writer)
	}
	if writer.Topic != "scheduled-transfers" || writer.RequiredAcks != kafka.RequireAll {
		t.Fatalf("unexpected writer config: topic=%s acks=%v", writer.Topic, writer.RequiredAcks)
	}
}
