// Package kafka publishes lifecycle notifications to a Kafka topic.
//
// Delivery is fire-and-forget: the notifier enqueues into a bounded inbox
// and a dispatcher goroutine drains it into the writer, so a broker outage
// never stalls the use case that raised the notification.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shipping/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// notificationEnvelope is the wire form of one notification.
type notificationEnvelope struct {
	RecipientID     string            `json:"recipientId"`
	EventType       string            `json:"eventType"`
	Title           string            `json:"title"`
	Message         string            `json:"message"`
	RelatedEntityID string            `json:"relatedEntityId"`
	Severity        string            `json:"severity"`
	OccurredAt      time.Time         `json:"occurredAt"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// Notifier implements ports.Notifier on top of a Kafka topic. Messages are
// keyed by recipient so each recipient's notifications stay ordered within
// a partition.
type Notifier struct {
	writer *kafka.Writer
	inbox  chan kafka.Message
	done   chan struct{}
	logger *slog.Logger
}

// NewNotifier creates a Notifier publishing to the topic via the brokers.
// bufSize bounds the inbox; when the inbox is full new notifications are
// dropped with a warning instead of blocking the caller.
func NewNotifier(brokers []string, topic string, bufSize int, logger *slog.Logger) *Notifier {
	n := &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:  make(chan kafka.Message, bufSize),
		done:   make(chan struct{}),
		logger: logger.With("component", "kafka_notifier"),
	}

	go n.dispatch()
	return n
}

// Notify enqueues the notification for publishing. It never returns an
// error and never blocks: serialization failures and a full inbox are
// logged and the notification is dropped.
func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) {
	value, err := json.Marshal(notificationEnvelope{
		RecipientID:     notification.RecipientID.String(),
		EventType:       string(notification.EventType),
		Title:           notification.Title,
		Message:         notification.Message,
		RelatedEntityID: notification.RelatedEntityID.String(),
		Severity:        string(notification.Severity),
		OccurredAt:      time.Now().UTC(),
		Metadata:        notification.Metadata,
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "notification serialization failed",
			"eventType", notification.EventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(notification.RecipientID.String()),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(notification.EventType)},
			{Key: "severity", Value: []byte(notification.Severity)},
		},
	}

	select {
	case n.inbox <- msg:
	default:
		n.logger.WarnContext(ctx, "notification inbox full, dropping message",
			"eventType", notification.EventType,
			"recipientId", notification.RecipientID.String())
	}
}

// Close stops accepting notifications, flushes the inbox and closes the
// underlying writer. It blocks until the dispatcher has drained.
func (n *Notifier) Close() error {
	close(n.inbox)
	<-n.done
	return n.writer.Close()
}

func (n *Notifier) dispatch() {
	defer close(n.done)

	for msg := range n.inbox {
		if err := n.writer.WriteMessages(context.Background(), msg); err != nil {
			n.logger.Warn("notification publish failed",
				"eventType", headerValue(msg, "eventType"), "error", err)
		}
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
