package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"boothly/internal/domain"
)

// Topics names the topic for each notification kind.
type Topics struct {
	Sessions string
	Events   string
	Profiles string
}

// Config holds configuration for creating a notifier.
type Config struct {
	Provider string // "kafka" or "noop"
	Brokers  []string
	Topics   Topics
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewNotifier creates a Notifier from config. Provider "kafka" publishes JSON
// messages with segmentio/kafka-go; anything else logs and drops them.
func NewNotifier(cfg Config, logger *slog.Logger) domain.Notifier {
	if cfg.Provider != "kafka" {
		if cfg.Provider != "noop" && cfg.Provider != "" {
			logger.Warn("unknown broker provider, using noop", "provider", cfg.Provider)
		}
		return &noopNotifier{logger: logger}
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newKafkaNotifier(writer, cfg.Topics, logger)
}

type kafkaNotifier struct {
	writer messageWriter
	topics Topics
	logger *slog.Logger
}

func newKafkaNotifier(w messageWriter, topics Topics, logger *slog.Logger) *kafkaNotifier {
	return &kafkaNotifier{writer: w, topics: topics, logger: logger}
}

func (k *kafkaNotifier) SessionChanged(ctx context.Context, change domain.SessionChange) error {
	return k.publish(ctx, k.topics.Sessions, change.UserID, string(change.Type), change)
}

func (k *kafkaNotifier) EventCreated(ctx context.Context, event *domain.Event) error {
	return k.publish(ctx, k.topics.Events, event.ID, "event.created", event)
}

func (k *kafkaNotifier) ProfileSaved(ctx context.Context, profile *domain.Profile) error {
	return k.publish(ctx, k.topics.Profiles, profile.UserID, "profile.saved", profile)
}

func (k *kafkaNotifier) publish(ctx context.Context, topic, key, kind string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: "type", Value: []byte(kind)}},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", kind, topic, err)
	}
	k.logger.DebugContext(ctx, "published", "topic", topic, "type", kind, "key", key)
	return nil
}

func (k *kafkaNotifier) Close() error {
	return k.writer.Close()
}

type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) SessionChanged(ctx context.Context, change domain.SessionChange) error {
	n.logger.DebugContext(ctx, "session change (noop)", "type", change.Type, "user_id", change.UserID)
	return nil
}

func (n *noopNotifier) EventCreated(ctx context.Context, event *domain.Event) error {
	n.logger.DebugContext(ctx, "event created (noop)", "event_id", event.ID)
	return nil
}

func (n *noopNotifier) ProfileSaved(ctx context.Context, profile *domain.Profile) error {
	n.logger.DebugContext(ctx, "profile saved (noop)", "user_id", profile.UserID)
	return nil
}

func (n *noopNotifier) Close() error { return nil }
