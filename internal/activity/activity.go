// Package activity publishes an audit trail of the console's mutating actions.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-console/pkg/carrier"
	"github.com/tuanvumaihuynh/inventory-console/pkg/ptr"
)

type Type string

const (
	TypeLogin               Type = "login"
	TypeLogout              Type = "logout"
	TypeRegister            Type = "register"
	TypeProductCreated      Type = "product.created"
	TypeProductDeleted      Type = "product.deleted"
	TypeTransactionRecorded Type = "transaction.recorded"
	TypeUserApproved        Type = "user.approved"
	TypeUserRejected        Type = "user.rejected"
)

// Event describes one successful user action.
type Event struct {
	Type       Type       `json:"type"`
	Username   string     `json:"username"`
	Role       model.Role `json:"role,omitempty"`
	Subject    string     `json:"subject,omitempty"`
	Detail     string     `json:"detail,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Publisher records activity. Publishing never fails the action it records.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*KafkaPublisher)(nil)
)

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

type KafkaPublisher struct {
	producer mq.Producer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
}

func NewKafkaPublisher(producer mq.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(slog.String("component", "activity")),
		now:      time.Now,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = p.now().UTC()
	}

	if err := p.publish(ctx, ev); err != nil {
		p.logger.WarnContext(ctx, "publish activity event",
			slog.String("type", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := mq.ProduceMsg{
		Topic:   p.topic,
		Headers: carrier.BuildHeaders(ctx),
		Payload: payload,
	}
	if ev.Username != "" {
		msg.PartitionKey = ptr.New(ev.Username)
	}

	if err := p.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("produce: %w", err)
	}
	return nil
}
