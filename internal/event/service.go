package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/mq"
)

// Service consumes console activity events and writes them to the audit log.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
	topic      string
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	topic string,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
		topic:      topic,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(
		s.topic,
		func(ctx context.Context, topic string, payload []byte) error {
			var ev activity.Event
			if err := json.Unmarshal(payload, &ev); err != nil {
				return fmt.Errorf("unmarshal activity event: %w", err)
			}

			if err := s.handleActivityEvent(ctx, ev); err != nil {
				return fmt.Errorf("handle activity event: %w", err)
			}

			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("register activity event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}
