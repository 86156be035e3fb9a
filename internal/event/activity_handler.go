package event

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
)

func (s *Service) handleActivityEvent(ctx context.Context, ev activity.Event) error {
	s.logger.InfoContext(ctx, "console activity",
		slog.String("type", string(ev.Type)),
		slog.String("user", ev.Username),
		slog.String("role", string(ev.Role)),
		slog.String("subject", ev.Subject),
		slog.String("detail", ev.Detail),
		slog.Time("occurred_at", ev.OccurredAt),
	)
	return nil
}
