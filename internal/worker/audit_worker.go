package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-bot/ticket-api/internal/events"
	"github.com/helpdesk-bot/ticket-api/internal/observability"
)

// StartAuditWorker subscribes logging and metrics handlers to ticket
// lifecycle events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}

	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		metrics.TicketCreated()
		if payload, ok := event.Payload.(events.TicketCreatedPayload); ok {
			logger.Info("ticket created",
				zap.String("ticket_id", event.TicketID),
				zap.String("issue", payload.Issue),
				zap.Int("price", payload.Price))
		}
		return nil
	})

	dispatcher.Subscribe(events.EventTicketUpdated, func(_ context.Context, event events.Event) error {
		metrics.TicketUpdated()
		if payload, ok := event.Payload.(events.TicketUpdatedPayload); ok {
			logger.Info("ticket updated",
				zap.String("ticket_id", event.TicketID),
				zap.String("field", payload.Field))
		}
		return nil
	})
}
