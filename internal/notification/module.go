// Package notification turns domain events into outbound messages.
// Delivery is best-effort: a failed email never blocks or rolls back
// the operation that raised the event.
package notification

import (
	"context"

	"erp_backend/internal/events"
	"erp_backend/internal/notification/email"
	quotationsvc "erp_backend/internal/quotations/service"
	"erp_backend/platform/logger"
)

// Module wires event subscriptions to the email sender
type Module struct {
	sender email.Sender // nil when email delivery is disabled
	log    *logger.Logger
}

// NewModule creates the notification module. A nil sender disables
// delivery while keeping the subscriptions in place.
func NewModule(sender email.Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "notification"
}

// Subscribe registers the module's event handlers on the bus
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.EventQuotationFinalized, events.HandlerFunc(m.handleQuotationFinalized))
}

func (m *Module) handleQuotationFinalized(ctx context.Context, event events.Event) error {
	finalized, ok := event.(events.QuotationFinalized)
	if !ok {
		return nil
	}
	if m.sender == nil || finalized.CustomerEmail == "" {
		return nil
	}

	err := m.sender.SendQuotationFinalized(ctx,
		finalized.CustomerEmail,
		finalized.CustomerName,
		finalized.Name,
		quotationsvc.FormatCents(finalized.TotalCents),
	)
	if err != nil {
		m.log.Error("failed to send finalize notification",
			"quotationId", finalized.QuotationID.String(),
			"error", err.Error(),
		)
		return err
	}
	return nil
}
