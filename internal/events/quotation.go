package events

import "github.com/google/uuid"

// Event type identifiers for quotation lifecycle events.
const (
	EventQuotationCreated   = "quotation.created"
	EventQuotationFinalized = "quotation.finalized"
	EventQuotationExpired   = "quotation.expired"
)

// QuotationCreated is published after a new quotation is persisted.
type QuotationCreated struct {
	BaseEvent
	QuotationID uuid.UUID
	Name        string
}

func NewQuotationCreated(quotationID uuid.UUID, name string) QuotationCreated {
	return QuotationCreated{
		BaseEvent:   NewBaseEvent(),
		QuotationID: quotationID,
		Name:        name,
	}
}

func (e QuotationCreated) EventName() string { return EventQuotationCreated }

// QuotationFinalized is published after a quotation transitions to
// FINALIZED and its snapshot is written. CustomerEmail is empty when
// the quotation has no customer attached.
type QuotationFinalized struct {
	BaseEvent
	QuotationID   uuid.UUID
	Name          string
	TotalCents    int64
	CustomerEmail string
	CustomerName  string
}

func NewQuotationFinalized(quotationID uuid.UUID, name string, totalCents int64, customerEmail, customerName string) QuotationFinalized {
	return QuotationFinalized{
		BaseEvent:     NewBaseEvent(),
		QuotationID:   quotationID,
		Name:          name,
		TotalCents:    totalCents,
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
	}
}

func (e QuotationFinalized) EventName() string { return EventQuotationFinalized }

// QuotationExpired is published by the expiry sweep when a draft
// quotation passes its expiry date.
type QuotationExpired struct {
	BaseEvent
	QuotationID uuid.UUID
	Name        string
}

func NewQuotationExpired(quotationID uuid.UUID, name string) QuotationExpired {
	return QuotationExpired{
		BaseEvent:   NewBaseEvent(),
		QuotationID: quotationID,
		Name:        name,
	}
}

func (e QuotationExpired) EventName() string { return EventQuotationExpired }
