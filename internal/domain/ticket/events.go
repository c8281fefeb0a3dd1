package ticket

import (
	"deskflow/internal/domain/shared/events"
)

// Event types consumed by the sync bridge.
const (
	EventTicketCreated       = "ticket.created"
	EventTicketReopened      = "ticket.reopened"
	EventTicketUpdated       = "ticket.updated"
	EventTicketClosed        = "ticket.closed"
	EventTicketStatusChanged = "ticket.status_changed"
)

type TicketCreatedEvent struct {
	events.BaseEvent
	TicketID  uint
	ContactID uint
	ChannelID uint
	QueueID   *uint
	Status    string
}

func NewTicketCreatedEvent(t *Ticket, origin events.Origin) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketCreated, t.CompanyID(), origin),
		TicketID:  t.ID(),
		ContactID: t.ContactID(),
		ChannelID: t.ChannelID(),
		QueueID:   t.QueueID(),
		Status:    t.Status().String(),
	}
}

type TicketReopenedEvent struct {
	events.BaseEvent
	TicketID  uint
	ContactID uint
	ChannelID uint
}

func NewTicketReopenedEvent(t *Ticket, origin events.Origin) TicketReopenedEvent {
	return TicketReopenedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketReopened, t.CompanyID(), origin),
		TicketID:  t.ID(),
		ContactID: t.ContactID(),
		ChannelID: t.ChannelID(),
	}
}

// TicketUpdatedEvent covers any mutation that is not a create, reopen or
// close; the bridge mirrors the changed fields onto the card.
type TicketUpdatedEvent struct {
	events.BaseEvent
	TicketID       uint
	UserID         *uint
	QueueID        *uint
	Status         string
	UnreadMessages int
	Value          float64
	SKU            string
}

func NewTicketUpdatedEvent(t *Ticket, origin events.Origin) TicketUpdatedEvent {
	return TicketUpdatedEvent{
		BaseEvent:      events.NewBaseEvent(EventTicketUpdated, t.CompanyID(), origin),
		TicketID:       t.ID(),
		UserID:         t.UserID(),
		QueueID:        t.QueueID(),
		Status:         t.Status().String(),
		UnreadMessages: t.UnreadMessages(),
		Value:          t.Value(),
		SKU:            t.SKU(),
	}
}

type TicketClosedEvent struct {
	events.BaseEvent
	TicketID uint
}

func NewTicketClosedEvent(t *Ticket, origin events.Origin) TicketClosedEvent {
	return TicketClosedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketClosed, t.CompanyID(), origin),
		TicketID:  t.ID(),
	}
}

// TicketStatusChangedEvent is emitted alongside the specific events above
// for realtime consumers that only care about the transition itself.
type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketID  uint
	OldStatus string
	NewStatus string
	ChangedBy uint
}

func NewTicketStatusChangedEvent(t *Ticket, oldStatus string, changedBy uint, origin events.Origin) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketStatusChanged, t.CompanyID(), origin),
		TicketID:  t.ID(),
		OldStatus: oldStatus,
		NewStatus: t.Status().String(),
		ChangedBy: changedBy,
	}
}
