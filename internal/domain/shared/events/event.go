package events

import (
	"time"

	"github.com/google/uuid"
)

// Origin identifies which side of the ticket/card mirror produced an event.
// The sync bridge uses it to stop a change from bouncing back to the side
// that caused it.
type Origin string

const (
	OriginTicket Origin = "ticket"
	OriginBoard  Origin = "board"
	OriginSweep  Origin = "sweep"
)

// DomainEvent represents a domain event.
type DomainEvent interface {
	// GetEventID returns the unique ID of this event instance.
	GetEventID() string

	// GetEventType returns the type/name of the event.
	GetEventType() string

	// GetCompanyID returns the tenant the event belongs to.
	GetCompanyID() uint

	// GetOrigin returns which side of the mirror produced the event.
	GetOrigin() Origin

	// GetOccurredAt returns when the event occurred.
	GetOccurredAt() time.Time
}

// BaseEvent provides common fields for all domain events.
type BaseEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CompanyID  uint      `json:"company_id"`
	Origin     Origin    `json:"origin"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBaseEvent builds the common event fields with a fresh event ID.
func NewBaseEvent(eventType string, companyID uint, origin Origin) BaseEvent {
	return BaseEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		CompanyID:  companyID,
		Origin:     origin,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) GetEventID() string { return e.EventID }

func (e BaseEvent) GetEventType() string { return e.EventType }

func (e BaseEvent) GetCompanyID() uint { return e.CompanyID }

func (e BaseEvent) GetOrigin() Origin { return e.Origin }

func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// EventHandler represents a handler for domain events.
type EventHandler interface {
	// Handle processes a domain event.
	Handle(event DomainEvent) error

	// CanHandle checks if this handler can handle the given event type.
	CanHandle(eventType string) bool
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

// EventSubscriber subscribes to domain events.
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) error
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventDispatcher combines publisher and subscriber functionality.
type EventDispatcher interface {
	EventPublisher
	EventSubscriber

	Start() error
	Stop() error
}
