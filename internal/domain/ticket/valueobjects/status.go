package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusPending TicketStatus = "pending"
	StatusOpen    TicketStatus = "open"
	StatusClosed  TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusPending: true,
	StatusOpen:    true,
	StatusClosed:  true,
}

// Closed is terminal but reopenable: closed -> pending starts a new
// tracking interval, it does not resurrect the old one.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusPending: {
		StatusOpen,
		StatusClosed,
	},
	StatusOpen: {
		StatusPending,
		StatusClosed,
	},
	StatusClosed: {
		StatusPending,
	},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowedTransitions, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsPending() bool {
	return ts == StatusPending
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsActive reports whether a ticket in this status still occupies the
// (contact, channel) pair. At most one active ticket may exist per
// contact/channel/company.
func (ts TicketStatus) IsActive() bool {
	return ts == StatusPending || ts == StatusOpen
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
