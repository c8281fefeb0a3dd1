package ticket

import (
	"context"
	"time"

	vo "deskflow/internal/domain/ticket/valueobjects"
)

// TicketFilter narrows List queries. CompanyID is always required.
type TicketFilter struct {
	CompanyID    uint
	Status       *vo.TicketStatus
	QueueID      *uint
	UserID       *uint
	CreatedAfter *time.Time
	Page         int
	PageSize     int
}

// TicketRepository persists tickets. Every method is tenant-scoped: the
// company ID is part of the query, not an afterthought. Access patterns
// are explicit typed functions rather than a generic query builder.
type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id, companyID uint) (*Ticket, error)

	// FindActiveByContactChannel returns the newest open/pending ticket for
	// a contact on a channel, or nil when none exists.
	FindActiveByContactChannel(ctx context.Context, contactID, channelID, companyID uint) (*Ticket, error)

	// FindActiveByContactChannelExcluding is the same lookup with one ticket
	// left out, so the ticket under transfer cannot mask an older active one.
	FindActiveByContactChannelExcluding(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*Ticket, error)

	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
}

// TrackingRepository persists ticket occupancy intervals.
type TrackingRepository interface {
	Save(ctx context.Context, tr *Tracking) error
	Update(ctx context.Context, tr *Tracking) error

	// FindOpenByTicket returns the interval with a nil finishedAt, or nil
	// when the ticket has no current interval.
	FindOpenByTicket(ctx context.Context, ticketID, companyID uint) (*Tracking, error)

	// FindOrCreateOpen returns the current interval, creating one when none
	// exists. Must run inside the caller's transaction so concurrent calls
	// for the same ticket cannot create duplicate open rows.
	FindOrCreateOpen(ctx context.Context, ticketID, companyID, channelID uint, userID *uint) (*Tracking, error)

	// FindLastFinishedByTicket returns the most recently finished interval,
	// used by reopen to decide whether re-triage is forced.
	FindLastFinishedByTicket(ctx context.Context, ticketID, companyID uint) (*Tracking, error)
}
