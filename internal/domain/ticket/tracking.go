package ticket

import (
	"fmt"
	"time"
)

// Tracking is one occupancy interval of a ticket under a queue/agent.
// At most one tracking row per ticket may have a nil finishedAt (the
// "current" row); the repository's find-or-create enforces this inside
// the caller's transaction.
type Tracking struct {
	id         uint
	ticketID   uint
	companyID  uint
	channelID  uint
	queueID    *uint
	userID     *uint
	startedAt  time.Time
	queuedAt   *time.Time
	finishedAt *time.Time
	ratingAt   *time.Time
	rated      bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewTracking(ticketID, companyID, channelID uint, userID *uint) (*Tracking, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}

	now := time.Now().UTC()

	return &Tracking{
		ticketID:  ticketID,
		companyID: companyID,
		channelID: channelID,
		userID:    userID,
		startedAt: now,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTracking(
	id uint,
	ticketID uint,
	companyID uint,
	channelID uint,
	queueID *uint,
	userID *uint,
	startedAt time.Time,
	queuedAt *time.Time,
	finishedAt *time.Time,
	ratingAt *time.Time,
	rated bool,
	createdAt, updatedAt time.Time,
) (*Tracking, error) {
	if id == 0 {
		return nil, fmt.Errorf("tracking ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Tracking{
		id:         id,
		ticketID:   ticketID,
		companyID:  companyID,
		channelID:  channelID,
		queueID:    queueID,
		userID:     userID,
		startedAt:  startedAt,
		queuedAt:   queuedAt,
		finishedAt: finishedAt,
		ratingAt:   ratingAt,
		rated:      rated,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (tr *Tracking) ID() uint {
	return tr.id
}

func (tr *Tracking) TicketID() uint {
	return tr.ticketID
}

func (tr *Tracking) CompanyID() uint {
	return tr.companyID
}

func (tr *Tracking) ChannelID() uint {
	return tr.channelID
}

func (tr *Tracking) QueueID() *uint {
	return tr.queueID
}

func (tr *Tracking) UserID() *uint {
	return tr.userID
}

func (tr *Tracking) StartedAt() time.Time {
	return tr.startedAt
}

func (tr *Tracking) QueuedAt() *time.Time {
	return tr.queuedAt
}

func (tr *Tracking) FinishedAt() *time.Time {
	return tr.finishedAt
}

func (tr *Tracking) RatingAt() *time.Time {
	return tr.ratingAt
}

func (tr *Tracking) Rated() bool {
	return tr.rated
}

func (tr *Tracking) CreatedAt() time.Time {
	return tr.createdAt
}

func (tr *Tracking) UpdatedAt() time.Time {
	return tr.updatedAt
}

func (tr *Tracking) SetID(id uint) error {
	if tr.id != 0 {
		return fmt.Errorf("tracking ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("tracking ID cannot be zero")
	}
	tr.id = id
	return nil
}

// IsOpen reports whether this is the ticket's current interval.
func (tr *Tracking) IsOpen() bool {
	return tr.finishedAt == nil
}

// StampQueued records the ticket entering a queue. The user snapshot is
// cleared: a queued ticket has no agent yet.
func (tr *Tracking) StampQueued(queueID *uint) {
	now := time.Now().UTC()
	tr.queuedAt = &now
	tr.queueID = queueID
	tr.userID = nil
	tr.touch()
}

// StampStarted records an agent taking the ticket. Any pending rating
// state from a previous close attempt is reset.
func (tr *Tracking) StampStarted(userID uint) {
	now := time.Now().UTC()
	tr.startedAt = now
	tr.userID = &userID
	tr.ratingAt = nil
	tr.rated = false
	tr.touch()
}

// ReassignUser updates the agent snapshot without restarting the interval.
// Used when a ticket changes hands while staying open.
func (tr *Tracking) ReassignUser(userID *uint) {
	tr.userID = userID
	tr.touch()
}

// Finish closes the interval. Idempotent: a second call keeps the first
// finish time.
func (tr *Tracking) Finish() {
	if tr.finishedAt != nil {
		return
	}
	now := time.Now().UTC()
	tr.finishedAt = &now
	tr.touch()
}

// MarkRatingRequested stamps that a rating request went out. At most one
// unanswered rating request per interval: callers gate on RatingAt() == nil.
func (tr *Tracking) MarkRatingRequested() error {
	if tr.ratingAt != nil {
		return fmt.Errorf("rating already requested for this interval")
	}
	now := time.Now().UTC()
	tr.ratingAt = &now
	tr.touch()
	return nil
}

// NeedsRetriage reports whether a reopen of the owning ticket must force
// queue/user re-triage: a rating went out and an agent owned the interval.
func (tr *Tracking) NeedsRetriage() bool {
	return tr.ratingAt != nil && tr.userID != nil
}

func (tr *Tracking) touch() {
	tr.updatedAt = time.Now().UTC()
}
