package kanban

import (
	"fmt"
	"time"
)

// Metadata keys stamped on cards by the engine.
const (
	MetaCameFromLane = "cameFromLaneId"
)

// Card is a unit of work on a board, optionally mirroring a ticket.
// startedAt resets every time the card changes lane; timeInLane is the
// dwell snapshot of the lane just left, not a running total. Cards linked
// to a ticket are archived, never hard-deleted.
type Card struct {
	id             uint
	laneID         uint
	title          string
	description    string
	priority       int
	dueDate        *time.Time
	value          float64
	sku            string
	assignedUserID *uint
	contactID      *uint
	ticketID       *uint
	startedAt      *time.Time
	timeInLane     int64
	metadata       map[string]interface{}
	isArchived     bool
	isBlocked      bool
	completedAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewCard(laneID uint, title string) (*Card, error) {
	if laneID == 0 {
		return nil, fmt.Errorf("lane ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("card title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("card title exceeds maximum length of 200 characters")
	}

	now := time.Now().UTC()

	return &Card{
		laneID:    laneID,
		title:     title,
		startedAt: &now,
		metadata:  make(map[string]interface{}),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructCard(
	id uint,
	laneID uint,
	title string,
	description string,
	priority int,
	dueDate *time.Time,
	value float64,
	sku string,
	assignedUserID *uint,
	contactID *uint,
	ticketID *uint,
	startedAt *time.Time,
	timeInLane int64,
	metadata map[string]interface{},
	isArchived bool,
	isBlocked bool,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Card, error) {
	if id == 0 {
		return nil, fmt.Errorf("card ID cannot be zero")
	}
	if laneID == 0 {
		return nil, fmt.Errorf("lane ID is required")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Card{
		id:             id,
		laneID:         laneID,
		title:          title,
		description:    description,
		priority:       priority,
		dueDate:        dueDate,
		value:          value,
		sku:            sku,
		assignedUserID: assignedUserID,
		contactID:      contactID,
		ticketID:       ticketID,
		startedAt:      startedAt,
		timeInLane:     timeInLane,
		metadata:       metadata,
		isArchived:     isArchived,
		isBlocked:      isBlocked,
		completedAt:    completedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (c *Card) ID() uint                     { return c.id }
func (c *Card) LaneID() uint                 { return c.laneID }
func (c *Card) Title() string                { return c.title }
func (c *Card) Description() string          { return c.description }
func (c *Card) Priority() int                { return c.priority }
func (c *Card) DueDate() *time.Time          { return c.dueDate }
func (c *Card) Value() float64               { return c.value }
func (c *Card) SKU() string                  { return c.sku }
func (c *Card) AssignedUserID() *uint        { return c.assignedUserID }
func (c *Card) ContactID() *uint             { return c.contactID }
func (c *Card) TicketID() *uint              { return c.ticketID }
func (c *Card) StartedAt() *time.Time        { return c.startedAt }
func (c *Card) TimeInLane() int64            { return c.timeInLane }
func (c *Card) IsArchived() bool             { return c.isArchived }
func (c *Card) IsBlocked() bool              { return c.isBlocked }
func (c *Card) CompletedAt() *time.Time      { return c.completedAt }
func (c *Card) CreatedAt() time.Time         { return c.createdAt }
func (c *Card) UpdatedAt() time.Time         { return c.updatedAt }

func (c *Card) Metadata() map[string]interface{} {
	metadataCopy := make(map[string]interface{}, len(c.metadata))
	for k, v := range c.metadata {
		metadataCopy[k] = v
	}
	return metadataCopy
}

func (c *Card) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("card ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("card ID cannot be zero")
	}
	c.id = id
	return nil
}

// LinkTicket ties the card to a ticket. Only the sync bridge may create or
// break this link.
func (c *Card) LinkTicket(ticketID uint) error {
	if ticketID == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	c.ticketID = &ticketID
	c.touch()
	return nil
}

func (c *Card) LinkContact(contactID uint) {
	c.contactID = &contactID
	c.touch()
}

func (c *Card) Retitle(title string) error {
	if len(title) == 0 {
		return fmt.Errorf("card title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("card title exceeds maximum length of 200 characters")
	}
	c.title = title
	c.touch()
	return nil
}

func (c *Card) SetDescription(description string) {
	c.description = description
	c.touch()
}

func (c *Card) SetDueDate(dueDate *time.Time) {
	c.dueDate = dueDate
	c.touch()
}

// Mirror updates the fields kept in sync with the linked ticket.
func (c *Card) Mirror(assignedUserID *uint, value float64, sku string, priority int) {
	c.assignedUserID = assignedUserID
	c.value = value
	c.sku = sku
	c.priority = priority
	c.touch()
}

func (c *Card) Assign(userID *uint) {
	c.assignedUserID = userID
	c.touch()
}

// MoveToLane records the dwell time of the lane being left and enters the
// target lane at now. The came-from marker feeds conversion-rate metrics.
func (c *Card) MoveToLane(targetLaneID uint, now time.Time) (int64, error) {
	if targetLaneID == 0 {
		return 0, fmt.Errorf("target lane ID is required")
	}
	if targetLaneID == c.laneID {
		return 0, nil
	}

	entered := c.createdAt
	if c.startedAt != nil {
		entered = *c.startedAt
	}
	dwell := int64(now.Sub(entered).Seconds())
	if dwell < 0 {
		dwell = 0
	}

	c.metadata[MetaCameFromLane] = c.laneID
	c.timeInLane = dwell
	c.laneID = targetLaneID
	c.startedAt = &now
	c.touch()
	return dwell, nil
}

// Archive hides the card from the board. Used instead of deletion for
// ticket-linked cards.
func (c *Card) Archive() {
	c.isArchived = true
	c.touch()
}

// Complete stamps the card as done and archives it; idempotent on the
// completion time.
func (c *Card) Complete() {
	if c.completedAt == nil {
		now := time.Now().UTC()
		c.completedAt = &now
	}
	c.isArchived = true
	c.touch()
}

func (c *Card) Block() {
	c.isBlocked = true
	c.touch()
}

func (c *Card) Unblock() {
	c.isBlocked = false
	c.touch()
}

// CameFromLane returns the lane the card last moved out of, if recorded.
func (c *Card) CameFromLane() (uint, bool) {
	v, ok := c.metadata[MetaCameFromLane]
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case float64:
		// JSON round-trip turns numbers into float64.
		return uint(id), true
	default:
		return 0, false
	}
}

func (c *Card) touch() {
	c.updatedAt = time.Now().UTC()
}
