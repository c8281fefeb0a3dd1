package ticket

import (
	"fmt"
	"time"

	vo "deskflow/internal/domain/ticket/valueobjects"
)

// Ticket is one conversation thread between a contact and the company on a
// channel. At most one ticket with an active status (pending/open) may
// exist per (contact, channel, company); the repositories enforce this via
// find-or-create semantics. Tickets are never hard-deleted: closed tickets
// persist as history.
type Ticket struct {
	id             uint
	companyID      uint
	contactID      uint
	channelID      uint
	queueID        *uint
	userID         *uint
	status         vo.TicketStatus
	unreadMessages int
	value          float64
	sku            string
	isGroup        bool
	chatbot        bool
	createdAt      time.Time
	updatedAt      time.Time
	closedAt       *time.Time
}

func NewTicket(companyID, contactID, channelID uint, queueID *uint, isGroup bool) (*Ticket, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if contactID == 0 {
		return nil, fmt.Errorf("contact ID is required")
	}
	if channelID == 0 {
		return nil, fmt.Errorf("channel ID is required")
	}

	now := time.Now().UTC()

	return &Ticket{
		companyID: companyID,
		contactID: contactID,
		channelID: channelID,
		queueID:   queueID,
		status:    vo.StatusPending,
		isGroup:   isGroup,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTicket(
	id uint,
	companyID uint,
	contactID uint,
	channelID uint,
	queueID *uint,
	userID *uint,
	status vo.TicketStatus,
	unreadMessages int,
	value float64,
	sku string,
	isGroup bool,
	chatbot bool,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if contactID == 0 {
		return nil, fmt.Errorf("contact ID is required")
	}
	if channelID == 0 {
		return nil, fmt.Errorf("channel ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:             id,
		companyID:      companyID,
		contactID:      contactID,
		channelID:      channelID,
		queueID:        queueID,
		userID:         userID,
		status:         status,
		unreadMessages: unreadMessages,
		value:          value,
		sku:            sku,
		isGroup:        isGroup,
		chatbot:        chatbot,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		closedAt:       closedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) CompanyID() uint {
	return t.companyID
}

func (t *Ticket) ContactID() uint {
	return t.contactID
}

func (t *Ticket) ChannelID() uint {
	return t.channelID
}

func (t *Ticket) QueueID() *uint {
	return t.queueID
}

func (t *Ticket) UserID() *uint {
	return t.userID
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) UnreadMessages() int {
	return t.unreadMessages
}

func (t *Ticket) Value() float64 {
	return t.value
}

func (t *Ticket) SKU() string {
	return t.sku
}

func (t *Ticket) IsGroup() bool {
	return t.isGroup
}

func (t *Ticket) Chatbot() bool {
	return t.chatbot
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// Open transitions the ticket to open under the accepting user.
func (t *Ticket) Open(userID uint) error {
	if userID == 0 {
		return fmt.Errorf("user ID is required to open a ticket")
	}
	if !t.status.IsOpen() && !t.status.CanTransitionTo(vo.StatusOpen) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, vo.StatusOpen)
	}

	t.status = vo.StatusOpen
	t.userID = &userID
	t.closedAt = nil
	t.touch()
	return nil
}

// MoveToPending returns the ticket to the queue. The assigned user is
// cleared so the ticket can be picked up again.
func (t *Ticket) MoveToPending() error {
	if !t.status.IsPending() && !t.status.CanTransitionTo(vo.StatusPending) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, vo.StatusPending)
	}

	t.status = vo.StatusPending
	t.userID = nil
	t.closedAt = nil
	t.touch()
	return nil
}

// Close ends the conversation. Chatbot and integration state is cleared so
// a later reopen starts from a clean slate.
func (t *Ticket) Close() error {
	if t.status.IsClosed() {
		return nil
	}
	if !t.status.CanTransitionTo(vo.StatusClosed) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, vo.StatusClosed)
	}

	now := time.Now().UTC()
	t.status = vo.StatusClosed
	t.chatbot = false
	t.unreadMessages = 0
	t.closedAt = &now
	t.touch()
	return nil
}

// Reopen transitions closed -> pending. Queue and user are cleared so the
// reopened conversation is re-triaged from the queue.
func (t *Ticket) Reopen() error {
	if !t.status.IsClosed() {
		return fmt.Errorf("only closed tickets can be reopened")
	}

	t.status = vo.StatusPending
	t.queueID = nil
	t.userID = nil
	t.closedAt = nil
	t.touch()
	return nil
}

// AssignQueue changes the queue the ticket sits in.
func (t *Ticket) AssignQueue(queueID *uint) {
	t.queueID = queueID
	t.touch()
}

// AssignUser changes the agent working the ticket.
func (t *Ticket) AssignUser(userID *uint) {
	t.userID = userID
	t.touch()
}

func (t *Ticket) SetUnreadMessages(count int) {
	if count < 0 {
		count = 0
	}
	t.unreadMessages = count
	t.touch()
}

// UpdateCommercial sets the deal value and SKU mirrored onto kanban cards.
func (t *Ticket) UpdateCommercial(value float64, sku string) {
	t.value = value
	t.sku = sku
	t.touch()
}

func (t *Ticket) EnableChatbot() {
	t.chatbot = true
	t.touch()
}

func (t *Ticket) DisableChatbot() {
	t.chatbot = false
	t.touch()
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now().UTC()
}
