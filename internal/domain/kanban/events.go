package kanban

import (
	"deskflow/internal/domain/shared/events"
)

const (
	EventCardMoved = "kanban.card_moved"
)

// CardMovedEvent is emitted when a ticket-linked card changes lane. The
// sync bridge maps the destination lane name onto a ticket status; the
// origin tag stops the resulting ticket change from bouncing back into
// another card update.
type CardMovedEvent struct {
	events.BaseEvent
	CardID     uint
	TicketID   *uint
	BoardID    uint
	FromLaneID uint
	ToLaneID   uint
	ToLaneName string
	TimeInLane int64
	MovedBy    uint
}

func NewCardMovedEvent(
	companyID uint,
	card *Card,
	boardID uint,
	fromLaneID uint,
	toLaneName string,
	timeInLane int64,
	movedBy uint,
) CardMovedEvent {
	return CardMovedEvent{
		BaseEvent:  events.NewBaseEvent(EventCardMoved, companyID, events.OriginBoard),
		CardID:     card.ID(),
		TicketID:   card.TicketID(),
		BoardID:    boardID,
		FromLaneID: fromLaneID,
		ToLaneID:   card.LaneID(),
		ToLaneName: toLaneName,
		TimeInLane: timeInLane,
		MovedBy:    movedBy,
	}
}
