package sync

import (
	"context"
	"fmt"
	"strings"

	kanbanusecases "deskflow/internal/application/kanban/usecases"
	ticketusecases "deskflow/internal/application/ticket/usecases"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/domain/ticket"
	vo "deskflow/internal/domain/ticket/valueobjects"
	"deskflow/internal/shared/constants"
	"deskflow/internal/shared/logger"
)

// defaultLaneStatusMap is the fallback lane-name to ticket-status mapping,
// matching the seed lane names. A company overrides it through the
// kanbanLaneStatusMap setting.
var defaultLaneStatusMap = map[string]string{
	"entrada":        vo.StatusPending.String(),
	"em atendimento": vo.StatusOpen.String(),
	"resolvido":      vo.StatusClosed.String(),
}

// Bridge reconciles tickets and their mirrored cards. Ticket-side events
// flow into card mutations; the card-moved event flows back into the
// ticket state machine. Every handler is best-effort: a failed mirror is
// logged and never propagates into the operation that emitted the event.
//
// Loop shielding relies on the event origin: ticket events stamped
// OriginBoard were caused by a card move and are not mirrored back onto
// the board.
type Bridge struct {
	ticketRepo   ticket.TicketRepository
	cardRepo     kanban.CardRepository
	laneRepo     kanban.LaneRepository
	boardRepo    kanban.BoardRepository
	createCard   kanbanusecases.CreateCardExecutor
	updateTicket ticketusecases.UpdateTicketExecutor
	settings     common.SettingsProvider
	logger       logger.Interface
}

func NewBridge(
	ticketRepo ticket.TicketRepository,
	cardRepo kanban.CardRepository,
	laneRepo kanban.LaneRepository,
	boardRepo kanban.BoardRepository,
	createCard kanbanusecases.CreateCardExecutor,
	updateTicket ticketusecases.UpdateTicketExecutor,
	settings common.SettingsProvider,
	log logger.Interface,
) *Bridge {
	return &Bridge{
		ticketRepo:   ticketRepo,
		cardRepo:     cardRepo,
		laneRepo:     laneRepo,
		boardRepo:    boardRepo,
		createCard:   createCard,
		updateTicket: updateTicket,
		settings:     settings,
		logger:       log.Named("sync.bridge"),
	}
}

// Register subscribes the bridge's handlers on the dispatcher.
func (b *Bridge) Register(subscriber events.EventSubscriber) error {
	handlers := map[string]func(events.DomainEvent) error{
		ticket.EventTicketCreated:  b.onTicketCreated,
		ticket.EventTicketReopened: b.onTicketReopened,
		ticket.EventTicketUpdated:  b.onTicketUpdated,
		ticket.EventTicketClosed:   b.onTicketClosed,
		kanban.EventCardMoved:      b.onCardMoved,
	}
	for eventType, handler := range handlers {
		if err := subscriber.Subscribe(eventType, events.NewSimpleEventHandler(eventType, handler)); err != nil {
			return err
		}
	}
	return nil
}

// Priority heuristic shared by create and update mirroring.
func cardPriority(unreadMessages int, status string) int {
	switch {
	case unreadMessages > 10:
		return 2
	case status == vo.StatusPending.String():
		return 1
	default:
		return 0
	}
}

func (b *Bridge) onTicketCreated(evt events.DomainEvent) error {
	e, ok := evt.(ticket.TicketCreatedEvent)
	if !ok {
		return nil
	}
	if e.GetOrigin() == events.OriginBoard {
		return nil
	}
	b.mirrorCardForTicket(context.Background(), e.GetCompanyID(), e.TicketID, e.ContactID, e.Status)
	return nil
}

func (b *Bridge) onTicketReopened(evt events.DomainEvent) error {
	e, ok := evt.(ticket.TicketReopenedEvent)
	if !ok {
		return nil
	}
	if e.GetOrigin() == events.OriginBoard {
		return nil
	}
	b.mirrorCardForTicket(context.Background(), e.GetCompanyID(), e.TicketID, e.ContactID, vo.StatusPending.String())
	return nil
}

// mirrorCardForTicket creates the card for a new or reopened ticket when
// auto-sync is enabled and no active card exists yet. Failures are logged
// only; the ticket operation already committed.
func (b *Bridge) mirrorCardForTicket(ctx context.Context, companyID, ticketID, contactID uint, status string) {
	enabled, err := b.settings.GetSetting(ctx, companyID, constants.SettingKanbanAutoCreateCards)
	if err != nil || !common.BoolSetting(enabled) {
		return
	}

	if err := b.createCardForTicket(ctx, companyID, ticketID, contactID, status); err != nil {
		b.logger.Warnw("failed to mirror ticket into card",
			"company_id", companyID, "ticket_id", ticketID, "error", err)
	}
}

// createCardForTicket is the ungated mirror. The operator-invoked backlog
// sweep calls it directly: an explicit sweep works even when live
// auto-create is off for the company.
func (b *Bridge) createCardForTicket(ctx context.Context, companyID, ticketID, contactID uint, status string) error {
	lane, err := b.resolveEntryLane(ctx, companyID)
	if err != nil {
		return err
	}
	if lane == nil {
		return fmt.Errorf("no entry lane available for company %d", companyID)
	}

	_, err = b.createCard.Execute(ctx, kanbanusecases.CreateCardCommand{
		CompanyID: companyID,
		LaneID:    lane.ID(),
		Priority:  cardPriority(0, status),
		ContactID: &contactID,
		TicketID:  &ticketID,
	})
	return err
}

// resolveEntryLane picks the first lane of the configured default board,
// falling back to the company's default board.
func (b *Bridge) resolveEntryLane(ctx context.Context, companyID uint) (*kanban.Lane, error) {
	var board *kanban.Board

	configured, err := b.settings.GetSetting(ctx, companyID, constants.SettingKanbanDefaultBoardID)
	if err == nil {
		if boardID := common.UintSetting(configured); boardID != 0 {
			board, err = b.boardRepo.GetByID(ctx, boardID, companyID)
			if err != nil {
				return nil, err
			}
		}
	}
	if board == nil {
		board, err = b.boardRepo.GetDefault(ctx, companyID)
		if err != nil {
			return nil, err
		}
	}
	if board == nil {
		return nil, nil
	}

	return b.laneRepo.GetByPosition(ctx, board.ID(), 0)
}

func (b *Bridge) onTicketUpdated(evt events.DomainEvent) error {
	e, ok := evt.(ticket.TicketUpdatedEvent)
	if !ok {
		return nil
	}
	if e.GetOrigin() == events.OriginBoard {
		return nil
	}

	ctx := context.Background()
	card, err := b.cardRepo.FindActiveByTicket(ctx, e.TicketID, e.GetCompanyID())
	if err != nil {
		b.logger.Warnw("card lookup failed during mirror update", "ticket_id", e.TicketID, "error", err)
		return nil
	}
	if card == nil {
		return nil
	}

	card.Mirror(e.UserID, e.Value, e.SKU, cardPriority(e.UnreadMessages, e.Status))
	if err := b.cardRepo.Update(ctx, card); err != nil {
		b.logger.Warnw("failed to mirror ticket update onto card",
			"ticket_id", e.TicketID, "card_id", card.ID(), "error", err)
	}
	return nil
}

// onTicketClosed archives the mirrored card and stamps completion. This
// runs regardless of origin: a close caused by a card move still archives
// through here, and Complete is idempotent so there is no double-archive.
func (b *Bridge) onTicketClosed(evt events.DomainEvent) error {
	e, ok := evt.(ticket.TicketClosedEvent)
	if !ok {
		return nil
	}

	ctx := context.Background()
	card, err := b.cardRepo.FindActiveByTicket(ctx, e.TicketID, e.GetCompanyID())
	if err != nil {
		b.logger.Warnw("card lookup failed during close mirror", "ticket_id", e.TicketID, "error", err)
		return nil
	}
	if card == nil {
		return nil
	}

	card.Complete()
	if err := b.cardRepo.Update(ctx, card); err != nil {
		b.logger.Warnw("failed to archive card for closed ticket",
			"ticket_id", e.TicketID, "card_id", card.ID(), "error", err)
	}
	return nil
}

// onCardMoved maps the destination lane's name to a ticket status and, when
// it differs from the ticket's current status, re-enters the ticket state
// machine in its own transaction. The move already committed; card and
// ticket converge eventually rather than atomically.
func (b *Bridge) onCardMoved(evt events.DomainEvent) error {
	e, ok := evt.(kanban.CardMovedEvent)
	if !ok {
		return nil
	}
	if e.TicketID == nil {
		return nil
	}

	ctx := context.Background()
	target, ok := b.laneStatus(ctx, e.GetCompanyID(), e.ToLaneName)
	if !ok {
		return nil
	}

	t, err := b.ticketRepo.GetByID(ctx, *e.TicketID, e.GetCompanyID())
	if err != nil || t == nil {
		b.logger.Warnw("ticket lookup failed during lane sync", "ticket_id", *e.TicketID, "error", err)
		return nil
	}
	if t.Status() == target {
		return nil
	}

	actingUser := e.MovedBy
	if actingUser == 0 && t.UserID() != nil {
		actingUser = *t.UserID()
	}
	if actingUser == 0 {
		b.logger.Warnw("card move without acting user, skipping ticket sync",
			"ticket_id", *e.TicketID, "lane", e.ToLaneName)
		return nil
	}

	_, err = b.updateTicket.Execute(ctx, ticketusecases.UpdateTicketCommand{
		TicketID:     t.ID(),
		CompanyID:    e.GetCompanyID(),
		ActingUserID: actingUser,
		Status:       &target,
		Origin:       events.OriginBoard,
	})
	if err != nil {
		b.logger.Warnw("failed to sync ticket status from lane move",
			"ticket_id", *e.TicketID, "lane", e.ToLaneName, "target_status", target.String(), "error", err)
	}
	return nil
}

// laneStatus resolves a lane name to a ticket status through the company
// mapping, falling back to the seed-lane defaults.
func (b *Bridge) laneStatus(ctx context.Context, companyID uint, laneName string) (vo.TicketStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(laneName))

	mapping := defaultLaneStatusMap
	if raw, err := b.settings.GetSetting(ctx, companyID, constants.SettingKanbanLaneStatusMap); err == nil {
		if custom := common.LaneStatusMap(raw); len(custom) > 0 {
			mapping = custom
		}
	}

	name, ok := mapping[key]
	if !ok {
		return "", false
	}
	status := vo.TicketStatus(name)
	if !status.IsValid() {
		b.logger.Warnw("lane maps to invalid ticket status", "lane", laneName, "status", name)
		return "", false
	}
	return status, true
}
