package usecases

import (
	"context"
	"fmt"
	"time"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/contact"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/domain/ticket"
	vo "deskflow/internal/domain/ticket/valueobjects"
	"deskflow/internal/shared/constants"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/goroutine"
	"deskflow/internal/shared/logger"
)

const defaultDedupTTL = 5 * time.Minute

// UpdateTicketCommand is the single entry point for every ticket
// transition: accept, return to queue, close, reopen, queue/user transfer.
// QueueID and UserID are "provided when non-nil"; Status is the target
// status when non-nil, otherwise the current status is kept.
type UpdateTicketCommand struct {
	TicketID     uint
	CompanyID    uint
	ActingUserID uint
	Status       *vo.TicketStatus
	QueueID      *uint
	UserID       *uint
	Transfer     bool
	Origin       events.Origin
}

type UpdateTicketResult struct {
	TicketID  uint
	OldStatus string
	NewStatus string
	QueueID   *uint
	UserID    *uint

	// NewTicketID is set when the new-ticket-on-transfer queue policy
	// closed this ticket and opened a fresh pending one.
	NewTicketID *uint
}

// UpdateTicketUseCase owns the ticket state machine. All validation runs
// before any write; the transition itself commits in one transaction; the
// outbound messages, events and realtime pushes that follow are
// best-effort and never roll the transition back.
type UpdateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	trackingRepo ticket.TrackingRepository
	contactRepo  contact.ContactRepository
	tx           common.TxRunner
	dispatcher   events.EventPublisher
	access       common.AccessChecker
	settings     common.SettingsProvider
	messenger    common.MessageGateway
	dedup        common.DedupCache
	realtime     common.RealtimePublisher
	dedupTTL     time.Duration
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	trackingRepo ticket.TrackingRepository,
	contactRepo contact.ContactRepository,
	tx common.TxRunner,
	dispatcher events.EventPublisher,
	access common.AccessChecker,
	settings common.SettingsProvider,
	messenger common.MessageGateway,
	dedup common.DedupCache,
	realtime common.RealtimePublisher,
	log logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		trackingRepo: trackingRepo,
		contactRepo:  contactRepo,
		tx:           tx,
		dispatcher:   dispatcher,
		access:       access,
		settings:     settings,
		messenger:    messenger,
		dedup:        dedup,
		realtime:     realtime,
		dedupTTL:     defaultDedupTTL,
		logger:       log,
	}
}

// SetDedupTTL overrides the window within which repeated transfer/farewell
// messages for the same ticket are suppressed.
func (uc *UpdateTicketUseCase) SetDedupTTL(ttl time.Duration) {
	if ttl > 0 {
		uc.dedupTTL = ttl
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}
	if cmd.Origin == "" {
		cmd.Origin = events.OriginTicket
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID, cmd.CompanyID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	oldStatus := t.Status()
	targetStatus := oldStatus
	if cmd.Status != nil {
		targetStatus = *cmd.Status
	}

	isAdmin, err := uc.access.IsAdmin(ctx, cmd.ActingUserID)
	if err != nil {
		uc.logger.Errorw("admin check failed", "user_id", cmd.ActingUserID, "error", err)
		return nil, errors.NewInternalError("failed to check permissions")
	}

	// All guards run before the first write; a failed guard aborts the
	// whole operation with no partial state.
	if err := uc.checkQueueMembership(ctx, cmd, t, targetStatus, isAdmin); err != nil {
		uc.notifyFailure(ctx, cmd, err)
		return nil, err
	}
	if err := uc.checkConflictingTicket(ctx, cmd, t, isAdmin); err != nil {
		uc.notifyFailure(ctx, cmd, err)
		return nil, err
	}

	policyClose := uc.transferPolicyApplies(ctx, cmd)
	if policyClose {
		targetStatus = vo.StatusClosed
	}

	var (
		tr          *ticket.Tracking
		newTicket   *ticket.Ticket
		sendRating  bool
		wasReopened bool
	)

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		tr, txErr = uc.trackingRepo.FindOrCreateOpen(txCtx, t.ID(), cmd.CompanyID, t.ChannelID(), t.UserID())
		if txErr != nil {
			return txErr
		}

		queueChanged := cmd.QueueID != nil && !uintPtrEqual(cmd.QueueID, t.QueueID())
		userChanged := cmd.UserID != nil && !uintPtrEqual(cmd.UserID, t.UserID())

		switch {
		case targetStatus.IsClosed() && !oldStatus.IsClosed():
			if txErr = t.Close(); txErr != nil {
				return errors.NewValidationError(txErr.Error())
			}
			tr.Finish()
			if tr.RatingAt() == nil {
				if txErr = tr.MarkRatingRequested(); txErr == nil {
					sendRating = true
				}
			}

		case targetStatus.IsPending() && oldStatus.IsClosed():
			// Reopen: queue and user are cleared and a fresh tracking
			// interval has just been opened above. When the last interval
			// forces re-triage (rating went out while an agent owned it),
			// the caller's queue target is ignored as well.
			if txErr = t.Reopen(); txErr != nil {
				return errors.NewValidationError(txErr.Error())
			}
			wasReopened = true
			last, txErr := uc.trackingRepo.FindLastFinishedByTicket(txCtx, t.ID(), cmd.CompanyID)
			if txErr != nil {
				return txErr
			}
			if cmd.QueueID != nil && (last == nil || !last.NeedsRetriage()) {
				t.AssignQueue(cmd.QueueID)
			}
			tr.StampQueued(t.QueueID())

		case targetStatus.IsOpen() && !oldStatus.IsOpen():
			openerID := cmd.ActingUserID
			if cmd.UserID != nil {
				openerID = *cmd.UserID
			}
			if txErr = t.Open(openerID); txErr != nil {
				return errors.NewValidationError(txErr.Error())
			}
			if queueChanged {
				t.AssignQueue(cmd.QueueID)
			}
			tr.StampStarted(openerID)
			if queueChanged {
				tr.StampQueued(t.QueueID())
				// queuedAt restamp must not clear the agent who just
				// accepted: restore the snapshot.
				tr.ReassignUser(t.UserID())
			}

		case targetStatus.IsPending() && oldStatus.IsOpen():
			if txErr = t.MoveToPending(); txErr != nil {
				return errors.NewValidationError(txErr.Error())
			}
			if queueChanged {
				t.AssignQueue(cmd.QueueID)
			}
			tr.StampQueued(t.QueueID())

		default:
			// No status change: apply reassignments in place.
			if queueChanged {
				t.AssignQueue(cmd.QueueID)
				if !t.Status().IsClosed() {
					tr.StampQueued(t.QueueID())
					tr.ReassignUser(t.UserID())
				}
			}
			if userChanged {
				t.AssignUser(cmd.UserID)
				tr.ReassignUser(cmd.UserID)
			}
		}

		// A user target alongside an open transition was consumed above;
		// outside that, an explicit user on a non-open status is applied
		// verbatim (e.g. pre-assigning a pending ticket).
		if cmd.UserID != nil && !targetStatus.IsOpen() && !targetStatus.IsClosed() && !uintPtrEqual(cmd.UserID, t.UserID()) {
			t.AssignUser(cmd.UserID)
			tr.ReassignUser(cmd.UserID)
		}

		if txErr = uc.ticketRepo.Update(txCtx, t); txErr != nil {
			return txErr
		}
		if txErr = uc.trackingRepo.Update(txCtx, tr); txErr != nil {
			return txErr
		}

		if policyClose {
			newTicket, txErr = uc.createPolicyTicket(txCtx, cmd, t)
			if txErr != nil {
				return txErr
			}
		}

		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("ticket update failed",
			"ticket_id", cmd.TicketID, "company_id", cmd.CompanyID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated",
		"ticket_id", t.ID(),
		"company_id", cmd.CompanyID,
		"old_status", oldStatus.String(),
		"new_status", t.Status().String(),
		"transfer", cmd.Transfer,
	)

	uc.emitEvents(cmd, t, newTicket, oldStatus, wasReopened)
	uc.publishRealtime(cmd, t)
	uc.sendMessages(cmd, t, oldStatus, sendRating)

	result := &UpdateTicketResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		QueueID:   t.QueueID(),
		UserID:    t.UserID(),
	}
	if newTicket != nil {
		id := newTicket.ID()
		result.NewTicketID = &id
	}
	return result, nil
}

func (uc *UpdateTicketUseCase) validateCommand(cmd UpdateTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}
	if cmd.ActingUserID == 0 {
		return errors.NewValidationError("acting user ID is required")
	}
	if cmd.Status != nil && !cmd.Status.IsValid() {
		return errors.NewValidationError("invalid status")
	}
	if cmd.Transfer && cmd.QueueID == nil && cmd.UserID == nil {
		return errors.NewValidationError("a transfer requires a target queue or user")
	}
	return nil
}

// checkQueueMembership enforces the requireQueueOnAccept flag: assigning a
// user to an open ticket requires the user to belong to the target queue.
// Admin actors bypass the check.
func (uc *UpdateTicketUseCase) checkQueueMembership(
	ctx context.Context,
	cmd UpdateTicketCommand,
	t *ticket.Ticket,
	targetStatus vo.TicketStatus,
	isAdmin bool,
) error {
	if cmd.UserID == nil || !targetStatus.IsOpen() || isAdmin {
		return nil
	}

	flag, err := uc.settings.GetSetting(ctx, cmd.CompanyID, constants.SettingRequireQueueOnAccept)
	if err != nil {
		uc.logger.Warnw("failed to read requireQueueOnAccept setting", "company_id", cmd.CompanyID, "error", err)
		return nil
	}
	if !common.BoolSetting(flag) {
		return nil
	}

	targetQueue := cmd.QueueID
	if targetQueue == nil {
		targetQueue = t.QueueID()
	}
	if targetQueue == nil {
		return nil
	}

	ok, err := uc.access.UserHasQueueAccess(ctx, *cmd.UserID, *targetQueue)
	if err != nil {
		uc.logger.Errorw("queue access check failed", "user_id", *cmd.UserID, "queue_id", *targetQueue, "error", err)
		return errors.NewInternalError("failed to check queue access")
	}
	if !ok {
		return errors.NewForbiddenError(
			fmt.Sprintf("user %d does not belong to queue %d", *cmd.UserID, *targetQueue))
	}
	return nil
}

// checkConflictingTicket rejects a transfer when the contact already has a
// different active ticket on the same channel, unless the actor is the
// agent already working that ticket or an admin.
func (uc *UpdateTicketUseCase) checkConflictingTicket(
	ctx context.Context,
	cmd UpdateTicketCommand,
	t *ticket.Ticket,
	isAdmin bool,
) error {
	if !cmd.Transfer {
		return nil
	}

	// The ticket under transfer is excluded in the query itself: when it is
	// the newest active row it must not mask an older open ticket.
	other, err := uc.ticketRepo.FindActiveByContactChannelExcluding(ctx, t.ContactID(), t.ChannelID(), cmd.CompanyID, t.ID())
	if err != nil {
		uc.logger.Errorw("conflicting ticket lookup failed", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to check for conflicting tickets")
	}
	if other == nil {
		return nil
	}
	if isAdmin {
		return nil
	}
	if other.UserID() != nil && *other.UserID() == cmd.ActingUserID {
		return nil
	}

	detail := fmt.Sprintf("ticket %d is already active for this contact", other.ID())
	if other.UserID() != nil {
		detail = fmt.Sprintf("ticket %d is already active with agent %d", other.ID(), *other.UserID())
	}
	return errors.NewConflictError("this contact already has an active ticket", detail).
		WithReason(errors.ReasonConflictingTicket)
}

// transferPolicyApplies reports whether the target queue is configured to
// close the current ticket and open a fresh pending one on transfer.
func (uc *UpdateTicketUseCase) transferPolicyApplies(ctx context.Context, cmd UpdateTicketCommand) bool {
	if !cmd.Transfer || cmd.QueueID == nil {
		return false
	}

	raw, err := uc.settings.GetSetting(ctx, cmd.CompanyID, constants.SettingNewTicketOnTransferQueue)
	if err != nil {
		uc.logger.Warnw("failed to read transfer policy setting", "company_id", cmd.CompanyID, "error", err)
		return false
	}
	for _, id := range common.UintListSetting(raw) {
		if id == *cmd.QueueID {
			return true
		}
	}
	return false
}

func (uc *UpdateTicketUseCase) createPolicyTicket(
	ctx context.Context,
	cmd UpdateTicketCommand,
	closed *ticket.Ticket,
) (*ticket.Ticket, error) {
	existing, err := uc.ticketRepo.FindActiveByContactChannel(ctx, closed.ContactID(), closed.ChannelID(), cmd.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	newTicket, err := ticket.NewTicket(cmd.CompanyID, closed.ContactID(), closed.ChannelID(), cmd.QueueID, closed.IsGroup())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ticketRepo.Save(ctx, newTicket); err != nil {
		return nil, err
	}

	tr, err := uc.trackingRepo.FindOrCreateOpen(ctx, newTicket.ID(), cmd.CompanyID, newTicket.ChannelID(), nil)
	if err != nil {
		return nil, err
	}
	tr.StampQueued(cmd.QueueID)
	if err := uc.trackingRepo.Update(ctx, tr); err != nil {
		return nil, err
	}
	return newTicket, nil
}

func (uc *UpdateTicketUseCase) emitEvents(
	cmd UpdateTicketCommand,
	t *ticket.Ticket,
	newTicket *ticket.Ticket,
	oldStatus vo.TicketStatus,
	wasReopened bool,
) {
	var evts []events.DomainEvent

	switch {
	case wasReopened:
		evts = append(evts, ticket.NewTicketReopenedEvent(t, cmd.Origin))
	case t.Status().IsClosed() && !oldStatus.IsClosed():
		evts = append(evts, ticket.NewTicketClosedEvent(t, cmd.Origin))
	default:
		evts = append(evts, ticket.NewTicketUpdatedEvent(t, cmd.Origin))
	}

	if t.Status() != oldStatus {
		evts = append(evts, ticket.NewTicketStatusChangedEvent(t, oldStatus.String(), cmd.ActingUserID, cmd.Origin))
	}
	if newTicket != nil {
		evts = append(evts, ticket.NewTicketCreatedEvent(newTicket, cmd.Origin))
	}

	for _, evt := range evts {
		if err := uc.dispatcher.Publish(evt); err != nil {
			uc.logger.Warnw("failed to publish ticket event",
				"event_type", evt.GetEventType(), "ticket_id", t.ID(), "error", err)
		}
	}
}

func (uc *UpdateTicketUseCase) publishRealtime(cmd UpdateTicketCommand, t *ticket.Ticket) {
	topic := fmt.Sprintf(constants.TopicCompanyTicket, cmd.CompanyID)
	payload := map[string]interface{}{
		"action":   "update",
		"ticketId": t.ID(),
		"status":   t.Status().String(),
	}

	goroutine.SafeGo(uc.logger, "ticket.realtime", func() {
		if err := uc.realtime.Publish(context.Background(), topic, payload); err != nil {
			uc.logger.Warnw("failed to publish realtime ticket update", "ticket_id", t.ID(), "error", err)
		}
	})
}

// sendMessages delivers the transfer notice and the farewell/rating prompt.
// Fire-and-forget: failures are logged, the committed transition stands.
func (uc *UpdateTicketUseCase) sendMessages(
	cmd UpdateTicketCommand,
	t *ticket.Ticket,
	oldStatus vo.TicketStatus,
	sendRating bool,
) {
	closedNow := t.Status().IsClosed() && !oldStatus.IsClosed()
	if !cmd.Transfer && !closedNow {
		return
	}

	ticketID := t.ID()
	companyID := cmd.CompanyID
	contactID := t.ContactID()
	channelID := t.ChannelID()

	goroutine.SafeGo(uc.logger, "ticket.messages", func() {
		ctx := context.Background()

		c, err := uc.contactRepo.GetByID(ctx, contactID, companyID)
		if err != nil || c == nil {
			uc.logger.Warnw("contact lookup failed for outbound message", "ticket_id", ticketID, "error", err)
			return
		}

		if cmd.Transfer && !closedNow {
			uc.sendDeduped(ctx, channelID, c.Number(),
				fmt.Sprintf("transfer:%d", ticketID),
				"Sua conversa foi transferida para outro atendimento. Aguarde, por favor.",
				companyID, constants.SettingSendTransferMessage)
		}

		if closedNow {
			body := "Atendimento finalizado. Obrigado pelo contato!"
			if sendRating {
				body += "\nAvalie nosso atendimento de 1 a 5."
			}
			uc.sendDeduped(ctx, channelID, c.Number(),
				fmt.Sprintf("farewell:%d", ticketID), body, companyID, "")
		}
	})
}

func (uc *UpdateTicketUseCase) sendDeduped(
	ctx context.Context,
	channelID uint,
	address string,
	key string,
	body string,
	companyID uint,
	gateSetting string,
) {
	if gateSetting != "" {
		flag, err := uc.settings.GetSetting(ctx, companyID, gateSetting)
		if err != nil || !common.BoolSetting(flag) {
			return
		}
	}

	already, err := uc.dedup.MarkSent(ctx, key, uc.dedupTTL)
	if err != nil {
		uc.logger.Warnw("dedup cache failed, sending anyway", "key", key, "error", err)
	}
	if already {
		return
	}

	if err := uc.messenger.SendMessage(ctx, channelID, address, body); err != nil {
		uc.logger.Warnw("outbound message send failed", "key", key, "error", err)
	}
}

// notifyFailure pushes a validation failure to the acting user's realtime
// side-channel so interactive flows can render it. Best-effort.
func (uc *UpdateTicketUseCase) notifyFailure(ctx context.Context, cmd UpdateTicketCommand, failure error) {
	appErr := errors.GetAppError(failure)
	if appErr == nil {
		return
	}

	topic := fmt.Sprintf(constants.TopicCompanyTicket, cmd.CompanyID)
	payload := map[string]interface{}{
		"action":   "error",
		"ticketId": cmd.TicketID,
		"userId":   cmd.ActingUserID,
		"type":     string(appErr.Type),
		"reason":   appErr.Reason,
		"message":  appErr.Message,
	}
	if err := uc.realtime.Publish(ctx, topic, payload); err != nil {
		uc.logger.Warnw("failed to publish validation failure", "ticket_id", cmd.TicketID, "error", err)
	}
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
