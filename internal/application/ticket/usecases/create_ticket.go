package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/domain/ticket"
	"deskflow/internal/shared/constants"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

// CreateTicketCommand asks for the active ticket of a contact on a channel,
// creating a pending one when none exists. Find-or-create is the mechanism
// that keeps at most one open/pending ticket per (contact, channel, company).
type CreateTicketCommand struct {
	CompanyID uint
	ContactID uint
	ChannelID uint
	QueueID   *uint
	IsGroup   bool
	Origin    events.Origin
}

type CreateTicketResult struct {
	TicketID uint
	Status   string
	QueueID  *uint
	Created  bool
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	trackingRepo ticket.TrackingRepository
	tx           common.TxRunner
	dispatcher   events.EventPublisher
	realtime     common.RealtimePublisher
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	trackingRepo ticket.TrackingRepository,
	tx common.TxRunner,
	dispatcher events.EventPublisher,
	realtime common.RealtimePublisher,
	log logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		trackingRepo: trackingRepo,
		tx:           tx,
		dispatcher:   dispatcher,
		realtime:     realtime,
		logger:       log,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}
	if cmd.Origin == "" {
		cmd.Origin = events.OriginTicket
	}

	var (
		t       *ticket.Ticket
		created bool
	)

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.ticketRepo.FindActiveByContactChannel(txCtx, cmd.ContactID, cmd.ChannelID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if existing != nil {
			t = existing
			return nil
		}

		t, err = ticket.NewTicket(cmd.CompanyID, cmd.ContactID, cmd.ChannelID, cmd.QueueID, cmd.IsGroup)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ticketRepo.Save(txCtx, t); err != nil {
			return err
		}

		tr, err := uc.trackingRepo.FindOrCreateOpen(txCtx, t.ID(), cmd.CompanyID, cmd.ChannelID, nil)
		if err != nil {
			return err
		}
		tr.StampQueued(cmd.QueueID)
		if err := uc.trackingRepo.Update(txCtx, tr); err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to find or create ticket",
			"company_id", cmd.CompanyID, "contact_id", cmd.ContactID, "error", err)
		return nil, errors.NewInternalError("failed to find or create ticket")
	}

	if created {
		uc.logger.Infow("ticket created",
			"ticket_id", t.ID(), "company_id", cmd.CompanyID, "contact_id", cmd.ContactID)

		if err := uc.dispatcher.Publish(ticket.NewTicketCreatedEvent(t, cmd.Origin)); err != nil {
			uc.logger.Warnw("failed to publish ticket created event", "ticket_id", t.ID(), "error", err)
		}
		topic := fmt.Sprintf(constants.TopicCompanyTicket, cmd.CompanyID)
		if err := uc.realtime.Publish(ctx, topic, map[string]interface{}{
			"action":   "create",
			"ticketId": t.ID(),
			"status":   t.Status().String(),
		}); err != nil {
			uc.logger.Warnw("failed to publish realtime ticket create", "ticket_id", t.ID(), "error", err)
		}
	}

	return &CreateTicketResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		QueueID:  t.QueueID(),
		Created:  created,
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}
	if cmd.ContactID == 0 {
		return errors.NewValidationError("contact ID is required")
	}
	if cmd.ChannelID == 0 {
		return errors.NewValidationError("channel ID is required")
	}
	return nil
}
