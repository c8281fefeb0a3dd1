package usecases

import (
	"context"
	"fmt"
	"time"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/contact"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type CreateCardCommand struct {
	CompanyID      uint
	LaneID         uint
	Title          string
	Description    string
	Priority       int
	DueDate        *time.Time
	Value          float64
	SKU            string
	AssignedUserID *uint
	ContactID      *uint
	TicketID       *uint
}

type CreateCardResult struct {
	CardID  uint
	LaneID  uint
	Created bool
}

// CreateCardUseCase creates a card in a lane of the caller's company. Lane
// capacity is enforced under lock; a ticket-linked create is idempotent on
// the ticket's active card.
type CreateCardUseCase struct {
	laneRepo    kanban.LaneRepository
	cardRepo    kanban.CardRepository
	contactRepo contact.ContactRepository
	tx          common.TxRunner
	logger      logger.Interface
}

func NewCreateCardUseCase(
	laneRepo kanban.LaneRepository,
	cardRepo kanban.CardRepository,
	contactRepo contact.ContactRepository,
	tx common.TxRunner,
	log logger.Interface,
) *CreateCardUseCase {
	return &CreateCardUseCase{
		laneRepo:    laneRepo,
		cardRepo:    cardRepo,
		contactRepo: contactRepo,
		tx:          tx,
		logger:      log,
	}
}

func (uc *CreateCardUseCase) Execute(ctx context.Context, cmd CreateCardCommand) (*CreateCardResult, error) {
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.LaneID == 0 {
		return nil, errors.NewValidationError("lane ID is required")
	}
	if cmd.Title == "" && cmd.ContactID == nil {
		return nil, errors.NewValidationError("card title is required")
	}

	var (
		card    *kanban.Card
		created bool
	)

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		lane, err := uc.laneRepo.GetByID(txCtx, cmd.LaneID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if lane == nil {
			return errors.NewNotFoundError(fmt.Sprintf("lane %d not found", cmd.LaneID))
		}

		if cmd.TicketID != nil {
			existing, err := uc.cardRepo.FindActiveByTicket(txCtx, *cmd.TicketID, cmd.CompanyID)
			if err != nil {
				return err
			}
			if existing != nil {
				card = existing
				return nil
			}
		}

		count, err := uc.cardRepo.CountActiveByLane(txCtx, lane.ID())
		if err != nil {
			return err
		}
		if !lane.HasCapacity(count) {
			return errors.NewConflictError(
				fmt.Sprintf("lane %q is at its card limit of %d", lane.Name(), lane.CardLimit())).
				WithReason(errors.ReasonLimitReached)
		}

		title := cmd.Title
		if title == "" {
			c, err := uc.contactRepo.GetByID(txCtx, *cmd.ContactID, cmd.CompanyID)
			if err != nil || c == nil {
				return errors.NewValidationError("card title is required when the contact cannot be resolved")
			}
			title = c.Name()
		}

		card, err = kanban.NewCard(lane.ID(), title)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		card.SetDescription(cmd.Description)
		card.SetDueDate(cmd.DueDate)
		card.Mirror(cmd.AssignedUserID, cmd.Value, cmd.SKU, cmd.Priority)
		if cmd.ContactID != nil {
			card.LinkContact(*cmd.ContactID)
		}
		if cmd.TicketID != nil {
			if err := card.LinkTicket(*cmd.TicketID); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}

		if err := uc.cardRepo.Save(txCtx, card); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create card", "lane_id", cmd.LaneID, "company_id", cmd.CompanyID, "error", err)
		return nil, errors.NewInternalError("failed to create card")
	}

	if created {
		uc.logger.Infow("card created", "card_id", card.ID(), "lane_id", card.LaneID(), "company_id", cmd.CompanyID)
	}
	return &CreateCardResult{CardID: card.ID(), LaneID: card.LaneID(), Created: created}, nil
}
