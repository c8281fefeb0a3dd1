package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type DeleteCardCommand struct {
	CardID    uint
	CompanyID uint
}

// DeleteCardUseCase removes a card. Ticket-linked cards are archived
// instead of hard-deleted so the mirror history survives.
type DeleteCardUseCase struct {
	cardRepo kanban.CardRepository
	logger   logger.Interface
}

func NewDeleteCardUseCase(cardRepo kanban.CardRepository, log logger.Interface) *DeleteCardUseCase {
	return &DeleteCardUseCase{cardRepo: cardRepo, logger: log}
}

func (uc *DeleteCardUseCase) Execute(ctx context.Context, cmd DeleteCardCommand) error {
	if cmd.CardID == 0 {
		return errors.NewValidationError("card ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}

	card, err := uc.cardRepo.GetByID(ctx, cmd.CardID, cmd.CompanyID)
	if err != nil {
		uc.logger.Errorw("failed to load card", "card_id", cmd.CardID, "error", err)
		return errors.NewInternalError("failed to load card")
	}
	if card == nil {
		return errors.NewNotFoundError(fmt.Sprintf("card %d not found", cmd.CardID))
	}

	if card.TicketID() != nil {
		card.Archive()
		if err := uc.cardRepo.Update(ctx, card); err != nil {
			uc.logger.Errorw("failed to archive card", "card_id", cmd.CardID, "error", err)
			return errors.NewInternalError("failed to archive card")
		}
		uc.logger.Infow("card archived", "card_id", cmd.CardID, "ticket_id", *card.TicketID())
		return nil
	}

	if err := uc.cardRepo.Delete(ctx, card.ID()); err != nil {
		uc.logger.Errorw("failed to delete card", "card_id", cmd.CardID, "error", err)
		return errors.NewInternalError("failed to delete card")
	}
	uc.logger.Infow("card deleted", "card_id", cmd.CardID)
	return nil
}
