package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type BlockCardCommand struct {
	CardID    uint
	CompanyID uint
	Blocked   bool
}

type BlockCardUseCase struct {
	cardRepo kanban.CardRepository
	logger   logger.Interface
}

func NewBlockCardUseCase(cardRepo kanban.CardRepository, log logger.Interface) *BlockCardUseCase {
	return &BlockCardUseCase{cardRepo: cardRepo, logger: log}
}

func (uc *BlockCardUseCase) Execute(ctx context.Context, cmd BlockCardCommand) error {
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

	if cmd.Blocked {
		card.Block()
	} else {
		card.Unblock()
	}

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		uc.logger.Errorw("failed to update card block state", "card_id", cmd.CardID, "error", err)
		return errors.NewInternalError("failed to update card")
	}
	return nil
}
