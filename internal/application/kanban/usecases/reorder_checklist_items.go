package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type ReorderChecklistItemsCommand struct {
	CardID      uint
	CompanyID   uint
	Assignments []kanban.PositionAssignment
}

type ReorderChecklistItemsUseCase struct {
	cardRepo      kanban.CardRepository
	checklistRepo kanban.ChecklistRepository
	tx            common.TxRunner
	logger        logger.Interface
}

func NewReorderChecklistItemsUseCase(
	cardRepo kanban.CardRepository,
	checklistRepo kanban.ChecklistRepository,
	tx common.TxRunner,
	log logger.Interface,
) *ReorderChecklistItemsUseCase {
	return &ReorderChecklistItemsUseCase{cardRepo: cardRepo, checklistRepo: checklistRepo, tx: tx, logger: log}
}

func (uc *ReorderChecklistItemsUseCase) Execute(ctx context.Context, cmd ReorderChecklistItemsCommand) error {
	if cmd.CardID == 0 {
		return errors.NewValidationError("card ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}
	if len(cmd.Assignments) == 0 {
		return errors.NewValidationError("assignments are required")
	}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		card, err := uc.cardRepo.GetByID(txCtx, cmd.CardID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if card == nil {
			return errors.NewNotFoundError(fmt.Sprintf("card %d not found", cmd.CardID))
		}

		siblings, err := uc.checklistRepo.ListItemsByCard(txCtx, card.ID(), true)
		if err != nil {
			return err
		}
		existingIDs := make([]uint, len(siblings))
		for i, item := range siblings {
			existingIDs[i] = item.ID()
		}

		if err := kanban.ValidateReorder(existingIDs, cmd.Assignments); err != nil {
			return positionError(err)
		}
		return uc.checklistRepo.ApplyItemPositions(txCtx, card.ID(), cmd.Assignments)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to reorder checklist items", "card_id", cmd.CardID, "error", err)
		return errors.NewInternalError("failed to reorder checklist items")
	}
	return nil
}
