package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type RemoveChecklistItemCommand struct {
	ItemID    uint
	CompanyID uint
}

type RemoveChecklistItemUseCase struct {
	cardRepo      kanban.CardRepository
	checklistRepo kanban.ChecklistRepository
	tx            common.TxRunner
	logger        logger.Interface
}

func NewRemoveChecklistItemUseCase(
	cardRepo kanban.CardRepository,
	checklistRepo kanban.ChecklistRepository,
	tx common.TxRunner,
	log logger.Interface,
) *RemoveChecklistItemUseCase {
	return &RemoveChecklistItemUseCase{cardRepo: cardRepo, checklistRepo: checklistRepo, tx: tx, logger: log}
}

func (uc *RemoveChecklistItemUseCase) Execute(ctx context.Context, cmd RemoveChecklistItemCommand) error {
	if cmd.ItemID == 0 {
		return errors.NewValidationError("item ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		item, err := uc.checklistRepo.GetItem(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return errors.NewNotFoundError(fmt.Sprintf("checklist item %d not found", cmd.ItemID))
		}

		card, err := uc.cardRepo.GetByID(txCtx, item.CardID(), cmd.CompanyID)
		if err != nil {
			return err
		}
		if card == nil {
			return errors.NewNotFoundError(fmt.Sprintf("checklist item %d not found", cmd.ItemID))
		}

		if err := uc.checklistRepo.DeleteItem(txCtx, item.ID()); err != nil {
			return err
		}
		for _, shift := range kanban.PlanRemove(item.Position()) {
			if err := uc.checklistRepo.ApplyItemShift(txCtx, card.ID(), shift); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to remove checklist item", "item_id", cmd.ItemID, "error", err)
		return errors.NewInternalError("failed to remove checklist item")
	}
	return nil
}
