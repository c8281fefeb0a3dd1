package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type CheckItemCommand struct {
	ItemID    uint
	CompanyID uint
	UserID    uint
	Checked   bool
}

// CheckItemUseCase toggles a checklist item. Checking stamps who and when;
// unchecking clears both.
type CheckItemUseCase struct {
	cardRepo      kanban.CardRepository
	checklistRepo kanban.ChecklistRepository
	logger        logger.Interface
}

func NewCheckItemUseCase(
	cardRepo kanban.CardRepository,
	checklistRepo kanban.ChecklistRepository,
	log logger.Interface,
) *CheckItemUseCase {
	return &CheckItemUseCase{cardRepo: cardRepo, checklistRepo: checklistRepo, logger: log}
}

func (uc *CheckItemUseCase) Execute(ctx context.Context, cmd CheckItemCommand) error {
	if cmd.ItemID == 0 {
		return errors.NewValidationError("item ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}
	if cmd.Checked && cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required to check an item")
	}

	item, err := uc.checklistRepo.GetItem(ctx, cmd.ItemID)
	if err != nil {
		uc.logger.Errorw("failed to load checklist item", "item_id", cmd.ItemID, "error", err)
		return errors.NewInternalError("failed to load checklist item")
	}
	if item == nil {
		return errors.NewNotFoundError(fmt.Sprintf("checklist item %d not found", cmd.ItemID))
	}

	// The item table is not company-scoped; the owning card is.
	card, err := uc.cardRepo.GetByID(ctx, item.CardID(), cmd.CompanyID)
	if err != nil {
		uc.logger.Errorw("failed to load card for checklist item", "item_id", cmd.ItemID, "error", err)
		return errors.NewInternalError("failed to load checklist item")
	}
	if card == nil {
		return errors.NewNotFoundError(fmt.Sprintf("checklist item %d not found", cmd.ItemID))
	}

	if cmd.Checked {
		if err := item.Check(cmd.UserID); err != nil {
			return errors.NewValidationError(err.Error())
		}
	} else {
		item.Uncheck()
	}

	if err := uc.checklistRepo.UpdateItem(ctx, item); err != nil {
		uc.logger.Errorw("failed to update checklist item", "item_id", cmd.ItemID, "error", err)
		return errors.NewInternalError("failed to update checklist item")
	}
	return nil
}
