package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type AddChecklistItemCommand struct {
	CardID      uint
	CompanyID   uint
	Description string
	Position    *int
}

type AddChecklistItemResult struct {
	ItemID   uint
	Position int
}

// AddChecklistItemUseCase inserts an item into a card's checklist using
// the same dense-position planning lanes use within a board.
type AddChecklistItemUseCase struct {
	cardRepo      kanban.CardRepository
	checklistRepo kanban.ChecklistRepository
	tx            common.TxRunner
	logger        logger.Interface
}

func NewAddChecklistItemUseCase(
	cardRepo kanban.CardRepository,
	checklistRepo kanban.ChecklistRepository,
	tx common.TxRunner,
	log logger.Interface,
) *AddChecklistItemUseCase {
	return &AddChecklistItemUseCase{cardRepo: cardRepo, checklistRepo: checklistRepo, tx: tx, logger: log}
}

func (uc *AddChecklistItemUseCase) Execute(ctx context.Context, cmd AddChecklistItemCommand) (*AddChecklistItemResult, error) {
	if cmd.CardID == 0 {
		return nil, errors.NewValidationError("card ID is required")
	}
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.Description == "" {
		return nil, errors.NewValidationError("item description is required")
	}

	var item *kanban.ChecklistItem

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

		pos, shifts, err := kanban.PlanInsert(len(siblings), cmd.Position)
		if err != nil {
			return positionError(err)
		}
		for _, shift := range shifts {
			if err := uc.checklistRepo.ApplyItemShift(txCtx, card.ID(), shift); err != nil {
				return err
			}
		}

		item, err = kanban.NewChecklistItem(card.ID(), cmd.Description, pos)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.checklistRepo.SaveItem(txCtx, item)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to add checklist item", "card_id", cmd.CardID, "error", err)
		return nil, errors.NewInternalError("failed to add checklist item")
	}

	return &AddChecklistItemResult{ItemID: item.ID(), Position: item.Position()}, nil
}
