package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type ApplyChecklistCommand struct {
	CardID     uint
	CompanyID  uint
	TemplateID uint
}

type ApplyChecklistResult struct {
	ItemIDs []uint
}

// ApplyChecklistUseCase copies a template's items onto a card as fresh
// checklist rows, appended after any items the card already has.
type ApplyChecklistUseCase struct {
	cardRepo      kanban.CardRepository
	checklistRepo kanban.ChecklistRepository
	tx            common.TxRunner
	logger        logger.Interface
}

func NewApplyChecklistUseCase(
	cardRepo kanban.CardRepository,
	checklistRepo kanban.ChecklistRepository,
	tx common.TxRunner,
	log logger.Interface,
) *ApplyChecklistUseCase {
	return &ApplyChecklistUseCase{cardRepo: cardRepo, checklistRepo: checklistRepo, tx: tx, logger: log}
}

func (uc *ApplyChecklistUseCase) Execute(ctx context.Context, cmd ApplyChecklistCommand) (*ApplyChecklistResult, error) {
	if cmd.CardID == 0 {
		return nil, errors.NewValidationError("card ID is required")
	}
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.TemplateID == 0 {
		return nil, errors.NewValidationError("template ID is required")
	}

	var itemIDs []uint

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		card, err := uc.cardRepo.GetByID(txCtx, cmd.CardID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if card == nil {
			return errors.NewNotFoundError(fmt.Sprintf("card %d not found", cmd.CardID))
		}

		tmpl, err := uc.checklistRepo.GetTemplate(txCtx, cmd.TemplateID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if tmpl == nil {
			return errors.NewNotFoundError(fmt.Sprintf("checklist template %d not found", cmd.TemplateID))
		}

		existing, err := uc.checklistRepo.ListItemsByCard(txCtx, card.ID(), true)
		if err != nil {
			return err
		}

		base := len(existing)
		for i, tplItem := range tmpl.Items() {
			item, err := kanban.NewChecklistItem(card.ID(), tplItem.Description, base+i)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.checklistRepo.SaveItem(txCtx, item); err != nil {
				return err
			}
			itemIDs = append(itemIDs, item.ID())
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to apply checklist template",
			"card_id", cmd.CardID, "template_id", cmd.TemplateID, "error", err)
		return nil, errors.NewInternalError("failed to apply checklist template")
	}

	uc.logger.Infow("checklist template applied",
		"card_id", cmd.CardID, "template_id", cmd.TemplateID, "items", len(itemIDs))
	return &ApplyChecklistResult{ItemIDs: itemIDs}, nil
}
