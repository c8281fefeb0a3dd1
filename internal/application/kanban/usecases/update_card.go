package usecases

import (
	"context"
	"fmt"
	"time"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type UpdateCardCommand struct {
	CardID         uint
	CompanyID      uint
	Title          *string
	Description    *string
	Priority       *int
	DueDate        *time.Time
	SetDueDate     bool
	Value          *float64
	SKU            *string
	AssignedUserID *uint
	SetAssignee    bool
}

type UpdateCardUseCase struct {
	cardRepo kanban.CardRepository
	logger   logger.Interface
}

func NewUpdateCardUseCase(cardRepo kanban.CardRepository, log logger.Interface) *UpdateCardUseCase {
	return &UpdateCardUseCase{cardRepo: cardRepo, logger: log}
}

func (uc *UpdateCardUseCase) Execute(ctx context.Context, cmd UpdateCardCommand) error {
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

	if cmd.Title != nil {
		if err := card.Retitle(*cmd.Title); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		card.SetDescription(*cmd.Description)
	}
	if cmd.SetDueDate {
		card.SetDueDate(cmd.DueDate)
	}
	if cmd.SetAssignee {
		card.Assign(cmd.AssignedUserID)
	}

	value := card.Value()
	if cmd.Value != nil {
		value = *cmd.Value
	}
	sku := card.SKU()
	if cmd.SKU != nil {
		sku = *cmd.SKU
	}
	priority := card.Priority()
	if cmd.Priority != nil {
		priority = *cmd.Priority
	}
	card.Mirror(card.AssignedUserID(), value, sku, priority)

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		uc.logger.Errorw("failed to update card", "card_id", cmd.CardID, "error", err)
		return errors.NewInternalError("failed to update card")
	}
	return nil
}
