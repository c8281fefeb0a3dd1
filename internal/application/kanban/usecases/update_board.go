package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type UpdateBoardCommand struct {
	BoardID     uint
	CompanyID   uint
	Name        *string
	DefaultView *string
	MakeDefault bool
}

type UpdateBoardResult struct {
	BoardID   uint
	IsDefault bool
}

type UpdateBoardUseCase struct {
	boardRepo kanban.BoardRepository
	tx        common.TxRunner
	logger    logger.Interface
}

func NewUpdateBoardUseCase(boardRepo kanban.BoardRepository, tx common.TxRunner, log logger.Interface) *UpdateBoardUseCase {
	return &UpdateBoardUseCase{boardRepo: boardRepo, tx: tx, logger: log}
}

func (uc *UpdateBoardUseCase) Execute(ctx context.Context, cmd UpdateBoardCommand) (*UpdateBoardResult, error) {
	if cmd.BoardID == 0 {
		return nil, errors.NewValidationError("board ID is required")
	}
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.Name == nil && cmd.DefaultView == nil && !cmd.MakeDefault {
		return nil, errors.NewValidationError("at least one field must be provided for update")
	}

	var board *kanban.Board

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		board, err = uc.boardRepo.GetByID(txCtx, cmd.BoardID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if board == nil {
			return errors.NewNotFoundError(fmt.Sprintf("board %d not found", cmd.BoardID))
		}

		if cmd.Name != nil {
			if err := board.Rename(*cmd.Name); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}
		if cmd.DefaultView != nil {
			board.SetDefaultView(*cmd.DefaultView)
		}
		if cmd.MakeDefault && !board.IsDefault() {
			if err := uc.boardRepo.DemoteDefaults(txCtx, cmd.CompanyID); err != nil {
				return err
			}
			board.Promote()
		}

		return uc.boardRepo.Update(txCtx, board)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update board", "board_id", cmd.BoardID, "error", err)
		return nil, errors.NewInternalError("failed to update board")
	}

	return &UpdateBoardResult{BoardID: board.ID(), IsDefault: board.IsDefault()}, nil
}
