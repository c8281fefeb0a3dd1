package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type DeleteBoardCommand struct {
	BoardID   uint
	CompanyID uint
}

// DeleteBoardUseCase deactivates a board. The default board and the last
// active board of a company cannot be removed.
type DeleteBoardUseCase struct {
	boardRepo kanban.BoardRepository
	tx        common.TxRunner
	logger    logger.Interface
}

func NewDeleteBoardUseCase(boardRepo kanban.BoardRepository, tx common.TxRunner, log logger.Interface) *DeleteBoardUseCase {
	return &DeleteBoardUseCase{boardRepo: boardRepo, tx: tx, logger: log}
}

func (uc *DeleteBoardUseCase) Execute(ctx context.Context, cmd DeleteBoardCommand) error {
	if cmd.BoardID == 0 {
		return errors.NewValidationError("board ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		board, err := uc.boardRepo.GetByID(txCtx, cmd.BoardID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if board == nil {
			return errors.NewNotFoundError(fmt.Sprintf("board %d not found", cmd.BoardID))
		}

		active, err := uc.boardRepo.CountActive(txCtx, cmd.CompanyID)
		if err != nil {
			return err
		}
		if active <= 1 {
			return errors.NewValidationError("cannot delete the last active board")
		}
		if err := board.Deactivate(); err != nil {
			return errors.NewValidationError(err.Error())
		}

		return uc.boardRepo.Update(txCtx, board)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete board", "board_id", cmd.BoardID, "error", err)
		return errors.NewInternalError("failed to delete board")
	}

	uc.logger.Infow("board deactivated", "board_id", cmd.BoardID, "company_id", cmd.CompanyID)
	return nil
}
